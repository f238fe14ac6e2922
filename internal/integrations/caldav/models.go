package caldav

import (
	"encoding/xml"
	"time"
)

// Credentials учётные данные подключения к CalDAV-серверу
// Передаются в каждый вызов: хранятся в БД и могут меняться оператором
type Credentials struct {
	BaseURL  string
	Username string
	Password string
}

// Calendar коллекция событий на CalDAV-сервере
type Calendar struct {
	Href string
	Name string
}

// Event событие календаря
type Event struct {
	UID      string
	Summary  string
	StartsAt time.Time
	EndsAt   time.Time
	AllDay   bool
}

// multistatus WebDAV-ответ PROPFIND/REPORT
type multistatus struct {
	XMLName   xml.Name      `xml:"multistatus"`
	Responses []davResponse `xml:"response"`
}

type davResponse struct {
	Href     string        `xml:"href"`
	Propstat []davPropstat `xml:"propstat"`
}

type davPropstat struct {
	Status string  `xml:"status"`
	Prop   davProp `xml:"prop"`
}

type davProp struct {
	DisplayName  string          `xml:"displayname"`
	ResourceType davResourceType `xml:"resourcetype"`
	CalendarData string          `xml:"calendar-data"`
}

type davResourceType struct {
	Calendar *struct{} `xml:"calendar"`
}
