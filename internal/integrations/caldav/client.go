// Package caldav клиент внешнего календаря по протоколу CalDAV
// Учётные данные передаются в каждый вызов: они хранятся в БД
// и могут быть изменены оператором между запросами
package caldav

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const prodID = "-//SLP-BookingService//Calendar Sync//EN"

// Client клиент CalDAV-сервера
type Client struct {
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр CalDAV-клиента
func NewClient(timeout time.Duration, log Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListCalendars получает список календарей пользователя (PROPFIND, Depth: 1)
func (c *Client) ListCalendars(ctx context.Context, creds Credentials) ([]Calendar, error) {
	body := `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:prop>
    <d:displayname/>
    <d:resourcetype/>
  </d:prop>
</d:propfind>`

	resp, err := c.do(ctx, creds, "PROPFIND", creds.BaseURL, body, map[string]string{"Depth": "1"})
	if err != nil {
		return nil, err
	}

	var ms multistatus
	if err := xml.Unmarshal(resp, &ms); err != nil {
		return nil, fmt.Errorf("%w: ListCalendars - parse multistatus: %v", ErrInvalidResponse, err)
	}

	calendars := make([]Calendar, 0)
	for _, r := range ms.Responses {
		for _, ps := range r.Propstat {
			if !strings.Contains(ps.Status, "200") {
				continue
			}
			if ps.Prop.ResourceType.Calendar == nil {
				continue
			}
			name := ps.Prop.DisplayName
			if name == "" {
				name = r.Href
			}
			calendars = append(calendars, Calendar{Href: r.Href, Name: name})
		}
	}

	return calendars, nil
}

// FetchEvents получает события календаря за период (REPORT calendar-query)
func (c *Client) FetchEvents(ctx context.Context, creds Credentials, calendarHref string, start, end time.Time) ([]*Event, error) {
	body := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<c:calendar-query xmlns:d="DAV:" xmlns:c="urn:ietf:params:xml:ns:caldav">
  <d:prop>
    <c:calendar-data/>
  </d:prop>
  <c:filter>
    <c:comp-filter name="VCALENDAR">
      <c:comp-filter name="VEVENT">
        <c:time-range start="%s" end="%s"/>
      </c:comp-filter>
    </c:comp-filter>
  </c:filter>
</c:calendar-query>`,
		start.UTC().Format(icsDateTimeUTC), end.UTC().Format(icsDateTimeUTC))

	resp, err := c.do(ctx, creds, "REPORT", c.resolveHref(creds, calendarHref), body, map[string]string{"Depth": "1"})
	if err != nil {
		return nil, err
	}

	var ms multistatus
	if err := xml.Unmarshal(resp, &ms); err != nil {
		return nil, fmt.Errorf("%w: FetchEvents - parse multistatus: %v", ErrInvalidResponse, err)
	}

	events := make([]*Event, 0)
	for _, r := range ms.Responses {
		for _, ps := range r.Propstat {
			if ps.Prop.CalendarData == "" {
				continue
			}
			parsed, err := parseICS(ps.Prop.CalendarData)
			if err != nil {
				c.log.Warn("FetchEvents - skipping unparsable calendar object %s: %v", r.Href, err)
				continue
			}
			events = append(events, parsed...)
		}
	}

	return events, nil
}

// PutEvent создает или обновляет событие в календаре
func (c *Client) PutEvent(ctx context.Context, creds Credentials, calendarHref string, event *Event) error {
	target := strings.TrimSuffix(c.resolveHref(creds, calendarHref), "/") + "/" + event.UID + ".ics"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, strings.NewReader(buildICS(event, prodID)))
	if err != nil {
		return fmt.Errorf("%w: PutEvent - failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Content-Type", "text/calendar; charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: PutEvent - failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	return c.checkStatus(resp, "PutEvent")
}

// DeleteEvent удаляет событие из календаря
// Отсутствующее событие не считается ошибкой
func (c *Client) DeleteEvent(ctx context.Context, creds Credentials, calendarHref string, uid string) error {
	target := strings.TrimSuffix(c.resolveHref(creds, calendarHref), "/") + "/" + uid + ".ics"

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("%w: DeleteEvent - failed to create request: %v", ErrInternal, err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: DeleteEvent - failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	return c.checkStatus(resp, "DeleteEvent")
}

// TestConnection проверяет учётные данные и возвращает имена доступных календарей
func (c *Client) TestConnection(ctx context.Context, creds Credentials) ([]string, error) {
	calendars, err := c.ListCalendars(ctx, creds)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(calendars))
	for _, cal := range calendars {
		names = append(names, cal.Name)
	}
	return names, nil
}

// do выполняет WebDAV-запрос с XML-телом и возвращает тело ответа
func (c *Client) do(ctx context.Context, creds Credentials, method, target, body string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s - failed to create request: %v", ErrInternal, method, err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - failed to execute request: %v", ErrInternal, method, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, method); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - failed to read response: %v", ErrInvalidResponse, method, err)
	}
	return data, nil
}

func (c *Client) checkStatus(resp *http.Response, method string) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s - status %d", ErrUnauthorized, method, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s - status %d", ErrCalendarNotFound, method, resp.StatusCode)
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s - unexpected status code %d: %s", ErrInvalidResponse, method, resp.StatusCode, string(body))
	}
}

// resolveHref разворачивает относительный href календаря относительно базового URL
func (c *Client) resolveHref(creds Credentials, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(creds.BaseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
