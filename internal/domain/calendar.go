package domain

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// ExternalEvent represents a mirrored busy interval from the operator's personal calendar
// Первичный ключ зеркала - UID события во внешнем календаре
type ExternalEvent struct {
	UID      string
	Summary  string
	StartsAt time.Time
	EndsAt   time.Time
	AllDay   bool
}

// OverlapsDate returns true if the event intersects the given calendar date
func (e *ExternalEvent) OverlapsDate(date time.Time) bool {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	return e.StartsAt.Before(dayEnd) && e.EndsAt.After(dayStart)
}

// CalendarSettings represents the operator's CalDAV connection settings (singleton)
type CalendarSettings struct {
	ID                  int64
	CalDAVURL           string
	Username            string
	Password            string // Хранится, но никогда не отдаётся наружу
	SyncEnabled         bool
	BookingCalendarName string
	LastSyncedAt        *time.Time
	UpdatedAt           time.Time
}

// IsConfigured returns true if the settings are complete enough to attempt a sync
func (s *CalendarSettings) IsConfigured() bool {
	return s.CalDAVURL != "" && s.Username != "" && s.Password != ""
}

// CalendarEventType тип события в агрегированном представлении календаря
type CalendarEventType string

const (
	EventTypeBooking  CalendarEventType = "booking"
	EventTypeBlocked  CalendarEventType = "blocked"
	EventTypePersonal CalendarEventType = "personal"
)

// CalendarViewEvent represents one typed event in the aggregated calendar view
// Представление не дедуплицируется: пересекающиеся события отдаются как есть
type CalendarViewEvent struct {
	Type      CalendarEventType
	Title     string
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	AllDay    bool

	// Ссылка на источник события
	BookingID     *int64
	BookingStatus *BookingStatus
	SourceUID     *string
}
