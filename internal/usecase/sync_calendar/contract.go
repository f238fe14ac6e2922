package sync_calendar

import (
	"context"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
)

// CalendarClient интерфейс CalDAV-клиента
type CalendarClient interface {
	ListCalendars(ctx context.Context, creds caldav.Credentials) ([]caldav.Calendar, error)
	FetchEvents(ctx context.Context, creds caldav.Credentials, calendarHref string, start, end time.Time) ([]*caldav.Event, error)
	PutEvent(ctx context.Context, creds caldav.Credentials, calendarHref string, event *caldav.Event) error
	TestConnection(ctx context.Context, creds caldav.Credentials) ([]string, error)
}

// CalendarSettingsRepository интерфейс репозитория настроек календаря
type CalendarSettingsRepository interface {
	Get(ctx context.Context) (*domain.CalendarSettings, error)
	TouchLastSyncedAt(ctx context.Context) error
}

// MirrorRepository интерфейс зеркала внешних событий
type MirrorRepository interface {
	ReplaceAll(ctx context.Context, events []*domain.ExternalEvent) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetUnsyncedConfirmed(ctx context.Context) ([]*domain.Booking, error)
	SetCalendarEventUID(ctx context.Context, id int64, uid *string) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
