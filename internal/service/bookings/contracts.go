package bookings

import (
	"context"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

// AvailabilityResolver интерфейс расчёта доступности для проверки переноса
type AvailabilityResolver interface {
	ExecuteDay(ctx context.Context, req *resolveAvailability.DayRequest) (*resolveAvailability.DayResponse, error)
}

// CalendarClient интерфейс CalDAV-клиента для очистки зеркального события
type CalendarClient interface {
	ListCalendars(ctx context.Context, creds caldav.Credentials) ([]caldav.Calendar, error)
	DeleteEvent(ctx context.Context, creds caldav.Credentials, calendarHref string, uid string) error
}

// CalendarSettingsRepository интерфейс репозитория настроек календаря
type CalendarSettingsRepository interface {
	Get(ctx context.Context) (*domain.CalendarSettings, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
