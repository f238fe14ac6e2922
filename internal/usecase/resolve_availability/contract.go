package resolve_availability

import (
	"context"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetTemplateSlots(ctx context.Context) ([]*domain.TemplateSlot, error)
	GetTemplateSlotsByCategory(ctx context.Context, category string) ([]*domain.TemplateSlot, error)
	GetCustomSlotsByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.CustomSlot, error)
}

// SettingsRepository интерфейс репозитория настроек и блокировок
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
	GetBlockedDates(ctx context.Context, startDate, endDate string) ([]*domain.BlockedDate, error)
	GetBlockedSlotsByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.BlockedSlot, error)
}

// MirrorRepository интерфейс зеркала внешнего календаря
type MirrorRepository interface {
	GetOverlappingRange(ctx context.Context, rangeStart, rangeEnd string) ([]*domain.ExternalEvent, error)
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

// dayKey ключ карты по дате
func dayKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

// slotKey ключ карты по (дата, время)
func slotKey(date time.Time, start types.TimeString) string {
	return dayKey(date) + " " + start.String()
}
