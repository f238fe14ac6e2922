package build_calendar_view

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByDateRange(ctx context.Context, startDate, endDate string) ([]*domain.Booking, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
