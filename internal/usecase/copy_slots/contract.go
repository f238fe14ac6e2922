package copy_slots

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// ScheduleRepository интерфейс репозитория шаблонов расписания
type ScheduleRepository interface {
	GetDaySlots(ctx context.Context, category string, dayID int) ([]types.TimeString, error)
	ReplaceDaySlots(ctx context.Context, category string, dayID int, times []types.TimeString) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
