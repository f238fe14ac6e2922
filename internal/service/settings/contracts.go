package settings

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// SettingsRepository интерфейс репозитория ограничений и блокировок
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
	Upsert(ctx context.Context, s *domain.BookingSettings) error
	CreateBlockedDate(ctx context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
	CreateBlockedSlot(ctx context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error)
	DeleteBlockedSlot(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория шаблонов и разовых слотов
type ScheduleRepository interface {
	GetTemplateSlots(ctx context.Context) ([]*domain.TemplateSlot, error)
	ReplaceDaySlots(ctx context.Context, category string, dayID int, times []types.TimeString) error
	CreateCustomSlot(ctx context.Context, slot *domain.CustomSlot) (*domain.CustomSlot, error)
	DeleteCustomSlot(ctx context.Context, id int64) error
}

// QuestionnaireRepository интерфейс репозитория анкет категорий
type QuestionnaireRepository interface {
	GetBySessionCategory(ctx context.Context, category string) (*domain.Questionnaire, error)
	Upsert(ctx context.Context, q *domain.Questionnaire) error
}

// CalendarSettingsRepository интерфейс репозитория настроек календаря
type CalendarSettingsRepository interface {
	Get(ctx context.Context) (*domain.CalendarSettings, error)
	Upsert(ctx context.Context, s *domain.CalendarSettings) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
