package complete_booking

import (
	"context"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
}

// TokenRepository интерфейс репозитория токенов завершения
type TokenRepository interface {
	GetByToken(ctx context.Context, tokenValue string) (*domain.BookingToken, error)
	MarkUsed(ctx context.Context, tokenValue string, answers []byte) error
}

// QuestionnaireRepository интерфейс репозитория анкет
type QuestionnaireRepository interface {
	GetBySessionCategory(ctx context.Context, category string) (*domain.Questionnaire, error)
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
