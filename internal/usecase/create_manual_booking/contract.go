package create_manual_booking

import (
	"context"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// TokenRepository интерфейс репозитория токенов завершения
type TokenRepository interface {
	Create(ctx context.Context, t *domain.BookingToken) (*domain.BookingToken, error)
}

// AvailabilityResolver интерфейс расчёта доступности
type AvailabilityResolver interface {
	ExecuteDay(ctx context.Context, req *resolveAvailability.DayRequest) (*resolveAvailability.DayResponse, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
