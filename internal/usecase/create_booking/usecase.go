// Package create_booking создание бронирования клиентом с атомарной
// проверкой доступности слота
package create_booking

import (
	"context"
	"fmt"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     AvailabilityResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: из двух конкурентных запросов на один слот выигрывает один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: client=%s, category=%s, date=%s, time=%s",
		req.ClientName, req.SessionCategory, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 3. Проверка доступности и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Считаем доступность даты: строки бронирований дня блокируются (FOR UPDATE)
		day, err := uc.resolver.ExecuteDay(txCtx, &resolveAvailability.DayRequest{
			Date:            req.Date,
			SessionCategory: ptr.Ptr(req.SessionCategory),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}

		// 3.2. Запрошенное время должно быть среди доступных слотов
		slot, found := findSlot(day.Slots, req)
		if !found {
			uc.logger.Warn("CreateBooking: slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 3.3. Считаем итоговую цену с учётом надбавки за выходной
		totalPrice := req.PackagePrice
		if totalPrice != nil && day.SurchargeApplies {
			totalPrice = ptr.Ptr(*totalPrice + day.Surcharge)
		}

		// 3.4. Создаем бронирование
		booking := &domain.Booking{
			ClientName:                req.ClientName,
			ClientEmail:               req.ClientEmail,
			ClientPhone:               req.ClientPhone,
			SessionCategory:           req.SessionCategory,
			BookingDate:               req.Date,
			StartTime:                 req.StartTime,
			DurationMinutes:           slot.DurationMinutes,
			Status:                    domain.StatusConfirmed,
			Source:                    domain.SourceSelfService,
			PackageName:               req.PackageName,
			TotalPrice:                totalPrice,
			IsWeekendSurchargeApplied: day.SurchargeApplies,
			Notes:                     req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:                        result.ID,
		ClientName:                result.ClientName,
		ClientEmail:               result.ClientEmail,
		ClientPhone:               result.ClientPhone,
		SessionCategory:           result.SessionCategory,
		BookingDate:               result.BookingDate,
		StartTime:                 result.StartTime,
		DurationMinutes:           result.DurationMinutes,
		Status:                    string(result.Status),
		PackageName:               result.PackageName,
		TotalPrice:                result.TotalPrice,
		IsWeekendSurchargeApplied: result.IsWeekendSurchargeApplied,
		Notes:                     result.Notes,
		CreatedAt:                 result.CreatedAt,
		UpdatedAt:                 result.UpdatedAt,
	}, nil
}

// findSlot ищет запрошенное время среди доступных слотов
func findSlot(slots []domain.AvailableSlot, req *Request) (domain.AvailableSlot, bool) {
	for _, s := range slots {
		if s.StartTime == req.StartTime {
			return s, true
		}
	}
	return domain.AvailableSlot{}, false
}
