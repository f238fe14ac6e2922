// Package create_manual_booking ручное бронирование оператором: слот
// резервируется сразу (статус pending), клиент заполняет данные
// по одноразовой ссылке
package create_manual_booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
)

// UseCase use case ручного бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	tokenRepo    TokenRepository
	resolver     AvailabilityResolver
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tokenRepo TokenRepository,
	resolver AvailabilityResolver,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tokenRepo:    tokenRepo,
		resolver:     resolver,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case ручного бронирования
// Проверка доступности, вставка бронирования и выпуск токена выполняются
// в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateManualBooking: client=%s, category=%s, date=%s, time=%s",
		req.ClientName, req.SessionCategory, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateManualBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var booking *domain.Booking
	var token *domain.BookingToken

	// 2. Захват слота и выпуск токена в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Считаем доступность даты с блокировкой строк бронирований
		day, err := uc.resolver.ExecuteDay(txCtx, &resolveAvailability.DayRequest{
			Date:            req.Date,
			SessionCategory: ptr.Ptr(req.SessionCategory),
		})
		if err != nil {
			uc.logger.Error("CreateManualBooking: failed to resolve availability: %v", err)
			return fmt.Errorf("%w: failed to resolve availability: %v", ErrInternal, err)
		}

		slot, found := findSlot(day.Slots, req)
		if !found {
			uc.logger.Warn("CreateManualBooking: slot %s %s is not available",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		totalPrice := req.PackagePrice
		if totalPrice != nil && day.SurchargeApplies {
			totalPrice = ptr.Ptr(*totalPrice + day.Surcharge)
		}

		// 2.2. Создаем бронирование в статусе pending: слот занят,
		// данные клиента будут заполнены по ссылке
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientName:                req.ClientName,
			ClientPhone:               req.ClientPhone,
			SessionCategory:           req.SessionCategory,
			BookingDate:               req.Date,
			StartTime:                 req.StartTime,
			DurationMinutes:           slot.DurationMinutes,
			Status:                    domain.StatusPending,
			Source:                    domain.SourceManual,
			PackageName:               req.PackageName,
			TotalPrice:                totalPrice,
			IsWeekendSurchargeApplied: day.SurchargeApplies,
			Notes:                     req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateManualBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		booking = created

		// 2.3. Выпускаем одноразовый токен завершения
		minted, err := uc.tokenRepo.Create(txCtx, &domain.BookingToken{
			Token:     uuid.NewString(),
			BookingID: created.ID,
			ExpiresAt: now.Add(domain.TokenTTL),
		})
		if err != nil {
			uc.logger.Error("CreateManualBooking: failed to create token: %v", err)
			return fmt.Errorf("%w: failed to create token: %v", ErrInternal, err)
		}
		token = minted

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateManualBooking: successfully created booking id=%d with completion token", booking.ID)

	return &Response{
		BookingID:                 booking.ID,
		ClientName:                booking.ClientName,
		SessionCategory:           booking.SessionCategory,
		BookingDate:               booking.BookingDate,
		StartTime:                 booking.StartTime,
		DurationMinutes:           booking.DurationMinutes,
		Status:                    string(booking.Status),
		IsWeekendSurchargeApplied: booking.IsWeekendSurchargeApplied,
		Token:                     token.Token,
		TokenExpiresAt:            token.ExpiresAt,
	}, nil
}

func validateRequest(req *Request) error {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}
	if !domain.IsKnownCategory(req.SessionCategory) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, req.SessionCategory)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	return nil
}

func findSlot(slots []domain.AvailableSlot, req *Request) (domain.AvailableSlot, bool) {
	for _, s := range slots {
		if s.StartTime == req.StartTime {
			return s, true
		}
	}
	return domain.AvailableSlot{}, false
}
