// Package copy_slots копирование шаблонных слотов дня недели
// на другие дни и категории одной транзакцией
package copy_slots

import (
	"context"
	"fmt"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// UseCase use case копирования шаблонных слотов
type UseCase struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute копирует слоты дня-источника во все дни-получатели.
// Слоты получателей перезаписываются целиком, поэтому повторный запуск
// даёт тот же результат. День-источник среди получателей не запрещён - это no-op
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CopySlots: source=%s/%d, destinations=%d",
		req.SourceCategory, req.SourceDayID, len(req.Destinations))

	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	slots, err := uc.scheduleRepo.GetDaySlots(ctx, req.SourceCategory, req.SourceDayID)
	if err != nil {
		uc.logger.Error("CopySlots: failed to get source slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get source slots: %v", ErrInternal, err)
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, dst := range req.Destinations {
			if err := uc.scheduleRepo.ReplaceDaySlots(txCtx, dst.SessionCategory, dst.DayID, slots); err != nil {
				return fmt.Errorf("destination %s/%d: %w", dst.SessionCategory, dst.DayID, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CopySlots: failed to copy slots: %v", err)
		return nil, fmt.Errorf("%w: failed to copy slots: %v", ErrInternal, err)
	}

	uc.logger.Info("CopySlots: %d slots copied to %d destinations", len(slots), len(req.Destinations))

	return &Response{
		SlotsCopied:  len(slots),
		Destinations: len(req.Destinations),
	}, nil
}

func (uc *UseCase) validateRequest(req *Request) error {
	if !domain.IsKnownCategory(req.SourceCategory) {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, req.SourceCategory)
	}
	if req.SourceDayID < 0 || req.SourceDayID > 6 {
		return fmt.Errorf("%w: %d", ErrInvalidDay, req.SourceDayID)
	}
	if len(req.Destinations) == 0 {
		return ErrNoDestinations
	}
	for _, dst := range req.Destinations {
		if !domain.IsKnownCategory(dst.SessionCategory) {
			return fmt.Errorf("%w: %q", ErrInvalidCategory, dst.SessionCategory)
		}
		if dst.DayID < 0 || dst.DayID > 6 {
			return fmt.Errorf("%w: %d", ErrInvalidDay, dst.DayID)
		}
	}
	return nil
}
