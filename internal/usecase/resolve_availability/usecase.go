// Package resolve_availability расчёт доступных слотов: недельный шаблон
// и разовые слоты минус занятые интервалы с учётом буфера и окна бронирования
package resolve_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
)

// UseCase use case расчёта доступности
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	mirrorRepo   MirrorRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	mirrorRepo MirrorRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		mirrorRepo:   mirrorRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ExecuteDay возвращает доступные слоты на дату
func (uc *UseCase) ExecuteDay(ctx context.Context, req *DayRequest) (*DayResponse, error) {
	uc.logger.Info("ResolveAvailability: date=%s, category=%v",
		req.Date.Format(domain.DateFormat), req.SessionCategory)

	// 1. Валидация категории
	if err := validateCategory(req.SessionCategory); err != nil {
		uc.logger.Warn("ResolveAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем данные на один день
	data, err := uc.loadData(ctx, req.SessionCategory, req.Date, req.Date)
	if err != nil {
		return nil, err
	}

	if req.ExcludeBookingID != nil {
		filtered := data.bookings[:0]
		for _, b := range data.bookings {
			if b.ID != *req.ExcludeBookingID {
				filtered = append(filtered, b)
			}
		}
		data.bookings = filtered
	}

	// 3. Считаем доступность
	day := resolveDay(data, truncateToDay(req.Date), uc.timeProvider.Now())

	uc.logger.Info("ResolveAvailability: date=%s, %d slots available",
		req.Date.Format(domain.DateFormat), len(day.Slots))

	return &DayResponse{
		Date:             day.Date,
		Slots:            day.Slots,
		SurchargeApplies: day.SurchargeApplies,
		Surcharge:        day.Surcharge,
	}, nil
}

// ExecuteMonth возвращает доступность по всем дням месяца
// Данные за месяц загружаются одним набором запросов, но расчёт каждого
// дня проходит тем же resolveDay, что и подневной запрос
func (uc *UseCase) ExecuteMonth(ctx context.Context, req *MonthRequest) (*MonthResponse, error) {
	uc.logger.Info("ResolveAvailabilityForMonth: month=%s, category=%v",
		req.Month.Format(domain.MonthFormat), req.SessionCategory)

	// 1. Валидация
	if err := validateCategory(req.SessionCategory); err != nil {
		uc.logger.Warn("ResolveAvailabilityForMonth: validation failed: %v", err)
		return nil, err
	}
	if req.Month.Day() != 1 {
		return nil, fmt.Errorf("%w: month must be the first day of a month", ErrInvalidMonth)
	}

	// 2. Загружаем данные на весь месяц
	monthStart := truncateToDay(req.Month)
	monthEnd := monthStart.AddDate(0, 1, -1)

	data, err := uc.loadData(ctx, req.SessionCategory, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	// 3. Считаем каждый день месяца
	now := uc.timeProvider.Now()
	days := make([]domain.DayAvailability, 0, 31)
	for d := monthStart; !d.After(monthEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, resolveDay(data, d, now))
	}

	uc.logger.Info("ResolveAvailabilityForMonth: month=%s, %d days resolved",
		req.Month.Format(domain.MonthFormat), len(days))

	return &MonthResponse{Month: monthStart, Days: days}, nil
}

// loadData загружает все данные, необходимые для расчёта периода [startDate, endDate]
func (uc *UseCase) loadData(ctx context.Context, category *string, startDate, endDate time.Time) (*scheduleData, error) {
	startKey := startDate.Format(domain.DateFormat)
	endKey := endDate.Format(domain.DateFormat)

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("ResolveAvailability: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = defaultSettings()
		uc.logger.Info("ResolveAvailability: settings not configured, using defaults")
	}

	var templateSlots []*domain.TemplateSlot
	if category != nil {
		templateSlots, err = uc.scheduleRepo.GetTemplateSlotsByCategory(ctx, *category)
	} else {
		templateSlots, err = uc.scheduleRepo.GetTemplateSlots(ctx)
	}
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get template slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get template slots: %v", ErrInternal, err)
	}

	customSlots, err := uc.scheduleRepo.GetCustomSlotsByDateRange(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get custom slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get custom slots: %v", ErrInternal, err)
	}
	if category != nil {
		filtered := customSlots[:0]
		for _, cs := range customSlots {
			if cs.SessionCategory == *category {
				filtered = append(filtered, cs)
			}
		}
		customSlots = filtered
	}

	// Бронирования всех категорий: слот, занятый одной категорией,
	// недоступен и для остальных
	bookings, err := uc.bookingRepo.GetActiveByDateRange(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blockedDates, err := uc.settingsRepo.GetBlockedDates(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}
	blockedDateSet := make(map[string]bool, len(blockedDates))
	for _, bd := range blockedDates {
		blockedDateSet[dayKey(bd.Date)] = true
	}

	blockedSlots, err := uc.settingsRepo.GetBlockedSlotsByDateRange(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}
	blockedSlotSet := make(map[string]bool, len(blockedSlots))
	for _, bs := range blockedSlots {
		blockedSlotSet[slotKey(bs.Date, bs.StartTime)] = true
	}

	rangeStart := startDate.Format(domain.DateFormat) + " 00:00:00"
	rangeEnd := endDate.AddDate(0, 0, 1).Format(domain.DateFormat) + " 00:00:00"
	externalEvents, err := uc.mirrorRepo.GetOverlappingRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		uc.logger.Error("ResolveAvailability: failed to get external events: %v", err)
		return nil, fmt.Errorf("%w: failed to get external events: %v", ErrInternal, err)
	}

	return &scheduleData{
		settings:       settings,
		templateSlots:  templateSlots,
		customSlots:    customSlots,
		bookings:       bookings,
		blockedDates:   blockedDateSet,
		blockedSlots:   blockedSlotSet,
		externalEvents: externalEvents,
	}, nil
}

func defaultSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		BufferMinutes:          domain.DefaultBufferMinutes,
		MinLeadDays:            domain.DefaultMinLeadDays,
		MaxAdvanceDays:         domain.DefaultMaxAdvanceDays,
		SessionDurationMinutes: domain.DefaultSessionDurationMinutes,
		WeekendSurcharge:       domain.DefaultWeekendSurcharge,
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
