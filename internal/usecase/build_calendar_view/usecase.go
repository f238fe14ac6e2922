// Package build_calendar_view агрегированный календарь оператора:
// бронирования, блокировки и события личного календаря одним списком
package build_calendar_view

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// maxRangeDays ограничение длины периода запроса
const maxRangeDays = 120

// UseCase use case агрегированного календаря
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	mirrorRepo   MirrorRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	mirrorRepo MirrorRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		mirrorRepo:   mirrorRepo,
		logger:       logger,
	}
}

// Execute собирает события периода [startDate, endDate], отсортированные
// по дате и времени начала. Пересекающиеся события не схлопываются:
// оператор должен видеть конфликты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildCalendarView: start=%s, end=%s",
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация периода
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: both dates are required", ErrInvalidRange)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidRange)
	}
	if req.EndDate.Sub(req.StartDate) > maxRangeDays*24*time.Hour {
		return nil, fmt.Errorf("%w: range must not exceed %d days", ErrInvalidRange, maxRangeDays)
	}

	startKey := req.StartDate.Format(domain.DateFormat)
	endKey := req.EndDate.Format(domain.DateFormat)
	events := make([]domain.CalendarViewEvent, 0)

	// 2. Длительность слота для блокировок берём из настроек
	sessionDuration := domain.DefaultSessionDurationMinutes
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("BuildCalendarView: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings != nil {
		sessionDuration = settings.SessionDurationMinutes
	}

	// 3. Бронирования
	bookings, err := uc.bookingRepo.GetActiveByDateRange(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("BuildCalendarView: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}
	for _, b := range bookings {
		endTime, err := b.EndTime()
		if err != nil {
			endTime = types.TimeString("23:59")
		}
		events = append(events, domain.CalendarViewEvent{
			Type:          domain.EventTypeBooking,
			Title:         fmt.Sprintf("%s (%s)", b.ClientName, b.SessionCategory),
			Date:          b.BookingDate,
			StartTime:     b.StartTime,
			EndTime:       endTime,
			BookingID:     ptr.Ptr(b.ID),
			BookingStatus: ptr.Ptr(b.Status),
		})
	}

	// 4. Блокировки дней и слотов
	blockedDates, err := uc.settingsRepo.GetBlockedDates(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("BuildCalendarView: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}
	for _, bd := range blockedDates {
		events = append(events, domain.CalendarViewEvent{
			Type:   domain.EventTypeBlocked,
			Title:  blockTitle(bd.Reason),
			Date:   bd.Date,
			AllDay: true,
		})
	}

	blockedSlots, err := uc.settingsRepo.GetBlockedSlotsByDateRange(ctx, startKey, endKey)
	if err != nil {
		uc.logger.Error("BuildCalendarView: failed to get blocked slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked slots: %v", ErrInternal, err)
	}
	for _, bs := range blockedSlots {
		endTime, err := bs.StartTime.AddMinutes(sessionDuration)
		if err != nil {
			endTime = types.TimeString("23:59")
		}
		events = append(events, domain.CalendarViewEvent{
			Type:      domain.EventTypeBlocked,
			Title:     blockTitle(bs.Reason),
			Date:      bs.Date,
			StartTime: bs.StartTime,
			EndTime:   endTime,
		})
	}

	// 5. События личного календаря: многодневные разворачиваются по дням
	rangeStart := startKey + " 00:00:00"
	rangeEnd := req.EndDate.AddDate(0, 0, 1).Format(domain.DateFormat) + " 00:00:00"
	externalEvents, err := uc.mirrorRepo.GetOverlappingRange(ctx, rangeStart, rangeEnd)
	if err != nil {
		uc.logger.Error("BuildCalendarView: failed to get external events: %v", err)
		return nil, fmt.Errorf("%w: failed to get external events: %v", ErrInternal, err)
	}
	for _, e := range externalEvents {
		events = append(events, uc.expandExternalEvent(e, req.StartDate, req.EndDate)...)
	}

	// 6. Сортировка: по дате, события на весь день первыми, затем по времени начала
	sort.SliceStable(events, func(i, j int) bool {
		di, dj := dayKey(events[i].Date), dayKey(events[j].Date)
		if di != dj {
			return di < dj
		}
		if events[i].AllDay != events[j].AllDay {
			return events[i].AllDay
		}
		return events[i].StartTime.IsBefore(events[j].StartTime)
	})

	uc.logger.Info("BuildCalendarView: %d events in range", len(events))

	return &Response{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Events:    events,
	}, nil
}

// expandExternalEvent разворачивает событие зеркала в посуточные события периода
func (uc *UseCase) expandExternalEvent(e *domain.ExternalEvent, rangeStart, rangeEnd time.Time) []domain.CalendarViewEvent {
	events := make([]domain.CalendarViewEvent, 0, 1)

	for d := truncateToDay(rangeStart); !d.After(rangeEnd); d = d.AddDate(0, 0, 1) {
		if !e.OverlapsDate(d) {
			continue
		}

		event := domain.CalendarViewEvent{
			Type:      domain.EventTypePersonal,
			Title:     e.Summary,
			Date:      d,
			SourceUID: ptr.Ptr(e.UID),
		}

		dayStart := d
		dayEnd := d.AddDate(0, 0, 1)
		if e.AllDay || (!e.StartsAt.After(dayStart) && !e.EndsAt.Before(dayEnd)) {
			event.AllDay = true
		} else {
			start := e.StartsAt
			if start.Before(dayStart) {
				start = dayStart
			}
			end := e.EndsAt
			if end.After(dayEnd) {
				end = dayEnd
			}
			event.StartTime = types.NewTimeString(start)
			if end.Equal(dayEnd) {
				event.EndTime = types.TimeString("23:59")
			} else {
				event.EndTime = types.NewTimeString(end)
			}
		}

		events = append(events, event)
	}

	return events
}

func blockTitle(reason *string) string {
	if reason != nil && *reason != "" {
		return *reason
	}
	return "Заблокировано"
}

func dayKey(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
