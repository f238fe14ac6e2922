// Package sync_calendar синхронизация с внешним CalDAV-календарём:
// загрузка занятости личных календарей в локальное зеркало и выгрузка
// подтверждённых бронирований в назначенный календарь
package sync_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
)

// UseCase use case синхронизации календарей
type UseCase struct {
	client         CalendarClient
	settingsRepo   CalendarSettingsRepository
	mirrorRepo     MirrorRepository
	bookingRepo    BookingRepository
	txManager      TransactionManager
	timeProvider   TimeProvider
	syncWindowDays int
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client CalendarClient,
	settingsRepo CalendarSettingsRepository,
	mirrorRepo MirrorRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	syncWindowDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:         client,
		settingsRepo:   settingsRepo,
		mirrorRepo:     mirrorRepo,
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		timeProvider:   timeProvider,
		syncWindowDays: syncWindowDays,
		logger:         logger,
	}
}

// Execute выполняет полный цикл синхронизации: сначала загружает события
// всех календарей в зеркало (замена целиком, при ошибке зеркало не трогаем),
// затем выгружает несинхронизированные подтверждённые бронирования
func (uc *UseCase) Execute(ctx context.Context) (*SyncResponse, error) {
	uc.logger.Info("SyncCalendar: starting sync")

	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.SyncEnabled {
		return nil, ErrSyncDisabled
	}

	creds := caldav.Credentials{
		BaseURL:  settings.CalDAVURL,
		Username: settings.Username,
		Password: settings.Password,
	}

	calendars, err := uc.client.ListCalendars(ctx, creds)
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to list calendars: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	now := uc.timeProvider.Now()
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowEnd := windowStart.AddDate(0, 0, uc.syncWindowDays)

	// 1. Pull: события всех календарей, кроме календаря бронирований -
	// иначе выгруженные нами события вернутся как "личная занятость"
	mirror, err := uc.pullEvents(ctx, creds, calendars, settings.BookingCalendarName, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.mirrorRepo.ReplaceAll(txCtx, mirror)
	})
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to replace mirror: %v", err)
		return nil, fmt.Errorf("%w: failed to replace mirror: %v", ErrInternal, err)
	}

	// 2. Push: подтверждённые бронирования без внешнего события
	pushed, err := uc.pushBookings(ctx, creds, calendars, settings.BookingCalendarName)
	if err != nil {
		return nil, err
	}

	if err := uc.settingsRepo.TouchLastSyncedAt(ctx); err != nil {
		uc.logger.Warn("SyncCalendar: failed to update last_synced_at: %v", err)
	}

	uc.logger.Info("SyncCalendar: done, pulled=%d, pushed=%d", len(mirror), pushed)

	return &SyncResponse{
		PulledEvents:    len(mirror),
		PushedBookings:  pushed,
		BookingCalendar: settings.BookingCalendarName,
	}, nil
}

// TestConnection проверяет доступность сервера по сохранённым настройкам
// и возвращает имена доступных календарей
func (uc *UseCase) TestConnection(ctx context.Context) (*TestResponse, error) {
	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	creds := caldav.Credentials{
		BaseURL:  settings.CalDAVURL,
		Username: settings.Username,
		Password: settings.Password,
	}

	names, err := uc.client.TestConnection(ctx, creds)
	if err != nil {
		uc.logger.Warn("SyncCalendar: connection test failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	uc.logger.Info("SyncCalendar: connection test ok, %d calendars", len(names))

	return &TestResponse{Calendars: names}, nil
}

func (uc *UseCase) loadSettings(ctx context.Context) (*domain.CalendarSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarsettings.ErrSettingsNotFound) {
			return nil, ErrNotConfigured
		}
		uc.logger.Error("SyncCalendar: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if !settings.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return settings, nil
}

func (uc *UseCase) pullEvents(
	ctx context.Context,
	creds caldav.Credentials,
	calendars []caldav.Calendar,
	bookingCalendarName string,
	windowStart, windowEnd time.Time,
) ([]*domain.ExternalEvent, error) {
	mirror := make([]*domain.ExternalEvent, 0)
	// Один UID может встретиться в нескольких календарях:
	// последнее вхождение побеждает
	byUID := make(map[string]int)

	for _, cal := range calendars {
		if cal.Name == bookingCalendarName {
			continue
		}

		events, err := uc.client.FetchEvents(ctx, creds, cal.Href, windowStart, windowEnd)
		if err != nil {
			uc.logger.Error("SyncCalendar: failed to fetch events from %q: %v", cal.Name, err)
			return nil, fmt.Errorf("%w: calendar %q: %v", ErrSyncFailed, cal.Name, err)
		}

		for _, e := range events {
			event := &domain.ExternalEvent{
				UID:      e.UID,
				Summary:  e.Summary,
				StartsAt: e.StartsAt,
				EndsAt:   e.EndsAt,
				AllDay:   e.AllDay,
			}
			if i, ok := byUID[e.UID]; ok {
				mirror[i] = event
				continue
			}
			byUID[e.UID] = len(mirror)
			mirror = append(mirror, event)
		}
	}

	return mirror, nil
}

func (uc *UseCase) pushBookings(
	ctx context.Context,
	creds caldav.Credentials,
	calendars []caldav.Calendar,
	bookingCalendarName string,
) (int, error) {
	bookings, err := uc.bookingRepo.GetUnsyncedConfirmed(ctx)
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to get unsynced bookings: %v", err)
		return 0, fmt.Errorf("%w: failed to get unsynced bookings: %v", ErrInternal, err)
	}
	if len(bookings) == 0 {
		return 0, nil
	}

	bookingCalendar := findCalendar(calendars, bookingCalendarName)
	if bookingCalendar == nil {
		uc.logger.Error("SyncCalendar: booking calendar %q not found on server", bookingCalendarName)
		return 0, fmt.Errorf("%w: %q", ErrBookingCalendarNotFound, bookingCalendarName)
	}

	pushed := 0
	for _, b := range bookings {
		event, err := bookingToEvent(b)
		if err != nil {
			uc.logger.Warn("SyncCalendar: skipping booking %d: %v", b.ID, err)
			continue
		}

		if err := uc.client.PutEvent(ctx, creds, bookingCalendar.Href, event); err != nil {
			// Бронирование останется несинхронизированным и уйдёт при следующем запуске
			uc.logger.Warn("SyncCalendar: failed to push booking %d: %v", b.ID, err)
			continue
		}

		if err := uc.bookingRepo.SetCalendarEventUID(ctx, b.ID, ptr.Ptr(event.UID)); err != nil {
			uc.logger.Error("SyncCalendar: failed to mark booking %d as synced: %v", b.ID, err)
			return pushed, fmt.Errorf("%w: failed to mark booking as synced: %v", ErrInternal, err)
		}

		pushed++
	}

	return pushed, nil
}

// bookingToEvent строит событие внешнего календаря для бронирования
func bookingToEvent(b *domain.Booking) (*caldav.Event, error) {
	startsAt, err := b.StartTime.At(b.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %v", err)
	}

	return &caldav.Event{
		UID:      uuid.NewString(),
		Summary:  fmt.Sprintf("Фотосессия: %s (%s)", b.ClientName, b.SessionCategory),
		StartsAt: startsAt,
		EndsAt:   startsAt.Add(time.Duration(b.DurationMinutes) * time.Minute),
		AllDay:   false,
	}, nil
}

func findCalendar(calendars []caldav.Calendar, name string) *caldav.Calendar {
	for i := range calendars {
		if calendars[i].Name == name {
			return &calendars[i]
		}
	}
	return nil
}
