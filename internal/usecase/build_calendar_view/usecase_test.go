package build_calendar_view

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByDateRange(_ context.Context, _, _ string) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeSettingsRepo struct {
	settings     *domain.BookingSettings
	blockedDates []*domain.BlockedDate
	blockedSlots []*domain.BlockedSlot
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BookingSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) GetBlockedDates(_ context.Context, _, _ string) ([]*domain.BlockedDate, error) {
	return f.blockedDates, nil
}

func (f *fakeSettingsRepo) GetBlockedSlotsByDateRange(_ context.Context, _, _ string) ([]*domain.BlockedSlot, error) {
	return f.blockedSlots, nil
}

type fakeMirrorRepo struct {
	events []*domain.ExternalEvent
}

func (f *fakeMirrorRepo) GetOverlappingRange(_ context.Context, _, _ string) ([]*domain.ExternalEvent, error) {
	return f.events, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	rangeStart = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	wednesday  = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
)

func booking(id int64, date time.Time, start types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientName:      "Анна Смирнова",
		SessionCategory: "portrait",
		BookingDate:     date,
		StartTime:       start,
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, settings *fakeSettingsRepo, mirror *fakeMirrorRepo) *UseCase {
	return NewUseCase(bookings, settings, mirror, nopLogger{})
}

func TestExecute_MergesAllSourcesSorted(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, wednesday, "14:00"),
		booking(2, wednesday, "10:00"),
	}}
	settings := &fakeSettingsRepo{
		settings: &domain.BookingSettings{SessionDurationMinutes: 90},
		blockedDates: []*domain.BlockedDate{
			{Date: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), Reason: ptr.Ptr("Ремонт зала")},
		},
		blockedSlots: []*domain.BlockedSlot{
			{Date: wednesday, StartTime: "12:00"},
		},
	}
	mirror := &fakeMirrorRepo{events: []*domain.ExternalEvent{
		{
			UID:      "uid-1",
			Summary:  "Врач",
			StartsAt: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
	}}

	resp, err := newTestUseCase(bookings, settings, mirror).Execute(context.Background(), &Request{
		StartDate: rangeStart,
		EndDate:   rangeEnd,
	})
	require.NoError(t, err)
	require.Len(t, resp.Events, 5)

	// 11 марта по времени начала, затем блокировка 13-го
	assert.Equal(t, domain.EventTypePersonal, resp.Events[0].Type)
	assert.Equal(t, types.TimeString("08:00"), resp.Events[0].StartTime)
	assert.Equal(t, "uid-1", *resp.Events[0].SourceUID)

	assert.Equal(t, domain.EventTypeBooking, resp.Events[1].Type)
	assert.Equal(t, int64(2), *resp.Events[1].BookingID)
	assert.Equal(t, types.TimeString("12:00"), resp.Events[1].EndTime)

	assert.Equal(t, domain.EventTypeBlocked, resp.Events[2].Type)
	// Длительность блокировки слота берётся из настроек
	assert.Equal(t, types.TimeString("13:30"), resp.Events[2].EndTime)
	assert.Equal(t, "Заблокировано", resp.Events[2].Title)

	assert.Equal(t, domain.EventTypeBooking, resp.Events[3].Type)
	assert.Equal(t, int64(1), *resp.Events[3].BookingID)

	assert.Equal(t, domain.EventTypeBlocked, resp.Events[4].Type)
	assert.True(t, resp.Events[4].AllDay)
	assert.Equal(t, "Ремонт зала", resp.Events[4].Title)
}

func TestExecute_OverlappingEventsNotDeduplicated(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, wednesday, "10:00"),
	}}
	mirror := &fakeMirrorRepo{events: []*domain.ExternalEvent{
		{
			UID:      "uid-1",
			Summary:  "Личное",
			StartsAt: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
		},
	}}

	resp, err := newTestUseCase(bookings, &fakeSettingsRepo{}, mirror).Execute(context.Background(), &Request{
		StartDate: wednesday,
		EndDate:   wednesday,
	})
	require.NoError(t, err)

	// Конфликт показывается обоими событиями
	require.Len(t, resp.Events, 2)
}

func TestExecute_MultiDayEventExpandedPerDay(t *testing.T) {
	mirror := &fakeMirrorRepo{events: []*domain.ExternalEvent{
		{
			UID:      "uid-1",
			Summary:  "Отпуск",
			StartsAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			AllDay:   true,
		},
	}}

	resp, err := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{}, mirror).Execute(context.Background(), &Request{
		StartDate: rangeStart,
		EndDate:   rangeEnd,
	})
	require.NoError(t, err)

	require.Len(t, resp.Events, 3)
	for i, e := range resp.Events {
		assert.True(t, e.AllDay)
		assert.Equal(t, time.Date(2026, 3, 10+i, 0, 0, 0, 0, time.UTC), e.Date)
	}
}

func TestExecute_TimedEventCrossingMidnight(t *testing.T) {
	mirror := &fakeMirrorRepo{events: []*domain.ExternalEvent{
		{
			UID:      "uid-1",
			Summary:  "Поезд",
			StartsAt: time.Date(2026, 3, 11, 22, 0, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 3, 12, 6, 0, 0, 0, time.UTC),
		},
	}}

	resp, err := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{}, mirror).Execute(context.Background(), &Request{
		StartDate: rangeStart,
		EndDate:   rangeEnd,
	})
	require.NoError(t, err)

	require.Len(t, resp.Events, 2)
	assert.Equal(t, types.TimeString("22:00"), resp.Events[0].StartTime)
	assert.Equal(t, types.TimeString("23:59"), resp.Events[0].EndTime)
	assert.Equal(t, types.TimeString("00:00"), resp.Events[1].StartTime)
	assert.Equal(t, types.TimeString("06:00"), resp.Events[1].EndTime)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{}, &fakeMirrorRepo{})

	_, err := uc.Execute(context.Background(), &Request{StartDate: rangeEnd, EndDate: rangeStart})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{EndDate: rangeEnd})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(context.Background(), &Request{
		StartDate: rangeStart,
		EndDate:   rangeStart.AddDate(0, 0, 200),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_EmptyRange(t *testing.T) {
	resp, err := newTestUseCase(&fakeBookingRepo{}, &fakeSettingsRepo{}, &fakeMirrorRepo{}).Execute(context.Background(), &Request{
		StartDate: rangeStart,
		EndDate:   rangeEnd,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Events)
}
