package resolve_availability

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

// Фейки репозиториев: фильтрация по периоду не нужна,
// resolveDay сам отбирает данные своей даты

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetActiveByDateRange(_ context.Context, _, _ string) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	templateSlots []*domain.TemplateSlot
	customSlots   []*domain.CustomSlot
}

func (f *fakeScheduleRepo) GetTemplateSlots(_ context.Context) ([]*domain.TemplateSlot, error) {
	return f.templateSlots, nil
}

func (f *fakeScheduleRepo) GetTemplateSlotsByCategory(_ context.Context, category string) ([]*domain.TemplateSlot, error) {
	out := make([]*domain.TemplateSlot, 0)
	for _, ts := range f.templateSlots {
		if ts.SessionCategory == category {
			out = append(out, ts)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) GetCustomSlotsByDateRange(_ context.Context, _, _ string) ([]*domain.CustomSlot, error) {
	return f.customSlots, nil
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

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Фикстура: сегодня понедельник 2026-03-02, запрашиваем среду 2026-03-11
var (
	testToday = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	testDate  = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC) // среда, day_id = 3
)

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		BufferMinutes:          30,
		MinLeadDays:            1,
		MaxAdvanceDays:         60,
		SessionDurationMinutes: 120,
		WeekendSurcharge:       750,
	}
}

func wednesdayTemplate(times ...string) []*domain.TemplateSlot {
	slots := make([]*domain.TemplateSlot, 0, len(times))
	for _, t := range times {
		slots = append(slots, &domain.TemplateSlot{
			SessionCategory: "portrait",
			DayID:           3,
			StartTime:       types.TimeString(t),
		})
	}
	return slots
}

func newTestUseCase(
	bookings *fakeBookingRepo,
	schedule *fakeScheduleRepo,
	settings *fakeSettingsRepo,
	mirror *fakeMirrorRepo,
) *UseCase {
	return NewUseCase(bookings, schedule, settings, mirror, &fakeTimeProvider{now: testToday}, nopLogger{})
}

func slotTimes(slots []domain.AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func TestExecuteDay_AllSlotsFree(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "10:00", "14:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00", "14:00"}, slotTimes(resp.Slots))
	assert.False(t, resp.SurchargeApplies)
}

func TestExecuteDay_BookingWithBufferExcludesStartsInside(t *testing.T) {
	// Бронирование 10:00-12:00, буфер 30 минут: занято [09:30, 12:30).
	// Убираются только времена, чьё начало попадает в занятый интервал:
	// 10:00 внутри, 09:00 и 14:00 остаются доступными
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{{
			ID:              1,
			BookingDate:     testDate,
			StartTime:       "10:00",
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
		}}},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "10:00", "14:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_BufferWidensOccupiedInterval(t *testing.T) {
	// Сессия 60 минут, бронирование 11:30-12:30.
	// Слот 12:45 не пересекает бронирование, но попадает в 30-минутный буфер
	settings := testSettings()
	settings.SessionDurationMinutes = 60

	booking := &domain.Booking{
		ID:              1,
		BookingDate:     testDate,
		StartTime:       "11:30",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "12:45")},
		&fakeSettingsRepo{settings: settings},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00"}, slotTimes(resp.Slots))

	// Без буфера слот 12:45 свободен
	settings.BufferMinutes = 0
	resp, err = uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "12:45"}, slotTimes(resp.Slots))
}

func TestExecuteDay_CancelledBookingDoesNotOccupy(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{{
			ID:              1,
			BookingDate:     testDate,
			StartTime:       "10:00",
			DurationMinutes: 120,
			Status:          domain.StatusCancelled,
		}}},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("10:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_OutOfWindowReturnsEmpty(t *testing.T) {
	settings := testSettings()
	settings.MinLeadDays = 3

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "10:00")},
		&fakeSettingsRepo{settings: settings},
		&fakeMirrorRepo{},
	)

	// Завтра при minLeadDays = 3: пустой список, не ошибка
	tomorrow := testToday.AddDate(0, 0, 1)
	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: tomorrow})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	// За горизонтом бронирования
	farAway := testToday.AddDate(0, 0, settings.MaxAdvanceDays+1)
	resp, err = uc.ExecuteDay(context.Background(), &DayRequest{Date: farAway})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteDay_ElapsedTimesRemovedToday(t *testing.T) {
	// При minLeadDays = 0 сегодняшняя дата доступна, но прошедшие
	// времена не предлагаются: в полдень слоты 09:00 и 12:00 уже позади
	settings := testSettings()
	settings.MinLeadDays = 0

	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "12:00", "14:00")},
		&fakeSettingsRepo{settings: settings},
		&fakeMirrorRepo{},
		&fakeTimeProvider{now: time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)},
		nopLogger{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, slotTimes(resp.Slots))

	// На другие даты время суток не влияет
	nextWednesday := testDate.AddDate(0, 0, 7)
	resp, err = uc.ExecuteDay(context.Background(), &DayRequest{Date: nextWednesday, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "12:00", "14:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_BlockedDateClosesWholeDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "10:00", "14:00")},
		&fakeSettingsRepo{
			settings:     testSettings(),
			blockedDates: []*domain.BlockedDate{{Date: testDate}},
		},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteDay_BlockedSlotRemovesExactlyOne(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "10:00", "14:00")},
		&fakeSettingsRepo{
			settings:     testSettings(),
			blockedSlots: []*domain.BlockedSlot{{Date: testDate, StartTime: "10:00"}},
		},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_AllDayEventClosesWholeDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "14:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{events: []*domain.ExternalEvent{{
			UID:      "vacation-day",
			StartsAt: testDate,
			EndsAt:   testDate.AddDate(0, 0, 1),
			AllDay:   true,
		}}},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteDay_TimedExternalEventBlocksStartTimes(t *testing.T) {
	// Личная встреча 09:30-11:00 с буфером закрывает начала в [09:00, 11:30)
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00", "14:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{events: []*domain.ExternalEvent{{
			UID:      "dentist",
			StartsAt: time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC),
			EndsAt:   time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC),
		}}},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_CustomSlotExtendsTemplate(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{
			templateSlots: wednesdayTemplate("09:00"),
			customSlots: []*domain.CustomSlot{
				{SessionCategory: "portrait", Date: testDate, StartTime: "19:00"},
				// Дубликат шаблонного времени схлопывается
				{SessionCategory: "portrait", Date: testDate, StartTime: "09:00"},
			},
		},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "19:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_SaturdaySurcharge(t *testing.T) {
	saturday := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: saturday})
	require.NoError(t, err)
	assert.True(t, resp.SurchargeApplies)
	assert.Equal(t, 750.0, resp.Surcharge)

	// Надбавка не зависит от наличия слотов
	assert.Empty(t, resp.Slots)
}

func TestExecuteDay_HolidaySurcharge(t *testing.T) {
	settings := testSettings()
	settings.HolidayDates = []time.Time{testDate}

	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00")},
		&fakeSettingsRepo{settings: settings},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.True(t, resp.SurchargeApplies)
	assert.Equal(t, 750.0, resp.Surcharge)
}

func TestExecuteDay_UnknownCategory(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeSettingsRepo{settings: testSettings()}, &fakeMirrorRepo{})

	_, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("astro")})
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestExecuteDay_ExcludeBookingID(t *testing.T) {
	// При переносе занятость самого бронирования не учитывается:
	// его собственный слот остаётся доступным для выбора
	booking := &domain.Booking{
		ID:              7,
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{booking}},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("10:00", "14:00")},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{
		Date:             testDate,
		SessionCategory:  ptr.Ptr("portrait"),
		ExcludeBookingID: ptr.Ptr(int64(7)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "14:00"}, slotTimes(resp.Slots))

	resp, err = uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, slotTimes(resp.Slots))
}

func TestExecuteDay_ResultIsSubsetOfNominalSlots(t *testing.T) {
	nominal := map[string]bool{"09:00": true, "10:00": true, "14:00": true, "19:00": true}

	uc := newTestUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{{
			ID:              1,
			BookingDate:     testDate,
			StartTime:       "10:00",
			DurationMinutes: 120,
			Status:          domain.StatusPending,
		}}},
		&fakeScheduleRepo{
			templateSlots: wednesdayTemplate("09:00", "10:00", "14:00"),
			customSlots:   []*domain.CustomSlot{{SessionCategory: "portrait", Date: testDate, StartTime: "19:00"}},
		},
		&fakeSettingsRepo{settings: testSettings()},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.True(t, nominal[s.StartTime.String()], "slot %s is outside the nominal set", s.StartTime)
	}
}

func TestExecuteDay_DefaultsWhenSettingsMissing(t *testing.T) {
	uc := newTestUseCase(
		&fakeBookingRepo{},
		&fakeScheduleRepo{templateSlots: wednesdayTemplate("09:00")},
		&fakeSettingsRepo{settings: nil},
		&fakeMirrorRepo{},
	)

	resp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: testDate, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.Slots[0].DurationMinutes)
}

func TestExecuteMonth_MatchesPerDayResolution(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:              1,
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}}}
	schedule := &fakeScheduleRepo{
		templateSlots: wednesdayTemplate("09:00", "10:00", "14:00"),
		customSlots:   []*domain.CustomSlot{{SessionCategory: "portrait", Date: testDate, StartTime: "19:00"}},
	}
	settings := &fakeSettingsRepo{
		settings:     testSettings(),
		blockedDates: []*domain.BlockedDate{{Date: time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)}},
	}
	mirror := &fakeMirrorRepo{}

	uc := newTestUseCase(bookings, schedule, settings, mirror)

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	monthResp, err := uc.ExecuteMonth(context.Background(), &MonthRequest{Month: month, SessionCategory: ptr.Ptr("portrait")})
	require.NoError(t, err)
	require.Len(t, monthResp.Days, 31)

	// Помесячный и подневной расчёты обязаны совпадать для каждого дня
	for _, day := range monthResp.Days {
		dayResp, err := uc.ExecuteDay(context.Background(), &DayRequest{Date: day.Date, SessionCategory: ptr.Ptr("portrait")})
		require.NoError(t, err)
		assert.Equal(t, slotTimes(dayResp.Slots), slotTimes(day.Slots), "mismatch on %s", day.Date.Format(domain.DateFormat))
		assert.Equal(t, dayResp.SurchargeApplies, day.SurchargeApplies)
	}
}

func TestExecuteMonth_RequiresFirstDayOfMonth(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{}, &fakeSettingsRepo{settings: testSettings()}, &fakeMirrorRepo{})

	_, err := uc.ExecuteMonth(context.Background(), &MonthRequest{Month: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)})
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
