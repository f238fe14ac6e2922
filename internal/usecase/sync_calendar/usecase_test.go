package sync_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
)

type fakeClient struct {
	calendars    []caldav.Calendar
	events       map[string][]*caldav.Event // по href календаря
	fetchErr     error
	putErr       error
	pushed       map[string][]*caldav.Event
	fetchedHrefs []string
}

func (f *fakeClient) ListCalendars(_ context.Context, _ caldav.Credentials) ([]caldav.Calendar, error) {
	return f.calendars, nil
}

func (f *fakeClient) FetchEvents(_ context.Context, _ caldav.Credentials, href string, _, _ time.Time) ([]*caldav.Event, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	f.fetchedHrefs = append(f.fetchedHrefs, href)
	return f.events[href], nil
}

func (f *fakeClient) PutEvent(_ context.Context, _ caldav.Credentials, href string, event *caldav.Event) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.pushed == nil {
		f.pushed = make(map[string][]*caldav.Event)
	}
	f.pushed[href] = append(f.pushed[href], event)
	return nil
}

func (f *fakeClient) TestConnection(_ context.Context, _ caldav.Credentials) ([]string, error) {
	names := make([]string, 0, len(f.calendars))
	for _, c := range f.calendars {
		names = append(names, c.Name)
	}
	return names, nil
}

type fakeCalendarSettingsRepo struct {
	settings *domain.CalendarSettings
	touched  bool
}

func (f *fakeCalendarSettingsRepo) Get(_ context.Context) (*domain.CalendarSettings, error) {
	if f.settings == nil {
		return nil, calendarsettings.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeCalendarSettingsRepo) TouchLastSyncedAt(_ context.Context) error {
	f.touched = true
	return nil
}

type fakeMirrorRepo struct {
	events     []*domain.ExternalEvent
	replaceErr error
}

func (f *fakeMirrorRepo) ReplaceAll(_ context.Context, events []*domain.ExternalEvent) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.events = events
	return nil
}

type fakeBookingRepo struct {
	unsynced []*domain.Booking
	uids     map[int64]*string
}

func (f *fakeBookingRepo) GetUnsyncedConfirmed(_ context.Context) ([]*domain.Booking, error) {
	return f.unsynced, nil
}

func (f *fakeBookingRepo) SetCalendarEventUID(_ context.Context, id int64, uid *string) error {
	if f.uids == nil {
		f.uids = make(map[int64]*string)
	}
	f.uids[id] = uid
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func configuredSettings() *domain.CalendarSettings {
	return &domain.CalendarSettings{
		CalDAVURL:           "https://dav.example.com",
		Username:            "studio",
		Password:            "secret",
		SyncEnabled:         true,
		BookingCalendarName: "Бронирования",
	}
}

func personalEvent(uid string) *caldav.Event {
	return &caldav.Event{
		UID:      uid,
		Summary:  "Личное",
		StartsAt: time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
	}
}

func newTestUseCase(client *fakeClient, settings *fakeCalendarSettingsRepo, mirror *fakeMirrorRepo, bookings *fakeBookingRepo) *UseCase {
	return NewUseCase(client, settings, mirror, bookings, fakeTxManager{}, &fakeTimeProvider{now: testNow}, 120, nopLogger{})
}

func TestExecute_PullSkipsBookingCalendar(t *testing.T) {
	client := &fakeClient{
		calendars: []caldav.Calendar{
			{Name: "Личный", Href: "/cal/personal/"},
			{Name: "Бронирования", Href: "/cal/bookings/"},
		},
		events: map[string][]*caldav.Event{
			"/cal/personal/": {personalEvent("uid-1"), personalEvent("uid-2")},
			"/cal/bookings/": {personalEvent("uid-3")},
		},
	}
	settings := &fakeCalendarSettingsRepo{settings: configuredSettings()}
	mirror := &fakeMirrorRepo{}

	resp, err := newTestUseCase(client, settings, mirror, &fakeBookingRepo{}).Execute(context.Background())
	require.NoError(t, err)

	// Календарь бронирований не возвращается как личная занятость
	assert.Equal(t, []string{"/cal/personal/"}, client.fetchedHrefs)
	assert.Equal(t, 2, resp.PulledEvents)
	require.Len(t, mirror.events, 2)
	assert.Equal(t, "uid-1", mirror.events[0].UID)
	assert.True(t, settings.touched)
}

func TestExecute_DuplicateUIDAcrossCalendarsWinsLast(t *testing.T) {
	shared := personalEvent("uid-shared")
	updated := personalEvent("uid-shared")
	updated.Summary = "Личное (перенос)"
	updated.StartsAt = time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC)
	updated.EndsAt = time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	client := &fakeClient{
		calendars: []caldav.Calendar{
			{Name: "Личный", Href: "/cal/personal/"},
			{Name: "Семейный", Href: "/cal/family/"},
		},
		events: map[string][]*caldav.Event{
			"/cal/personal/": {shared, personalEvent("uid-1")},
			"/cal/family/":   {updated},
		},
	}
	mirror := &fakeMirrorRepo{}

	resp, err := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, mirror, &fakeBookingRepo{}).Execute(context.Background())
	require.NoError(t, err)

	// Событие, видимое в двух календарях, попадает в зеркало один раз,
	// побеждает последнее вхождение
	assert.Equal(t, 2, resp.PulledEvents)
	require.Len(t, mirror.events, 2)

	byUID := make(map[string]*domain.ExternalEvent)
	for _, e := range mirror.events {
		byUID[e.UID] = e
	}
	require.Contains(t, byUID, "uid-shared")
	assert.Equal(t, "Личное (перенос)", byUID["uid-shared"].Summary)
	assert.Equal(t, updated.StartsAt, byUID["uid-shared"].StartsAt)
}

func TestExecute_RepeatedSyncLeavesMirrorUnchanged(t *testing.T) {
	client := &fakeClient{
		calendars: []caldav.Calendar{{Name: "Личный", Href: "/cal/personal/"}},
		events: map[string][]*caldav.Event{
			"/cal/personal/": {personalEvent("uid-1"), personalEvent("uid-2")},
		},
	}
	mirror := &fakeMirrorRepo{}
	uc := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, mirror, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background())
	require.NoError(t, err)
	first := mirror.events

	// Повторная синхронизация при неизменном календаре даёт то же зеркало
	uc.timeProvider = &fakeTimeProvider{now: testNow.Add(time.Hour)}
	_, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, mirror.events)
}

func TestExecute_FetchFailurePreservesMirror(t *testing.T) {
	stale := []*domain.ExternalEvent{{UID: "old"}}
	client := &fakeClient{
		calendars: []caldav.Calendar{{Name: "Личный", Href: "/cal/personal/"}},
		fetchErr:  assert.AnError,
	}
	mirror := &fakeMirrorRepo{events: stale}

	_, err := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, mirror, &fakeBookingRepo{}).Execute(context.Background())
	assert.ErrorIs(t, err, ErrSyncFailed)

	// При ошибке загрузки прежнее зеркало остаётся нетронутым
	assert.Equal(t, stale, mirror.events)
}

func TestExecute_PushesUnsyncedBookings(t *testing.T) {
	client := &fakeClient{
		calendars: []caldav.Calendar{
			{Name: "Личный", Href: "/cal/personal/"},
			{Name: "Бронирования", Href: "/cal/bookings/"},
		},
	}
	bookings := &fakeBookingRepo{unsynced: []*domain.Booking{
		{
			ID:              7,
			ClientName:      "Анна Смирнова",
			SessionCategory: "portrait",
			BookingDate:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
		},
	}}

	resp, err := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, &fakeMirrorRepo{}, bookings).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.PushedBookings)
	assert.Equal(t, "Бронирования", resp.BookingCalendar)

	require.Len(t, client.pushed["/cal/bookings/"], 1)
	event := client.pushed["/cal/bookings/"][0]
	assert.NotEmpty(t, event.UID)
	assert.Equal(t, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), event.StartsAt)
	assert.Equal(t, time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC), event.EndsAt)

	// Бронирование помечено UID выгруженного события
	require.NotNil(t, bookings.uids[7])
	assert.Equal(t, event.UID, *bookings.uids[7])
}

func TestExecute_FailedPushSkippedNotFatal(t *testing.T) {
	client := &fakeClient{
		calendars: []caldav.Calendar{{Name: "Бронирования", Href: "/cal/bookings/"}},
		putErr:    assert.AnError,
	}
	bookings := &fakeBookingRepo{unsynced: []*domain.Booking{
		{ID: 7, BookingDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), StartTime: "10:00", DurationMinutes: 120},
	}}

	resp, err := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, &fakeMirrorRepo{}, bookings).Execute(context.Background())
	require.NoError(t, err)

	// Неудачная выгрузка не прерывает синхронизацию, бронирование уйдёт в следующий раз
	assert.Equal(t, 0, resp.PushedBookings)
	assert.Nil(t, bookings.uids[7])
}

func TestExecute_BookingCalendarMissing(t *testing.T) {
	client := &fakeClient{
		calendars: []caldav.Calendar{{Name: "Личный", Href: "/cal/personal/"}},
	}
	bookings := &fakeBookingRepo{unsynced: []*domain.Booking{
		{ID: 7, BookingDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), StartTime: "10:00", DurationMinutes: 120},
	}}

	_, err := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, &fakeMirrorRepo{}, bookings).Execute(context.Background())
	assert.ErrorIs(t, err, ErrBookingCalendarNotFound)
}

func TestExecute_NotConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeClient{}, &fakeCalendarSettingsRepo{}, &fakeMirrorRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExecute_IncompleteSettings(t *testing.T) {
	settings := configuredSettings()
	settings.Password = ""

	uc := newTestUseCase(&fakeClient{}, &fakeCalendarSettingsRepo{settings: settings}, &fakeMirrorRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExecute_SyncDisabled(t *testing.T) {
	settings := configuredSettings()
	settings.SyncEnabled = false

	uc := newTestUseCase(&fakeClient{}, &fakeCalendarSettingsRepo{settings: settings}, &fakeMirrorRepo{}, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

func TestTestConnection_ListsCalendarNames(t *testing.T) {
	client := &fakeClient{calendars: []caldav.Calendar{
		{Name: "Личный", Href: "/cal/personal/"},
		{Name: "Бронирования", Href: "/cal/bookings/"},
	}}

	uc := newTestUseCase(client, &fakeCalendarSettingsRepo{settings: configuredSettings()}, &fakeMirrorRepo{}, &fakeBookingRepo{})

	resp, err := uc.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Личный", "Бронирования"}, resp.Calendars)
}

func TestTestConnection_NotConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeClient{}, &fakeCalendarSettingsRepo{}, &fakeMirrorRepo{}, &fakeBookingRepo{})

	_, err := uc.TestConnection(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
