package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	bookingRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/booking"
	"github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	"github.com/silwerlining/SLP-BookingService/internal/integrations/caldav"
	"github.com/silwerlining/SLP-BookingService/internal/service/bookings/models"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	deleted []int64
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{byID: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.byID[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.byID {
		if !filter.IncludeInactive && b.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	if _, ok := f.byID[b.ID]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	copied := *b
	f.byID[b.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeResolver struct {
	slots       []types.TimeString
	lastRequest *resolveAvailability.DayRequest
}

func (f *fakeResolver) ExecuteDay(_ context.Context, req *resolveAvailability.DayRequest) (*resolveAvailability.DayResponse, error) {
	f.lastRequest = req
	slots := make([]domain.AvailableSlot, 0, len(f.slots))
	for _, t := range f.slots {
		slots = append(slots, domain.AvailableSlot{StartTime: t, DurationMinutes: 120})
	}
	return &resolveAvailability.DayResponse{Date: req.Date, Slots: slots}, nil
}

type fakeCalendarClient struct {
	calendars  []caldav.Calendar
	deletedUID string
	deleteErr  error
}

func (f *fakeCalendarClient) ListCalendars(_ context.Context, _ caldav.Credentials) ([]caldav.Calendar, error) {
	return f.calendars, nil
}

func (f *fakeCalendarClient) DeleteEvent(_ context.Context, _ caldav.Credentials, _ string, uid string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedUID = uid
	return nil
}

type fakeCalendarSettingsRepo struct {
	settings *domain.CalendarSettings
}

func (f *fakeCalendarSettingsRepo) Get(_ context.Context) (*domain.CalendarSettings, error) {
	if f.settings == nil {
		return nil, calendarsettings.ErrSettingsNotFound
	}
	return f.settings, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

func confirmedBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ClientName:      "Анна Смирнова",
		SessionCategory: "portrait",
		BookingDate:     testDate,
		StartTime:       "10:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
		Source:          domain.SourceSelfService,
	}
}

func newTestService(repo *fakeBookingRepo, resolver *fakeResolver, client *fakeCalendarClient, calendarSettings *fakeCalendarSettingsRepo) *Service {
	if resolver == nil {
		resolver = &fakeResolver{}
	}
	if client == nil {
		client = &fakeCalendarClient{}
	}
	if calendarSettings == nil {
		calendarSettings = &fakeCalendarSettingsRepo{}
	}
	return NewService(repo, resolver, client, calendarSettings, fakeTxManager{}, nopLogger{})
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil, nil, nil)

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_CancelledExcludedByDefault(t *testing.T) {
	cancelled := confirmedBooking(2)
	cancelled.Status = domain.StatusCancelled
	repo := newFakeBookingRepo(confirmedBooking(1), cancelled)
	svc := newTestService(repo, nil, nil, nil)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestList_UnknownStatusFilter(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil, nil, nil)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("unknown")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_ContactFieldsWithoutReschedule(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1))
	resolver := &fakeResolver{}
	svc := newTestService(repo, resolver, nil, nil)

	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		ClientName: ptr.Ptr("Анна Петрова"),
		Notes:      ptr.Ptr("Перезвонить накануне"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Анна Петрова", resp.ClientName)
	// Без смены даты или времени доступность не проверяется
	assert.Nil(t, resolver.lastRequest)
}

func TestUpdate_RescheduleChecksTargetSlot(t *testing.T) {
	b := confirmedBooking(1)
	b.CalendarEventUID = ptr.Ptr("event-uid")
	repo := newFakeBookingRepo(b)
	resolver := &fakeResolver{slots: []types.TimeString{"14:00"}}
	svc := newTestService(repo, resolver, nil, nil)

	newDate := testDate.AddDate(0, 0, 2)
	resp, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		BookingDate: ptr.Ptr(newDate),
		StartTime:   ptr.Ptr("14:00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-13", resp.BookingDate)
	assert.Equal(t, "14:00", resp.StartTime)

	// Занятость самого бронирования при проверке не учитывается
	require.NotNil(t, resolver.lastRequest)
	require.NotNil(t, resolver.lastRequest.ExcludeBookingID)
	assert.Equal(t, int64(1), *resolver.lastRequest.ExcludeBookingID)

	// Событие внешнего календаря устарело, UID сброшен до следующей синхронизации
	assert.Nil(t, repo.byID[1].CalendarEventUID)
}

func TestUpdate_RescheduleTargetSlotBusy(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1))
	resolver := &fakeResolver{slots: []types.TimeString{"10:00"}}
	svc := newTestService(repo, resolver, nil, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("14:00"),
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, types.TimeString("10:00"), repo.byID[1].StartTime)
}

func TestUpdate_CompletedCannotBeRescheduled(t *testing.T) {
	b := confirmedBooking(1)
	b.Status = domain.StatusCompleted
	svc := newTestService(newFakeBookingRepo(b), &fakeResolver{slots: []types.TimeString{"14:00"}}, nil, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("14:00"),
	})
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestUpdate_InvalidStartTime(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(confirmedBooking(1)), nil, nil, nil)

	_, err := svc.Update(context.Background(), 1, &models.UpdateBookingRequest{
		StartTime: ptr.Ptr("2pm"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed", nil},
		{"pending to cancelled", domain.StatusPending, "cancelled", nil},
		{"pending to completed", domain.StatusPending, "completed", ErrInvalidTransition},
		{"confirmed to completed", domain.StatusConfirmed, "completed", nil},
		{"confirmed to rescheduled", domain.StatusConfirmed, "rescheduled", nil},
		{"confirmed to pending", domain.StatusConfirmed, "pending", ErrInvalidTransition},
		{"rescheduled to confirmed", domain.StatusRescheduled, "confirmed", nil},
		{"completed is terminal", domain.StatusCompleted, "confirmed", ErrInvalidTransition},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed", ErrInvalidTransition},
		{"same status is no-op", domain.StatusConfirmed, "confirmed", nil},
		{"unknown status", domain.StatusPending, "archived", ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := confirmedBooking(1)
			b.Status = tt.from
			repo := newFakeBookingRepo(b)
			svc := newTestService(repo, nil, nil, nil)

			err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.byID[1].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.to), repo.byID[1].Status)
		})
	}
}

func TestDelete_RemovesMirroredCalendarEvent(t *testing.T) {
	b := confirmedBooking(1)
	b.CalendarEventUID = ptr.Ptr("event-uid")
	repo := newFakeBookingRepo(b)
	client := &fakeCalendarClient{calendars: []caldav.Calendar{
		{Name: "Бронирования", Href: "/cal/bookings/"},
	}}
	calendarSettings := &fakeCalendarSettingsRepo{settings: &domain.CalendarSettings{
		CalDAVURL:           "https://dav.example.com",
		Username:            "studio",
		Password:            "secret",
		BookingCalendarName: "Бронирования",
	}}
	svc := newTestService(repo, nil, client, calendarSettings)

	require.NoError(t, svc.Delete(context.Background(), 1))

	assert.Equal(t, "event-uid", client.deletedUID)
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDelete_CalendarFailureDoesNotBlock(t *testing.T) {
	b := confirmedBooking(1)
	b.CalendarEventUID = ptr.Ptr("event-uid")
	repo := newFakeBookingRepo(b)
	client := &fakeCalendarClient{
		calendars: []caldav.Calendar{{Name: "Бронирования", Href: "/cal/bookings/"}},
		deleteErr: assert.AnError,
	}
	calendarSettings := &fakeCalendarSettingsRepo{settings: &domain.CalendarSettings{
		CalDAVURL:           "https://dav.example.com",
		Username:            "studio",
		Password:            "secret",
		BookingCalendarName: "Бронирования",
	}}
	svc := newTestService(repo, nil, client, calendarSettings)

	// Недоступность внешнего сервера не мешает удалению
	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, repo.deleted)
}

func TestDelete_NoCalendarCallWithoutUID(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking(1))
	client := &fakeCalendarClient{}
	svc := newTestService(repo, nil, client, nil)

	require.NoError(t, svc.Delete(context.Background(), 1))
	assert.Empty(t, client.deletedUID)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), nil, nil, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrBookingNotFound)
}
