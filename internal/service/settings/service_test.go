package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	calendarSettingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	questionnaireRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/questionnaire"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
	"github.com/silwerlining/SLP-BookingService/pkg/ptr"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

type fakeSettingsRepo struct {
	settings     *domain.BookingSettings
	blockedDates map[int64]*domain.BlockedDate
	blockedSlots map[int64]*domain.BlockedSlot
	nextID       int64
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{
		blockedDates: make(map[int64]*domain.BlockedDate),
		blockedSlots: make(map[int64]*domain.BlockedSlot),
	}
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BookingSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSettingsRepo) Upsert(_ context.Context, s *domain.BookingSettings) error {
	saved := *s
	f.settings = &saved
	return nil
}

func (f *fakeSettingsRepo) CreateBlockedDate(_ context.Context, block *domain.BlockedDate) (*domain.BlockedDate, error) {
	f.nextID++
	created := *block
	created.ID = f.nextID
	f.blockedDates[created.ID] = &created
	return &created, nil
}

func (f *fakeSettingsRepo) DeleteBlockedDate(_ context.Context, id int64) error {
	if _, ok := f.blockedDates[id]; !ok {
		return settingsRepo.ErrBlockNotFound
	}
	delete(f.blockedDates, id)
	return nil
}

func (f *fakeSettingsRepo) CreateBlockedSlot(_ context.Context, block *domain.BlockedSlot) (*domain.BlockedSlot, error) {
	f.nextID++
	created := *block
	created.ID = f.nextID
	f.blockedSlots[created.ID] = &created
	return &created, nil
}

func (f *fakeSettingsRepo) DeleteBlockedSlot(_ context.Context, id int64) error {
	if _, ok := f.blockedSlots[id]; !ok {
		return settingsRepo.ErrBlockNotFound
	}
	delete(f.blockedSlots, id)
	return nil
}

type dayKey struct {
	category string
	dayID    int
}

type fakeScheduleRepo struct {
	template    map[dayKey][]types.TimeString
	customSlots map[int64]*domain.CustomSlot
	nextID      int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		template:    make(map[dayKey][]types.TimeString),
		customSlots: make(map[int64]*domain.CustomSlot),
	}
}

func (f *fakeScheduleRepo) GetTemplateSlots(_ context.Context) ([]*domain.TemplateSlot, error) {
	slots := make([]*domain.TemplateSlot, 0)
	for key, times := range f.template {
		for _, t := range times {
			slots = append(slots, &domain.TemplateSlot{
				SessionCategory: key.category,
				DayID:           key.dayID,
				StartTime:       t,
			})
		}
	}
	return slots, nil
}

func (f *fakeScheduleRepo) ReplaceDaySlots(_ context.Context, category string, dayID int, times []types.TimeString) error {
	f.template[dayKey{category, dayID}] = times
	return nil
}

func (f *fakeScheduleRepo) CreateCustomSlot(_ context.Context, slot *domain.CustomSlot) (*domain.CustomSlot, error) {
	f.nextID++
	created := *slot
	created.ID = f.nextID
	f.customSlots[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) DeleteCustomSlot(_ context.Context, id int64) error {
	if _, ok := f.customSlots[id]; !ok {
		return settingsRepo.ErrBlockNotFound
	}
	delete(f.customSlots, id)
	return nil
}

type fakeQuestionnaireRepo struct {
	byCategory map[string]*domain.Questionnaire
}

func (f *fakeQuestionnaireRepo) GetBySessionCategory(_ context.Context, category string) (*domain.Questionnaire, error) {
	if q, ok := f.byCategory[category]; ok {
		return q, nil
	}
	return nil, questionnaireRepo.ErrQuestionnaireNotFound
}

func (f *fakeQuestionnaireRepo) Upsert(_ context.Context, q *domain.Questionnaire) error {
	if f.byCategory == nil {
		f.byCategory = make(map[string]*domain.Questionnaire)
	}
	f.byCategory[q.SessionCategory] = q
	return nil
}

type fakeCalendarSettingsRepo struct {
	settings *domain.CalendarSettings
}

func (f *fakeCalendarSettingsRepo) Get(_ context.Context) (*domain.CalendarSettings, error) {
	if f.settings == nil {
		return nil, calendarSettingsRepo.ErrSettingsNotFound
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeCalendarSettingsRepo) Upsert(_ context.Context, s *domain.CalendarSettings) error {
	saved := *s
	f.settings = &saved
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(settings *fakeSettingsRepo, schedule *fakeScheduleRepo) *Service {
	return NewService(settings, schedule, &fakeQuestionnaireRepo{}, &fakeCalendarSettingsRepo{}, fakeTxManager{}, nopLogger{})
}

func TestGetSettings_DefaultsWhenNotSaved(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	resp, err := svc.GetSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultBufferMinutes, resp.BufferMinutes)
	assert.Equal(t, domain.DefaultMinLeadDays, resp.MinLeadDays)
	assert.Equal(t, domain.DefaultMaxAdvanceDays, resp.MaxAdvanceDays)
	assert.Equal(t, domain.DefaultSessionDurationMinutes, resp.SessionDurationMinutes)
	assert.Equal(t, float64(domain.DefaultWeekendSurcharge), resp.WeekendSurcharge)
	assert.Empty(t, resp.HolidayDates)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	settings := newFakeSettingsRepo()
	settings.settings = &domain.BookingSettings{
		BufferMinutes:          30,
		MinLeadDays:            1,
		MaxAdvanceDays:         60,
		SessionDurationMinutes: 120,
		WeekendSurcharge:       750,
	}
	svc := newTestService(settings, newFakeScheduleRepo())

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BufferMinutes: ptr.Ptr(60),
		HolidayDates:  []string{"2026-05-01"},
	})
	require.NoError(t, err)

	// Остальные поля не тронуты
	assert.Equal(t, 60, resp.BufferMinutes)
	assert.Equal(t, 1, resp.MinLeadDays)
	assert.Equal(t, 120, resp.SessionDurationMinutes)
	assert.Equal(t, []string{"2026-05-01"}, resp.HolidayDates)
}

func TestUpdateSettings_BufferConflictsWithTemplateGap(t *testing.T) {
	schedule := newFakeScheduleRepo()
	schedule.template[dayKey{"portrait", 3}] = []types.TimeString{"10:00", "11:00", "14:00"}
	svc := newTestService(newFakeSettingsRepo(), schedule)

	// Буфер 90 минут больше часового зазора 10:00-11:00
	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BufferMinutes: ptr.Ptr(90),
	})
	assert.ErrorIs(t, err, ErrConfigurationConflict)

	// Часовой буфер ровно помещается в зазор
	_, err = svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BufferMinutes: ptr.Ptr(60),
	})
	assert.NoError(t, err)
}

func TestUpdateSettings_ConflictCheckedAgainstMergedTemplate(t *testing.T) {
	schedule := newFakeScheduleRepo()
	schedule.template[dayKey{"portrait", 3}] = []types.TimeString{"10:00", "14:00"}
	svc := newTestService(newFakeSettingsRepo(), schedule)

	// Новый шаблон дня сжимает зазор до 30 минут при буфере 60
	_, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		BufferMinutes: ptr.Ptr(60),
		Template: map[string]map[string][]string{
			"portrait": {"3": {"10:00", "10:30"}},
		},
	})
	assert.ErrorIs(t, err, ErrConfigurationConflict)
}

func TestUpdateSettings_TemplateReplacesDay(t *testing.T) {
	schedule := newFakeScheduleRepo()
	schedule.template[dayKey{"portrait", 3}] = []types.TimeString{"09:00"}
	svc := newTestService(newFakeSettingsRepo(), schedule)

	resp, err := svc.UpdateSettings(context.Background(), &models.UpdateSettingsRequest{
		Template: map[string]map[string][]string{
			"portrait": {"3": {"14:00", "10:00"}},
		},
	})
	require.NoError(t, err)

	// Времена дня отсортированы и перезаписаны целиком
	assert.Equal(t, []string{"10:00", "14:00"}, resp.Template["portrait"]["3"])
	assert.Equal(t, []types.TimeString{"10:00", "14:00"}, schedule.template[dayKey{"portrait", 3}])
}

func TestUpdateSettings_Validation(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{"buffer above limit", &models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(500)}},
		{"negative lead days", &models.UpdateSettingsRequest{MinLeadDays: ptr.Ptr(-1)}},
		{"lead exceeds advance", &models.UpdateSettingsRequest{MinLeadDays: ptr.Ptr(30), MaxAdvanceDays: ptr.Ptr(10)}},
		{"duration below limit", &models.UpdateSettingsRequest{SessionDurationMinutes: ptr.Ptr(10)}},
		{"negative surcharge", &models.UpdateSettingsRequest{WeekendSurcharge: ptr.Ptr(-100.0)}},
		{"malformed holiday date", &models.UpdateSettingsRequest{HolidayDates: []string{"01.05.2026"}}},
		{"unknown template category", &models.UpdateSettingsRequest{Template: map[string]map[string][]string{"astro": {"1": {"10:00"}}}}},
		{"invalid template day", &models.UpdateSettingsRequest{Template: map[string]map[string][]string{"portrait": {"7": {"10:00"}}}}},
		{"duplicate template time", &models.UpdateSettingsRequest{Template: map[string]map[string][]string{"portrait": {"1": {"10:00", "10:00"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateSettings(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBlockedDates_CreateAndDelete(t *testing.T) {
	settings := newFakeSettingsRepo()
	svc := newTestService(settings, newFakeScheduleRepo())

	created, err := svc.CreateBlockedDate(context.Background(), &models.CreateBlockedDateRequest{
		Date:   "2026-03-18",
		Reason: ptr.Ptr("Выездная съёмка"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-18", created.Date)

	require.NoError(t, svc.DeleteBlockedDate(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteBlockedDate(context.Background(), created.ID), ErrBlockNotFound)
}

func TestCreateBlockedSlot_InvalidTime(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	_, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
		Date:      "2026-03-18",
		StartTime: "25:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCustomSlots_CreateAndDelete(t *testing.T) {
	schedule := newFakeScheduleRepo()
	svc := newTestService(newFakeSettingsRepo(), schedule)

	created, err := svc.CreateCustomSlot(context.Background(), &models.CreateCustomSlotRequest{
		SessionCategory: "wedding",
		Date:            "2026-03-14",
		StartTime:       "18:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomSlot(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteCustomSlot(context.Background(), created.ID), ErrCustomSlotNotFound)
}

func TestCreateCustomSlot_UnknownCategory(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	_, err := svc.CreateCustomSlot(context.Background(), &models.CreateCustomSlotRequest{
		SessionCategory: "astro",
		Date:            "2026-03-14",
		StartTime:       "18:00",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalendarSettings_PasswordWriteOnly(t *testing.T) {
	calendarRepo := &fakeCalendarSettingsRepo{}
	svc := NewService(newFakeSettingsRepo(), newFakeScheduleRepo(), &fakeQuestionnaireRepo{}, calendarRepo, fakeTxManager{}, nopLogger{})

	resp, err := svc.UpdateCalendarSettings(context.Background(), &models.UpdateCalendarSettingsRequest{
		CalDAVURL:           "https://dav.example.com",
		Username:            "studio",
		Password:            "secret",
		SyncEnabled:         true,
		BookingCalendarName: "Бронирования",
	})
	require.NoError(t, err)

	// Пароль наружу не отдаётся, только признак наличия
	assert.True(t, resp.PasswordSet)
	assert.Equal(t, "secret", calendarRepo.settings.Password)

	// Пустой пароль в запросе сохраняет текущий
	_, err = svc.UpdateCalendarSettings(context.Background(), &models.UpdateCalendarSettingsRequest{
		CalDAVURL:           "https://dav.example.com",
		Username:            "studio",
		Password:            "",
		SyncEnabled:         false,
		BookingCalendarName: "Бронирования",
	})
	require.NoError(t, err)
	assert.Equal(t, "secret", calendarRepo.settings.Password)
	assert.False(t, calendarRepo.settings.SyncEnabled)
}

func TestGetCalendarSettings_EmptyWhenNotConfigured(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	resp, err := svc.GetCalendarSettings(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.PasswordSet)
	assert.Empty(t, resp.CalDAVURL)
}

func TestQuestionnaire_UpsertAndGet(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	_, err := svc.GetQuestionnaire(context.Background(), "family")
	assert.ErrorIs(t, err, ErrQuestionnaireNotFound)

	saved, err := svc.UpsertQuestionnaire(context.Background(), &models.UpsertQuestionnaireRequest{
		SessionCategory: "family",
		Fields: []models.QuestionnaireFieldModel{
			{Key: "children", Label: "Сколько детей", Kind: "text", Required: true},
			{Key: "location", Label: "Локация", Kind: "choice_single", Options: []string{"studio", "outdoor"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved.Fields, 2)

	got, err := svc.GetQuestionnaire(context.Background(), "family")
	require.NoError(t, err)
	assert.Equal(t, saved.Fields, got.Fields)
}

func TestUpsertQuestionnaire_Validation(t *testing.T) {
	svc := newTestService(newFakeSettingsRepo(), newFakeScheduleRepo())

	tests := []struct {
		name string
		req  *models.UpsertQuestionnaireRequest
	}{
		{
			name: "unknown category",
			req:  &models.UpsertQuestionnaireRequest{SessionCategory: "astro"},
		},
		{
			name: "duplicate field key",
			req: &models.UpsertQuestionnaireRequest{
				SessionCategory: "family",
				Fields: []models.QuestionnaireFieldModel{
					{Key: "a", Label: "А", Kind: "text"},
					{Key: "a", Label: "Б", Kind: "text"},
				},
			},
		},
		{
			name: "choice without options",
			req: &models.UpsertQuestionnaireRequest{
				SessionCategory: "family",
				Fields: []models.QuestionnaireFieldModel{
					{Key: "a", Label: "А", Kind: "choice_single"},
				},
			},
		},
		{
			name: "unknown field kind",
			req: &models.UpsertQuestionnaireRequest{
				SessionCategory: "family",
				Fields: []models.QuestionnaireFieldModel{
					{Key: "a", Label: "А", Kind: "number"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertQuestionnaire(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
