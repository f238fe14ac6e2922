// Package settings операторская конфигурация движка: ограничения
// бронирования, недельный шаблон, блокировки, разовые слоты и подключение
// к внешнему календарю
package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	calendarSettingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/calendarsettings"
	questionnaireRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/questionnaire"
	settingsRepo "github.com/silwerlining/SLP-BookingService/internal/infra/storage/settings"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// Service сервис конфигурации движка бронирования
type Service struct {
	settingsRepo         SettingsRepository
	scheduleRepo         ScheduleRepository
	questionnaireRepo    QuestionnaireRepository
	calendarSettingsRepo CalendarSettingsRepository
	txManager            TransactionManager
	logger               Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	settingsRepo SettingsRepository,
	scheduleRepo ScheduleRepository,
	questionnaireRepo QuestionnaireRepository,
	calendarSettingsRepo CalendarSettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:         settingsRepo,
		scheduleRepo:         scheduleRepo,
		questionnaireRepo:    questionnaireRepo,
		calendarSettingsRepo: calendarSettingsRepo,
		txManager:            txManager,
		logger:               logger,
	}
}

// GetSettings возвращает ограничения и недельный шаблон одним ответом
// Если настройки ещё не сохранялись, отдаются значения по умолчанию
func (s *Service) GetSettings(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("GetSettings: fetching booking settings")

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	templateSlots, err := s.scheduleRepo.GetTemplateSlots(ctx)
	if err != nil {
		s.logger.Error("GetSettings: failed to get template slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get template slots: %v", ErrInternal, err)
	}

	holidays := make([]string, 0, len(settings.HolidayDates))
	for _, h := range settings.HolidayDates {
		holidays = append(holidays, h.Format(domain.DateFormat))
	}

	return &models.SettingsResponse{
		BufferMinutes:          settings.BufferMinutes,
		MinLeadDays:            settings.MinLeadDays,
		MaxAdvanceDays:         settings.MaxAdvanceDays,
		SessionDurationMinutes: settings.SessionDurationMinutes,
		WeekendSurcharge:       settings.WeekendSurcharge,
		HolidayDates:           holidays,
		Template:               buildTemplateView(templateSlots),
	}, nil
}

// UpdateSettings обновляет ограничения и, опционально, дни шаблона
// Несовместимость буфера с зазорами шаблона отклоняется на сохранении,
// а не обнаруживается при расчёте доступности
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: updating booking settings")

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	if err := applySettingsUpdate(settings, req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}
	if err := validateSettings(settings); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	templateSlots, err := s.scheduleRepo.GetTemplateSlots(ctx)
	if err != nil {
		s.logger.Error("UpdateSettings: failed to get template slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get template slots: %v", ErrInternal, err)
	}

	newTemplate, err := parseTemplateUpdate(req.Template)
	if err != nil {
		s.logger.Warn("UpdateSettings: invalid template: %v", err)
		return nil, err
	}

	if err := checkTemplateGaps(settings.BufferMinutes, mergeTemplate(templateSlots, newTemplate)); err != nil {
		s.logger.Warn("UpdateSettings: configuration conflict: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.settingsRepo.Upsert(txCtx, settings); err != nil {
			return fmt.Errorf("failed to upsert settings: %w", err)
		}
		for key, times := range newTemplate {
			if err := s.scheduleRepo.ReplaceDaySlots(txCtx, key.category, key.dayID, times); err != nil {
				return fmt.Errorf("failed to replace slots for %s/%d: %w", key.category, key.dayID, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateSettings: %v", err)
		return nil, fmt.Errorf("%w: UpdateSettings - %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSettings: settings updated, %d template days replaced", len(newTemplate))
	return s.GetSettings(ctx)
}

// CreateBlockedDate закрывает дату целиком
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: date=%s", req.Date)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}

	created, err := s.settingsRepo.CreateBlockedDate(ctx, &domain.BlockedDate{
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate снимает блокировку даты
func (s *Service) DeleteBlockedDate(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedDate: id=%d", id)

	if err := s.settingsRepo.DeleteBlockedDate(ctx, id); err != nil {
		if errors.Is(err, settingsRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}
	return nil
}

// CreateBlockedSlot точечно блокирует один слот даты
func (s *Service) CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error) {
	s.logger.Info("CreateBlockedSlot: date=%s, time=%s", req.Date, req.StartTime)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	created, err := s.settingsRepo.CreateBlockedSlot(ctx, &domain.BlockedSlot{
		Date:      date,
		StartTime: startTime,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlockedSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedSlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedSlot(created), nil
}

// DeleteBlockedSlot снимает точечную блокировку
func (s *Service) DeleteBlockedSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedSlot: id=%d", id)

	if err := s.settingsRepo.DeleteBlockedSlot(ctx, id); err != nil {
		if errors.Is(err, settingsRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlockedSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedSlot - repository error: %v", ErrInternal, err)
	}
	return nil
}

// CreateCustomSlot добавляет разовый слот вне недельного шаблона
func (s *Service) CreateCustomSlot(ctx context.Context, req *models.CreateCustomSlotRequest) (*models.CustomSlotResponse, error) {
	s.logger.Info("CreateCustomSlot: category=%s, date=%s, time=%s",
		req.SessionCategory, req.Date, req.StartTime)

	if !domain.IsKnownCategory(req.SessionCategory) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, req.SessionCategory)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, req.Date)
	}
	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, req.StartTime)
	}

	created, err := s.scheduleRepo.CreateCustomSlot(ctx, &domain.CustomSlot{
		SessionCategory: req.SessionCategory,
		Date:            date,
		StartTime:       startTime,
	})
	if err != nil {
		s.logger.Error("CreateCustomSlot: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateCustomSlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomSlot(created), nil
}

// DeleteCustomSlot удаляет разовый слот
func (s *Service) DeleteCustomSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCustomSlot: id=%d", id)

	if err := s.scheduleRepo.DeleteCustomSlot(ctx, id); err != nil {
		if errors.Is(err, settingsRepo.ErrBlockNotFound) {
			return ErrCustomSlotNotFound
		}
		s.logger.Error("DeleteCustomSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCustomSlot - repository error: %v", ErrInternal, err)
	}
	return nil
}

// GetCalendarSettings возвращает настройки подключения без пароля
func (s *Service) GetCalendarSettings(ctx context.Context) (*models.CalendarSettingsResponse, error) {
	s.logger.Info("GetCalendarSettings: fetching calendar settings")

	settings, err := s.calendarSettingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, calendarSettingsRepo.ErrSettingsNotFound) {
			return models.FromDomainCalendarSettings(&domain.CalendarSettings{}), nil
		}
		s.logger.Error("GetCalendarSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCalendarSettings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendarSettings(settings), nil
}

// UpdateCalendarSettings сохраняет подключение CalDAV
// Пароль write-only: пустое значение в запросе сохраняет текущий пароль
func (s *Service) UpdateCalendarSettings(ctx context.Context, req *models.UpdateCalendarSettingsRequest) (*models.CalendarSettingsResponse, error) {
	s.logger.Info("UpdateCalendarSettings: url=%s, syncEnabled=%v", req.CalDAVURL, req.SyncEnabled)

	password := req.Password
	if password == "" {
		current, err := s.calendarSettingsRepo.Get(ctx)
		if err != nil && !errors.Is(err, calendarSettingsRepo.ErrSettingsNotFound) {
			s.logger.Error("UpdateCalendarSettings: repository error: %v", err)
			return nil, fmt.Errorf("%w: UpdateCalendarSettings - repository error: %v", ErrInternal, err)
		}
		if current != nil {
			password = current.Password
		}
	}

	updated := &domain.CalendarSettings{
		CalDAVURL:           req.CalDAVURL,
		Username:            req.Username,
		Password:            password,
		SyncEnabled:         req.SyncEnabled,
		BookingCalendarName: req.BookingCalendarName,
	}

	if err := s.calendarSettingsRepo.Upsert(ctx, updated); err != nil {
		s.logger.Error("UpdateCalendarSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateCalendarSettings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateCalendarSettings: calendar settings updated")
	return models.FromDomainCalendarSettings(updated), nil
}

// GetQuestionnaire возвращает анкету категории
func (s *Service) GetQuestionnaire(ctx context.Context, category string) (*models.QuestionnaireResponse, error) {
	s.logger.Info("GetQuestionnaire: category=%s", category)

	if !domain.IsKnownCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}

	q, err := s.questionnaireRepo.GetBySessionCategory(ctx, category)
	if err != nil {
		if errors.Is(err, questionnaireRepo.ErrQuestionnaireNotFound) {
			return nil, ErrQuestionnaireNotFound
		}
		s.logger.Error("GetQuestionnaire: repository error for category=%s: %v", category, err)
		return nil, fmt.Errorf("%w: GetQuestionnaire - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainQuestionnaire(q), nil
}

// UpsertQuestionnaire сохраняет анкету категории целиком
func (s *Service) UpsertQuestionnaire(ctx context.Context, req *models.UpsertQuestionnaireRequest) (*models.QuestionnaireResponse, error) {
	s.logger.Info("UpsertQuestionnaire: category=%s, %d fields", req.SessionCategory, len(req.Fields))

	q, err := req.ToDomainQuestionnaire()
	if err != nil {
		s.logger.Warn("UpsertQuestionnaire: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.questionnaireRepo.Upsert(ctx, q); err != nil {
		s.logger.Error("UpsertQuestionnaire: repository error for category=%s: %v", req.SessionCategory, err)
		return nil, fmt.Errorf("%w: UpsertQuestionnaire - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertQuestionnaire: questionnaire saved for category=%s", req.SessionCategory)
	return models.FromDomainQuestionnaire(q), nil
}

// Вспомогательные функции

func (s *Service) loadSettings(ctx context.Context) (*domain.BookingSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return &domain.BookingSettings{
				BufferMinutes:          domain.DefaultBufferMinutes,
				MinLeadDays:            domain.DefaultMinLeadDays,
				MaxAdvanceDays:         domain.DefaultMaxAdvanceDays,
				SessionDurationMinutes: domain.DefaultSessionDurationMinutes,
				WeekendSurcharge:       domain.DefaultWeekendSurcharge,
			}, nil
		}
		s.logger.Error("loadSettings: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return settings, nil
}

func applySettingsUpdate(settings *domain.BookingSettings, req *models.UpdateSettingsRequest) error {
	if req.BufferMinutes != nil {
		settings.BufferMinutes = *req.BufferMinutes
	}
	if req.MinLeadDays != nil {
		settings.MinLeadDays = *req.MinLeadDays
	}
	if req.MaxAdvanceDays != nil {
		settings.MaxAdvanceDays = *req.MaxAdvanceDays
	}
	if req.SessionDurationMinutes != nil {
		settings.SessionDurationMinutes = *req.SessionDurationMinutes
	}
	if req.WeekendSurcharge != nil {
		settings.WeekendSurcharge = *req.WeekendSurcharge
	}
	if req.HolidayDates != nil {
		holidays := make([]time.Time, 0, len(req.HolidayDates))
		for _, raw := range req.HolidayDates {
			date, err := time.Parse(domain.DateFormat, raw)
			if err != nil {
				return fmt.Errorf("%w: invalid holiday date %q", ErrInvalidInput, raw)
			}
			holidays = append(holidays, date)
		}
		settings.HolidayDates = holidays
	}
	return nil
}

func validateSettings(s *domain.BookingSettings) error {
	if s.BufferMinutes < domain.MinBufferMinutes || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if s.MinLeadDays < domain.MinLeadDaysLimit || s.MinLeadDays > domain.MaxLeadDaysLimit {
		return fmt.Errorf("%w: minLeadDays must be between %d and %d",
			ErrInvalidInput, domain.MinLeadDaysLimit, domain.MaxLeadDaysLimit)
	}
	if s.MaxAdvanceDays < domain.MinAdvanceDaysLimit || s.MaxAdvanceDays > domain.MaxAdvanceDaysLimit {
		return fmt.Errorf("%w: maxAdvanceDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceDaysLimit, domain.MaxAdvanceDaysLimit)
	}
	if s.MinLeadDays > s.MaxAdvanceDays {
		return fmt.Errorf("%w: minLeadDays must not exceed maxAdvanceDays", ErrInvalidInput)
	}
	if s.SessionDurationMinutes < domain.MinSessionDurationMinutes || s.SessionDurationMinutes > domain.MaxSessionDurationMinutes {
		return fmt.Errorf("%w: sessionDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}
	if s.WeekendSurcharge < 0 {
		return fmt.Errorf("%w: weekendSurcharge must not be negative", ErrInvalidInput)
	}
	return nil
}

// templateKey день шаблона одной категории
type templateKey struct {
	category string
	dayID    int
}

// parseTemplateUpdate разбирает и валидирует дни шаблона из запроса
func parseTemplateUpdate(raw map[string]map[string][]string) (map[templateKey][]types.TimeString, error) {
	parsed := make(map[templateKey][]types.TimeString, len(raw))

	for category, days := range raw {
		if !domain.IsKnownCategory(category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		for rawDay, rawTimes := range days {
			dayID, err := strconv.Atoi(rawDay)
			if err != nil || dayID < 0 || dayID > 6 {
				return nil, fmt.Errorf("%w: invalid day of week %q", ErrInvalidInput, rawDay)
			}

			times := make([]types.TimeString, 0, len(rawTimes))
			seen := make(map[string]bool, len(rawTimes))
			for _, rawTime := range rawTimes {
				ts, err := types.NewTimeStringFromString(rawTime)
				if err != nil {
					return nil, fmt.Errorf("%w: invalid slot time %q", ErrInvalidInput, rawTime)
				}
				if seen[ts.String()] {
					return nil, fmt.Errorf("%w: duplicate slot time %q", ErrInvalidInput, rawTime)
				}
				seen[ts.String()] = true
				times = append(times, ts)
			}
			sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

			parsed[templateKey{category: category, dayID: dayID}] = times
		}
	}

	return parsed, nil
}

// mergeTemplate накладывает обновляемые дни на текущий шаблон
func mergeTemplate(current []*domain.TemplateSlot, update map[templateKey][]types.TimeString) map[templateKey][]types.TimeString {
	merged := make(map[templateKey][]types.TimeString)

	for _, slot := range current {
		key := templateKey{category: slot.SessionCategory, dayID: slot.DayID}
		merged[key] = append(merged[key], slot.StartTime)
	}
	for key := range merged {
		times := merged[key]
		sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })
	}
	for key, times := range update {
		merged[key] = times
	}

	return merged
}

// checkTemplateGaps отклоняет буфер, превышающий зазор между соседними
// слотами шаблона: такой буфер молча съедал бы слоты при расчёте
func checkTemplateGaps(bufferMinutes int, template map[templateKey][]types.TimeString) error {
	for key, times := range template {
		for i := 1; i < len(times); i++ {
			prev, err := times[i-1].MinutesFromMidnight()
			if err != nil {
				continue
			}
			next, err := times[i].MinutesFromMidnight()
			if err != nil {
				continue
			}
			if gap := next - prev; bufferMinutes > gap {
				return fmt.Errorf("%w: buffer %d min exceeds %d min gap between %s and %s (%s, day %d)",
					ErrConfigurationConflict, bufferMinutes, gap,
					times[i-1], times[i], key.category, key.dayID)
			}
		}
	}
	return nil
}

// buildTemplateView собирает read model шаблона: категория -> день -> времена
func buildTemplateView(slots []*domain.TemplateSlot) map[string]map[string][]string {
	view := make(map[string]map[string][]string)

	for _, slot := range slots {
		days, ok := view[slot.SessionCategory]
		if !ok {
			days = make(map[string][]string)
			view[slot.SessionCategory] = days
		}
		day := strconv.Itoa(slot.DayID)
		days[day] = append(days[day], slot.StartTime.String())
	}

	for _, days := range view {
		for day := range days {
			sort.Strings(days[day])
		}
	}

	return view
}
