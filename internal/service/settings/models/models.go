package models

import (
	"fmt"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление ограничений и шаблона
// Template: категория -> день недели ("0".."6", 0 - воскресенье) -> времена слотов
// Перечисленные дни перезаписываются целиком, остальные не трогаются
type UpdateSettingsRequest struct {
	BufferMinutes          *int     `json:"bufferMinutes,omitempty"`
	MinLeadDays            *int     `json:"minLeadDays,omitempty"`
	MaxAdvanceDays         *int     `json:"maxAdvanceDays,omitempty"`
	SessionDurationMinutes *int     `json:"sessionDurationMinutes,omitempty"`
	WeekendSurcharge       *float64 `json:"weekendSurcharge,omitempty"`
	HolidayDates           []string `json:"holidayDates,omitempty"` // "2026-01-01"

	Template map[string]map[string][]string `json:"template,omitempty"`
}

// CreateBlockedDateRequest запрос на закрытие даты целиком
type CreateBlockedDateRequest struct {
	Date   string  `json:"date"` // "2026-03-15"
	Reason *string `json:"reason,omitempty"`
}

// CreateBlockedSlotRequest запрос на точечную блокировку слота
type CreateBlockedSlotRequest struct {
	Date      string  `json:"date"`      // "2026-03-15"
	StartTime string  `json:"startTime"` // "10:00"
	Reason    *string `json:"reason,omitempty"`
}

// CreateCustomSlotRequest запрос на разовый слот вне шаблона
type CreateCustomSlotRequest struct {
	SessionCategory string `json:"sessionCategory"`
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "19:00"
}

// UpdateCalendarSettingsRequest запрос на обновление подключения CalDAV
// Пустой пароль сохраняет текущий
type UpdateCalendarSettingsRequest struct {
	CalDAVURL           string `json:"caldavUrl"`
	Username            string `json:"username"`
	Password            string `json:"password,omitempty"`
	SyncEnabled         bool   `json:"syncEnabled"`
	BookingCalendarName string `json:"bookingCalendarName"`
}

// QuestionnaireFieldModel поле анкеты в HTTP представлении
type QuestionnaireFieldModel struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Required  bool     `json:"required"`
	Options   []string `json:"options,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
}

// UpsertQuestionnaireRequest запрос на сохранение анкеты категории
type UpsertQuestionnaireRequest struct {
	SessionCategory string                    `json:"sessionCategory"`
	Fields          []QuestionnaireFieldModel `json:"fields"`
}

// ToDomainQuestionnaire конвертирует запрос в domain модель с валидацией
func (r *UpsertQuestionnaireRequest) ToDomainQuestionnaire() (*domain.Questionnaire, error) {
	if !domain.IsKnownCategory(r.SessionCategory) {
		return nil, fmt.Errorf("unknown category %q", r.SessionCategory)
	}

	fields := make([]domain.QuestionnaireField, 0, len(r.Fields))
	seen := make(map[string]bool, len(r.Fields))
	for _, f := range r.Fields {
		if f.Key == "" || f.Label == "" {
			return nil, fmt.Errorf("field key and label are required")
		}
		if seen[f.Key] {
			return nil, fmt.Errorf("duplicate field key %q", f.Key)
		}
		seen[f.Key] = true

		kind := domain.FieldKind(f.Kind)
		switch kind {
		case domain.FieldText, domain.FieldTextarea, domain.FieldDate:
		case domain.FieldChoiceSingle, domain.FieldChoiceMultiple:
			if len(f.Options) == 0 {
				return nil, fmt.Errorf("field %q requires options", f.Key)
			}
		default:
			return nil, fmt.Errorf("unknown field kind %q", f.Kind)
		}

		fields = append(fields, domain.QuestionnaireField{
			Key:       f.Key,
			Label:     f.Label,
			Kind:      kind,
			Required:  f.Required,
			Options:   f.Options,
			MaxLength: f.MaxLength,
		})
	}

	return &domain.Questionnaire{
		SessionCategory: r.SessionCategory,
		Fields:          fields,
	}, nil
}

// Response модели

// SettingsResponse ограничения и недельный шаблон одним ответом
type SettingsResponse struct {
	BufferMinutes          int      `json:"bufferMinutes"`
	MinLeadDays            int      `json:"minLeadDays"`
	MaxAdvanceDays         int      `json:"maxAdvanceDays"`
	SessionDurationMinutes int      `json:"sessionDurationMinutes"`
	WeekendSurcharge       float64  `json:"weekendSurcharge"`
	HolidayDates           []string `json:"holidayDates"`

	// Категория -> день недели ("0".."6") -> времена слотов
	Template map[string]map[string][]string `json:"template"`
}

// BlockedDateResponse ответ с данными блокировки даты
type BlockedDateResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockedSlotResponse ответ с данными блокировки слота
type BlockedSlotResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomSlotResponse ответ с данными разового слота
type CustomSlotResponse struct {
	ID              int64     `json:"id"`
	SessionCategory string    `json:"sessionCategory"`
	Date            string    `json:"date"`
	StartTime       string    `json:"startTime"`
	CreatedAt       time.Time `json:"createdAt"`
}

// CalendarSettingsResponse настройки календаря без пароля
type CalendarSettingsResponse struct {
	CalDAVURL           string     `json:"caldavUrl"`
	Username            string     `json:"username"`
	PasswordSet         bool       `json:"passwordSet"`
	SyncEnabled         bool       `json:"syncEnabled"`
	BookingCalendarName string     `json:"bookingCalendarName"`
	LastSyncedAt        *time.Time `json:"lastSyncedAt,omitempty"`
}

// Методы конвертации

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) *BlockedDateResponse {
	if b == nil {
		return nil
	}
	return &BlockedDateResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(b *domain.BlockedSlot) *BlockedSlotResponse {
	if b == nil {
		return nil
	}
	return &BlockedSlotResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainCustomSlot конвертирует domain модель в DTO
func FromDomainCustomSlot(s *domain.CustomSlot) *CustomSlotResponse {
	if s == nil {
		return nil
	}
	return &CustomSlotResponse{
		ID:              s.ID,
		SessionCategory: s.SessionCategory,
		Date:            s.Date.Format(domain.DateFormat),
		StartTime:       s.StartTime.String(),
		CreatedAt:       s.CreatedAt,
	}
}

// QuestionnaireResponse анкета категории в HTTP представлении
type QuestionnaireResponse struct {
	SessionCategory string                    `json:"sessionCategory"`
	Fields          []QuestionnaireFieldModel `json:"fields"`
}

// FromDomainQuestionnaire конвертирует domain модель в DTO
func FromDomainQuestionnaire(q *domain.Questionnaire) *QuestionnaireResponse {
	if q == nil {
		return nil
	}
	fields := make([]QuestionnaireFieldModel, 0, len(q.Fields))
	for _, f := range q.Fields {
		fields = append(fields, QuestionnaireFieldModel{
			Key:       f.Key,
			Label:     f.Label,
			Kind:      string(f.Kind),
			Required:  f.Required,
			Options:   f.Options,
			MaxLength: f.MaxLength,
		})
	}
	return &QuestionnaireResponse{
		SessionCategory: q.SessionCategory,
		Fields:          fields,
	}
}

// FromDomainCalendarSettings конвертирует domain модель в DTO, скрывая пароль
func FromDomainCalendarSettings(s *domain.CalendarSettings) *CalendarSettingsResponse {
	if s == nil {
		return nil
	}
	return &CalendarSettingsResponse{
		CalDAVURL:           s.CalDAVURL,
		Username:            s.Username,
		PasswordSet:         s.Password != "",
		SyncEnabled:         s.SyncEnabled,
		BookingCalendarName: s.BookingCalendarName,
		LastSyncedAt:        s.LastSyncedAt,
	}
}
