package get_booking_form

import (
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

// FieldResponse HTTP модель поля анкеты
type FieldResponse struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Kind      string   `json:"kind"`
	Required  bool     `json:"required"`
	Options   []string `json:"options,omitempty"`
	MaxLength int      `json:"maxLength,omitempty"`
}

// FormResponse HTTP модель формы завершения бронирования
type FormResponse struct {
	BookingID       int64           `json:"bookingId"`
	ClientName      string          `json:"clientName"`
	SessionCategory string          `json:"sessionCategory"`
	BookingDate     string          `json:"bookingDate"`
	StartTime       string          `json:"startTime"`
	DurationMinutes int             `json:"durationMinutes"`
	Status          string          `json:"status"`
	Fields          []FieldResponse `json:"fields"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.FormResponse) *FormResponse {
	fields := make([]FieldResponse, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, FieldResponse{
			Key:       f.Key,
			Label:     f.Label,
			Kind:      string(f.Kind),
			Required:  f.Required,
			Options:   f.Options,
			MaxLength: f.MaxLength,
		})
	}

	return &FormResponse{
		BookingID:       resp.BookingID,
		ClientName:      resp.ClientName,
		SessionCategory: resp.SessionCategory,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Fields:          fields,
	}
}
