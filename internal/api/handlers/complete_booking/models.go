package complete_booking

import (
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

// CompleteBookingRequest HTTP request model
type CompleteBookingRequest struct {
	ClientEmail *string             `json:"clientEmail,omitempty"`
	ClientPhone *string             `json:"clientPhone,omitempty"`
	Notes       *string             `json:"notes,omitempty"`
	Answers     map[string][]string `json:"answers,omitempty"`
}

// CompleteBookingResponse HTTP response model
type CompleteBookingResponse struct {
	BookingID       int64   `json:"bookingId"`
	ClientName      string  `json:"clientName"`
	ClientEmail     *string `json:"clientEmail,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	SessionCategory string  `json:"sessionCategory"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteBookingRequest) ToUseCaseRequest(token string) *completeBooking.CompleteRequest {
	return &completeBooking.CompleteRequest{
		Token:       token,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		Notes:       r.Notes,
		Answers:     r.Answers,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.CompleteResponse) *CompleteBookingResponse {
	return &CompleteBookingResponse{
		BookingID:       resp.BookingID,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		SessionCategory: resp.SessionCategory,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
	}
}
