package create_manual_booking

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	createManualBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/create_manual_booking"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// CreateManualBookingRequest HTTP request model
type CreateManualBookingRequest struct {
	ClientName      string   `json:"clientName"`
	ClientPhone     *string  `json:"clientPhone,omitempty"`
	SessionCategory string   `json:"sessionCategory"`
	BookingDate     string   `json:"bookingDate"` // "2026-03-15"
	StartTime       string   `json:"startTime"`   // "10:00"
	PackageName     *string  `json:"packageName,omitempty"`
	PackagePrice    *float64 `json:"packagePrice,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// ManualBookingResponse HTTP response model: бронирование и одноразовая
// ссылка для завершения клиентом
type ManualBookingResponse struct {
	BookingID                 int64  `json:"bookingId"`
	ClientName                string `json:"clientName"`
	SessionCategory           string `json:"sessionCategory"`
	BookingDate               string `json:"bookingDate"`
	StartTime                 string `json:"startTime"`
	DurationMinutes           int    `json:"durationMinutes"`
	Status                    string `json:"status"`
	IsWeekendSurchargeApplied bool   `json:"isWeekendSurchargeApplied"`

	Token          string `json:"token"`
	TokenExpiresAt string `json:"tokenExpiresAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateManualBookingRequest) ToUseCaseRequest() (*createManualBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createManualBooking.Request{
		ClientName:      r.ClientName,
		ClientPhone:     r.ClientPhone,
		SessionCategory: r.SessionCategory,
		Date:            bookingDate,
		StartTime:       startTime,
		PackageName:     r.PackageName,
		PackagePrice:    r.PackagePrice,
		Notes:           r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createManualBooking.Response) *ManualBookingResponse {
	return &ManualBookingResponse{
		BookingID:                 resp.BookingID,
		ClientName:                resp.ClientName,
		SessionCategory:           resp.SessionCategory,
		BookingDate:               resp.BookingDate.Format(domain.DateFormat),
		StartTime:                 resp.StartTime.String(),
		DurationMinutes:           resp.DurationMinutes,
		Status:                    resp.Status,
		IsWeekendSurchargeApplied: resp.IsWeekendSurchargeApplied,
		Token:                     resp.Token,
		TokenExpiresAt:            resp.TokenExpiresAt.Format(time.RFC3339),
	}
}
