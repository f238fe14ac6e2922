package create_booking

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	createBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/create_booking"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName      string   `json:"clientName"`
	ClientEmail     *string  `json:"clientEmail,omitempty"`
	ClientPhone     *string  `json:"clientPhone,omitempty"`
	SessionCategory string   `json:"sessionCategory"`
	BookingDate     string   `json:"bookingDate"` // "2026-03-15"
	StartTime       string   `json:"startTime"`   // "10:00"
	PackageName     *string  `json:"packageName,omitempty"`
	PackagePrice    *float64 `json:"packagePrice,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                        int64    `json:"id"`
	ClientName                string   `json:"clientName"`
	ClientEmail               *string  `json:"clientEmail,omitempty"`
	ClientPhone               *string  `json:"clientPhone,omitempty"`
	SessionCategory           string   `json:"sessionCategory"`
	BookingDate               string   `json:"bookingDate"`
	StartTime                 string   `json:"startTime"`
	DurationMinutes           int      `json:"durationMinutes"`
	Status                    string   `json:"status"`
	PackageName               *string  `json:"packageName,omitempty"`
	TotalPrice                *float64 `json:"totalPrice,omitempty"`
	IsWeekendSurchargeApplied bool     `json:"isWeekendSurchargeApplied"`
	Notes                     *string  `json:"notes,omitempty"`
	CreatedAt                 string   `json:"createdAt"`
	UpdatedAt                 string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
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
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                        resp.ID,
		ClientName:                resp.ClientName,
		ClientEmail:               resp.ClientEmail,
		ClientPhone:               resp.ClientPhone,
		SessionCategory:           resp.SessionCategory,
		BookingDate:               resp.BookingDate.Format(domain.DateFormat),
		StartTime:                 resp.StartTime.String(),
		DurationMinutes:           resp.DurationMinutes,
		Status:                    resp.Status,
		PackageName:               resp.PackageName,
		TotalPrice:                resp.TotalPrice,
		IsWeekendSurchargeApplied: resp.IsWeekendSurchargeApplied,
		Notes:                     resp.Notes,
		CreatedAt:                 resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                 resp.UpdatedAt.Format(time.RFC3339),
	}
}
