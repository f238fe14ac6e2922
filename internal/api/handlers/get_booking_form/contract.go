package get_booking_form

import (
	"context"

	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

type CompleteBookingUseCase interface {
	GetForm(ctx context.Context, req *completeBooking.FormRequest) (*completeBooking.FormResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
