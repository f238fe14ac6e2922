package complete_booking

import (
	"context"

	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

type CompleteBookingUseCase interface {
	Execute(ctx context.Context, req *completeBooking.CompleteRequest) (*completeBooking.CompleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
