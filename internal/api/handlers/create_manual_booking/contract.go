package create_manual_booking

import (
	"context"

	createManualBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/create_manual_booking"
)

type CreateManualBookingUseCase interface {
	Execute(ctx context.Context, req *createManualBooking.Request) (*createManualBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
