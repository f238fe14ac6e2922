package copy_slots

import (
	"context"

	copySlots "github.com/silwerlining/SLP-BookingService/internal/usecase/copy_slots"
)

type CopySlotsUseCase interface {
	Execute(ctx context.Context, req *copySlots.Request) (*copySlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
