package get_available_slots

import (
	"context"

	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

type ResolveAvailabilityUseCase interface {
	ExecuteDay(ctx context.Context, req *resolveAvailability.DayRequest) (*resolveAvailability.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
