package get_month_availability

import (
	"context"

	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

type ResolveAvailabilityUseCase interface {
	ExecuteMonth(ctx context.Context, req *resolveAvailability.MonthRequest) (*resolveAvailability.MonthResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
