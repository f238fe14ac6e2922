package get_calendar_view

import (
	"context"

	buildCalendarView "github.com/silwerlining/SLP-BookingService/internal/usecase/build_calendar_view"
)

type BuildCalendarViewUseCase interface {
	Execute(ctx context.Context, req *buildCalendarView.Request) (*buildCalendarView.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
