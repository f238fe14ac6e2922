package sync_calendar

import (
	"context"

	syncCalendar "github.com/silwerlining/SLP-BookingService/internal/usecase/sync_calendar"
)

type SyncCalendarUseCase interface {
	Execute(ctx context.Context) (*syncCalendar.SyncResponse, error)
	TestConnection(ctx context.Context) (*syncCalendar.TestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
