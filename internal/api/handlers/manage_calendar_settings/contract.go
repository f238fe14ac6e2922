package manage_calendar_settings

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetCalendarSettings(ctx context.Context) (*models.CalendarSettingsResponse, error)
	UpdateCalendarSettings(ctx context.Context, req *models.UpdateCalendarSettingsRequest) (*models.CalendarSettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
