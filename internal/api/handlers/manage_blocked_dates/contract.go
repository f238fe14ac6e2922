package manage_blocked_dates

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	CreateBlockedDate(ctx context.Context, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
	DeleteBlockedDate(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
