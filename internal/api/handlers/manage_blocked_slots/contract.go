package manage_blocked_slots

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	CreateBlockedSlot(ctx context.Context, req *models.CreateBlockedSlotRequest) (*models.BlockedSlotResponse, error)
	DeleteBlockedSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
