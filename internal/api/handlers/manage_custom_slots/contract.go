package manage_custom_slots

import (
	"context"

	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	CreateCustomSlot(ctx context.Context, req *models.CreateCustomSlotRequest) (*models.CustomSlotResponse, error)
	DeleteCustomSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
