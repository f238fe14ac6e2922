package update_booking_settings

import (
	"errors"
	"net/http"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidSettings       = "некорректные значения настроек"
	msgConfigurationConflict = "настройки конфликтуют с шаблоном расписания"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/booking-settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/booking-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSettings(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrConfigurationConflict):
			// 422: данные синтаксически корректны, но несовместимы с шаблоном
			h.logger.Warn("PUT /admin/booking-settings - Configuration conflict: %v", err)
			handlers.RespondUnprocessable(w, msgConfigurationConflict)

		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /admin/booking-settings - Invalid settings: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		default:
			h.logger.Error("PUT /admin/booking-settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/booking-settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
