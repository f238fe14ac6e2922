package manage_calendar_settings

import (
	"net/http"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// HandleGet GET /api/v1/admin/calendar-settings
// Пароль в ответ не включается
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetCalendarSettings(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/calendar-settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/calendar-settings - Settings served")
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/admin/calendar-settings
// Пустой пароль в запросе сохраняет текущий
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCalendarSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/calendar-settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCalendarSettings(r.Context(), &req)
	if err != nil {
		h.logger.Error("PUT /admin/calendar-settings - Failed to update settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /admin/calendar-settings - Settings updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
