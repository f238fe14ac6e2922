package manage_custom_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings"
	"github.com/silwerlining/SLP-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "разовый слот не найден"
	msgInvalidInput       = "некорректные данные слота"
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

// HandleCreate POST /api/v1/admin/custom-slots
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/custom-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCustomSlot(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("POST /admin/custom-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/custom-slots - Failed to create slot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/custom-slots - Slot created: id=%d, date=%s, time=%s",
		result.ID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleDelete DELETE /api/v1/admin/custom-slots/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/custom-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.DeleteCustomSlot(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, settings.ErrCustomSlotNotFound):
			h.logger.Warn("DELETE /admin/custom-slots/{id} - Slot not found: id=%d", id)
			handlers.RespondNotFound(w, msgSlotNotFound)

		default:
			h.logger.Error("DELETE /admin/custom-slots/{id} - Failed to delete slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/custom-slots/{id} - Slot deleted: id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
