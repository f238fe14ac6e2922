package copy_slots

import (
	"errors"
	"net/http"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	copySlots "github.com/silwerlining/SLP-BookingService/internal/usecase/copy_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnknownCategory    = "неизвестная категория съёмки"
	msgInvalidDay         = "некорректный день недели, ожидается 0-6"
	msgNoDestinations     = "не указан ни один день-получатель"
)

type Handler struct {
	useCase CopySlotsUseCase
	logger  Logger
}

func NewHandler(useCase CopySlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/schedule/copy-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CopySlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedule/copy-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, copySlots.ErrInvalidCategory):
			h.logger.Warn("POST /admin/schedule/copy-slots - Unknown category: %v", err)
			handlers.RespondBadRequest(w, msgUnknownCategory)

		case errors.Is(err, copySlots.ErrInvalidDay):
			h.logger.Warn("POST /admin/schedule/copy-slots - Invalid day: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, copySlots.ErrNoDestinations):
			h.logger.Warn("POST /admin/schedule/copy-slots - No destinations")
			handlers.RespondBadRequest(w, msgNoDestinations)

		default:
			h.logger.Error("POST /admin/schedule/copy-slots - Failed to copy slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedule/copy-slots - %d slots copied to %d destinations",
		result.SlotsCopied, result.Destinations)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
