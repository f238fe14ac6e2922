package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

const (
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgUnknownCategory = "неизвестная категория съёмки"
)

type Handler struct {
	useCase ResolveAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ResolveAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/times
// Query params: date (required, YYYY-MM-DD), sessionCategory (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability/times - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/times - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	var category *string
	if raw := r.URL.Query().Get("sessionCategory"); raw != "" {
		category = &raw
	}

	result, err := h.useCase.ExecuteDay(r.Context(), &resolveAvailability.DayRequest{
		Date:            date,
		SessionCategory: category,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrInvalidCategory):
			h.logger.Warn("GET /availability/times - Unknown category: %v", err)
			handlers.RespondBadRequest(w, msgUnknownCategory)

		default:
			h.logger.Error("GET /availability/times - Failed to resolve availability: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/times - date=%s, %d slots", dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
