package get_month_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

const (
	msgMissingMonth    = "месяц обязателен"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
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

// Handle GET /api/v1/availability/month
// Query params: month (required, YYYY-MM), sessionCategory (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /availability/month - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		h.logger.Warn("GET /availability/month - Invalid month %q: %v", monthStr, err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	var category *string
	if raw := r.URL.Query().Get("sessionCategory"); raw != "" {
		category = &raw
	}

	result, err := h.useCase.ExecuteMonth(r.Context(), &resolveAvailability.MonthRequest{
		Month:           month,
		SessionCategory: category,
	})
	if err != nil {
		switch {
		case errors.Is(err, resolveAvailability.ErrInvalidCategory):
			h.logger.Warn("GET /availability/month - Unknown category: %v", err)
			handlers.RespondBadRequest(w, msgUnknownCategory)

		case errors.Is(err, resolveAvailability.ErrInvalidMonth):
			h.logger.Warn("GET /availability/month - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /availability/month - Failed to resolve availability: month=%s, error=%v", monthStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/month - month=%s, %d days", monthStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
