package get_calendar_view

import (
	"errors"
	"net/http"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	buildCalendarView "github.com/silwerlining/SLP-BookingService/internal/usecase/build_calendar_view"
)

const (
	msgMissingDates = "параметры startDate и endDate обязательны"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный период запроса"
)

type Handler struct {
	useCase BuildCalendarViewUseCase
	logger  Logger
}

func NewHandler(useCase BuildCalendarViewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/calendar-view
// Query params: startDate, endDate (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("startDate")
	endStr := r.URL.Query().Get("endDate")
	if startStr == "" || endStr == "" {
		h.logger.Warn("GET /admin/calendar-view - Missing dates")
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, startStr)
	if err != nil {
		h.logger.Warn("GET /admin/calendar-view - Invalid startDate %q: %v", startStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := time.Parse(domain.DateFormat, endStr)
	if err != nil {
		h.logger.Warn("GET /admin/calendar-view - Invalid endDate %q: %v", endStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &buildCalendarView.Request{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, buildCalendarView.ErrInvalidRange):
			h.logger.Warn("GET /admin/calendar-view - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/calendar-view - Failed to build view: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/calendar-view - %d events served", len(result.Events))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
