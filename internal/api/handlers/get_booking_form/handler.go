package get_booking_form

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

const (
	msgTokenNotFound = "ссылка недействительна"
	msgTokenExpired  = "срок действия ссылки истёк"
)

type Handler struct {
	useCase CompleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-token/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.GetForm(r.Context(), &completeBooking.FormRequest{Token: token})
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrTokenNotFound):
			h.logger.Warn("GET /booking-token/{token} - Token not found")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, completeBooking.ErrTokenExpired):
			h.logger.Warn("GET /booking-token/{token} - Token expired")
			handlers.RespondNotFound(w, msgTokenExpired)

		default:
			h.logger.Error("GET /booking-token/{token} - Failed to get form: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /booking-token/{token} - Form served for booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
