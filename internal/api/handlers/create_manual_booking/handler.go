package create_manual_booking

import (
	"errors"
	"net/http"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	createManualBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/create_manual_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgUnknownCategory    = "неизвестная категория съёмки"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateManualBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateManualBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/manual-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateManualBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/manual-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/manual-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createManualBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /admin/manual-bookings - Slot not available: date=%s, time=%s",
				req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createManualBooking.ErrInvalidCategory):
			h.logger.Warn("POST /admin/manual-bookings - Unknown category: %s", req.SessionCategory)
			handlers.RespondBadRequest(w, msgUnknownCategory)

		case errors.Is(err, createManualBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/manual-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/manual-bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/manual-bookings - Booking created: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
