package complete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	completeBooking "github.com/silwerlining/SLP-BookingService/internal/usecase/complete_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgTokenNotFound      = "ссылка недействительна"
	msgTokenExpired       = "срок действия ссылки истёк"
	msgTokenAlreadyUsed   = "бронирование уже подтверждено, изменение недоступно"
	msgInvalidAnswers     = "ответы анкеты не прошли проверку"
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

// Handle POST /api/v1/booking-token/{token}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-token/{token}/complete - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(token))
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrTokenNotFound):
			h.logger.Warn("POST /booking-token/{token}/complete - Token not found")
			handlers.RespondNotFound(w, msgTokenNotFound)

		case errors.Is(err, completeBooking.ErrTokenExpired):
			h.logger.Warn("POST /booking-token/{token}/complete - Token expired")
			handlers.RespondNotFound(w, msgTokenExpired)

		case errors.Is(err, completeBooking.ErrTokenAlreadyUsed):
			// Повтор без изменений отвечает 200 внутри use case;
			// сюда попадает только попытка изменить подтверждённые данные
			h.logger.Warn("POST /booking-token/{token}/complete - Token already used")
			handlers.RespondBadRequest(w, msgTokenAlreadyUsed)

		case errors.Is(err, completeBooking.ErrInvalidAnswers):
			h.logger.Warn("POST /booking-token/{token}/complete - Invalid answers: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAnswers)

		case errors.Is(err, completeBooking.ErrInvalidInput):
			h.logger.Warn("POST /booking-token/{token}/complete - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /booking-token/{token}/complete - Failed to complete booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /booking-token/{token}/complete - Booking completed: booking_id=%d", result.BookingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
