package sync_calendar

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/silwerlining/SLP-BookingService/internal/api/handlers"
	syncCalendar "github.com/silwerlining/SLP-BookingService/internal/usecase/sync_calendar"
)

const (
	msgNotConfigured    = "подключение к календарю не настроено"
	msgSyncDisabled     = "синхронизация календаря выключена"
	msgCalendarNotFound = "календарь бронирований не найден на сервере"
)

type Handler struct {
	useCase SyncCalendarUseCase
	logger  Logger
}

func NewHandler(useCase SyncCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleSync POST /api/v1/admin/calendar/sync
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrNotConfigured):
			h.logger.Warn("POST /admin/calendar/sync - Not configured")
			handlers.RespondBadRequest(w, msgNotConfigured)

		case errors.Is(err, syncCalendar.ErrSyncDisabled):
			h.logger.Warn("POST /admin/calendar/sync - Sync disabled")
			handlers.RespondBadRequest(w, msgSyncDisabled)

		case errors.Is(err, syncCalendar.ErrBookingCalendarNotFound):
			h.logger.Warn("POST /admin/calendar/sync - Booking calendar not found: %v", err)
			handlers.RespondUnprocessable(w, msgCalendarNotFound)

		case errors.Is(err, syncCalendar.ErrSyncFailed):
			// 502 с текстом провайдера: оператору нужна причина для починки подключения
			h.logger.Error("POST /admin/calendar/sync - Sync failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, providerMessage(err))

		default:
			h.logger.Error("POST /admin/calendar/sync - Failed to sync: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/calendar/sync - Sync done: pulled=%d, pushed=%d",
		result.PulledEvents, result.PushedBookings)
	handlers.RespondJSON(w, http.StatusOK, FromSyncResponse(result))
}

// HandleTest POST /api/v1/admin/calendar/test
func (h *Handler) HandleTest(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.TestConnection(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrNotConfigured):
			h.logger.Warn("POST /admin/calendar/test - Not configured")
			handlers.RespondBadRequest(w, msgNotConfigured)

		case errors.Is(err, syncCalendar.ErrSyncFailed):
			h.logger.Warn("POST /admin/calendar/test - Connection test failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, providerMessage(err))

		default:
			h.logger.Error("POST /admin/calendar/test - Failed to test connection: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/calendar/test - Connection ok, %d calendars", len(result.Calendars))
	handlers.RespondJSON(w, http.StatusOK, FromTestResponse(result))
}

// providerMessage отдаёт оператору текст ошибки внешнего сервера
func providerMessage(err error) string {
	return fmt.Sprintf("ошибка внешнего календаря: %v", err)
}
