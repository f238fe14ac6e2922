package build_calendar_view

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// Request модель запроса агрегированного календаря
type Request struct {
	StartDate time.Time
	EndDate   time.Time
}

// Response модель ответа: типизированные события периода
// События не дедуплицируются, пересечения отдаются как есть
type Response struct {
	StartDate time.Time
	EndDate   time.Time
	Events    []domain.CalendarViewEvent
}
