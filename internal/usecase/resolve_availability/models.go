package resolve_availability

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

// DayRequest модель запроса доступности на дату
type DayRequest struct {
	Date            time.Time
	SessionCategory *string // nil = слоты всех категорий

	// Бронирование, чья занятость не учитывается - для переноса
	// на другой слот того же дня
	ExcludeBookingID *int64
}

// DayResponse модель ответа с доступными слотами на дату
type DayResponse struct {
	Date             time.Time
	Slots            []domain.AvailableSlot
	SurchargeApplies bool
	Surcharge        float64
}

// MonthRequest модель запроса доступности на месяц
type MonthRequest struct {
	Month           time.Time // первый день месяца
	SessionCategory *string
}

// MonthResponse модель ответа с доступностью по дням месяца
// Содержит все дни месяца, включая дни без слотов
type MonthResponse struct {
	Month time.Time
	Days  []domain.DayAvailability
}
