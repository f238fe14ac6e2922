package domain

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// TemplateSlot represents one nominal slot of the weekly schedule template
// DayID: 0 = воскресенье ... 6 = суббота
type TemplateSlot struct {
	ID              int64
	SessionCategory string
	DayID           int
	StartTime       types.TimeString
}

// CustomSlot represents a one-off slot added for a single date
// Расширяет недельный шаблон, участвует в расчёте доступности наравне с ним
type CustomSlot struct {
	ID              int64
	SessionCategory string
	Date            time.Time
	StartTime       types.TimeString
	CreatedAt       time.Time
}

// BlockedDate represents a whole day closed for bookings
type BlockedDate struct {
	ID        int64
	Date      time.Time
	Reason    *string
	CreatedAt time.Time
}

// BlockedSlot represents a single (date, time) slot closed for bookings
// Точечная блокировка: остальные слоты дня остаются доступными
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// DayID возвращает индекс дня недели даты (0 = воскресенье)
func DayID(date time.Time) int {
	return int(date.Weekday())
}

// IsWeekend returns true if the date falls on Saturday or Sunday
func IsWeekend(date time.Time) bool {
	day := DayID(date)
	return day == 0 || day == 6
}
