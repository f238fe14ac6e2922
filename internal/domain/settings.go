package domain

import "time"

// BookingSettings represents the singleton scheduling constraints of the studio
type BookingSettings struct {
	ID int64

	// Защитный интервал вокруг занятых слотов, минуты
	BufferMinutes int
	// Минимальное количество дней от сегодня до первой доступной даты
	MinLeadDays int
	// Горизонт бронирования в днях от сегодня
	MaxAdvanceDays int
	// Длительность сессии, минуты (единая для всех категорий)
	SessionDurationMinutes int

	// Надбавка за выходные и праздничные даты
	WeekendSurcharge float64
	HolidayDates     []time.Time

	UpdatedAt time.Time
}

// IsHoliday returns true if the date is configured as a holiday
func (s *BookingSettings) IsHoliday(date time.Time) bool {
	y, m, d := date.Date()
	for _, h := range s.HolidayDates {
		hy, hm, hd := h.Date()
		if hy == y && hm == m && hd == d {
			return true
		}
	}
	return false
}

// SurchargeApplies returns true if the weekend/holiday surcharge applies to the date
func (s *BookingSettings) SurchargeApplies(date time.Time) bool {
	if s.WeekendSurcharge <= 0 {
		return false
	}
	return IsWeekend(date) || s.IsHoliday(date)
}
