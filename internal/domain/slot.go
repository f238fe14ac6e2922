package domain

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// AvailableSlot represents a time slot open for booking on a specific date
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// DayAvailability represents the resolved availability of a single date
type DayAvailability struct {
	Date             time.Time
	Slots            []AvailableSlot
	SurchargeApplies bool
	Surcharge        float64
}

// HasSlots returns true if at least one slot is open on the date
func (d *DayAvailability) HasSlots() bool {
	return len(d.Slots) > 0
}

// Interval полуинтервал [Start, End) в минутах от полуночи
// Используется при расчёте пересечений слотов с занятыми интервалами
type Interval struct {
	Start int
	End   int
}

// Overlaps returns true if the two intervals intersect
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// Contains returns true if the minute falls inside the interval
func (i Interval) Contains(minute int) bool {
	return minute >= i.Start && minute < i.End
}

// Expand возвращает интервал, расширенный на buffer минут в обе стороны
func (i Interval) Expand(buffer int) Interval {
	return Interval{Start: i.Start - buffer, End: i.End + buffer}
}
