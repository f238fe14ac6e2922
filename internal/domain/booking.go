package domain

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"
	StatusConfirmed   BookingStatus = "confirmed"
	StatusCompleted   BookingStatus = "completed"
	StatusCancelled   BookingStatus = "cancelled"
	StatusRescheduled BookingStatus = "rescheduled"
)

// BookingSource показывает, кто создал бронирование
type BookingSource string

const (
	SourceSelfService BookingSource = "self_service"
	SourceManual      BookingSource = "manual"
)

// Booking represents a photo session booking in the system
type Booking struct {
	ID              int64
	ClientName      string
	ClientEmail     *string
	ClientPhone     *string
	SessionCategory string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Source          BookingSource

	PackageName               *string
	TotalPrice                *float64
	IsWeekendSurchargeApplied bool
	Notes                     *string

	// UID зеркального события во внешнем календаре (если выгружено)
	CalendarEventUID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime возвращает время окончания сессии
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCompleted returns true if the booking can be completed via token
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusPending
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingsFilter фильтр для выборки бронирований оператором
type BookingsFilter struct {
	Status          *BookingStatus // Фильтр по статусу (опционально)
	SessionCategory *string        // Фильтр по категории съёмки (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
