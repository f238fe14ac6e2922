package models

import (
	"errors"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос списка бронирований с фильтрацией
type ListBookingsRequest struct {
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	SessionCategory *string    `json:"sessionCategory,omitempty"` // Фильтр по категории съёмки (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		SessionCategory: r.SessionCategory,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest запрос на изменение бронирования оператором
// Указываются только изменяемые поля; новая дата или время означают перенос
type UpdateBookingRequest struct {
	ClientName   *string    `json:"clientName,omitempty"`
	ClientEmail  *string    `json:"clientEmail,omitempty"`
	ClientPhone  *string    `json:"clientPhone,omitempty"`
	BookingDate  *time.Time `json:"bookingDate,omitempty"`
	StartTime    *string    `json:"startTime,omitempty"`
	PackageName  *string    `json:"packageName,omitempty"`
	PackagePrice *float64   `json:"packagePrice,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// IsReschedule возвращает true, если запрос меняет дату или время
func (r *UpdateBookingRequest) IsReschedule() bool {
	return r.BookingDate != nil || r.StartTime != nil
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	ClientName      string  `json:"clientName"`
	ClientEmail     *string `json:"clientEmail,omitempty"`
	ClientPhone     *string `json:"clientPhone,omitempty"`
	SessionCategory string  `json:"sessionCategory"`
	BookingDate     string  `json:"bookingDate"` // "2026-03-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`

	PackageName               *string  `json:"packageName,omitempty"`
	TotalPrice                *float64 `json:"totalPrice,omitempty"`
	IsWeekendSurchargeApplied bool     `json:"isWeekendSurchargeApplied"`
	Notes                     *string  `json:"notes,omitempty"`
	CalendarEventUID          *string  `json:"calendarEventUid,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                        b.ID,
		ClientName:                b.ClientName,
		ClientEmail:               b.ClientEmail,
		ClientPhone:               b.ClientPhone,
		SessionCategory:           b.SessionCategory,
		BookingDate:               b.BookingDate.Format(domain.DateFormat),
		StartTime:                 b.StartTime.String(),
		DurationMinutes:           b.DurationMinutes,
		Status:                    string(b.Status),
		Source:                    string(b.Source),
		PackageName:               b.PackageName,
		TotalPrice:                b.TotalPrice,
		IsWeekendSurchargeApplied: b.IsWeekendSurchargeApplied,
		Notes:                     b.Notes,
		CalendarEventUID:          b.CalendarEventUID,
		CreatedAt:                 b.CreatedAt,
		UpdatedAt:                 b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusRescheduled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
