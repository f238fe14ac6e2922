package get_calendar_view

import (
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	buildCalendarView "github.com/silwerlining/SLP-BookingService/internal/usecase/build_calendar_view"
)

// EventResponse HTTP модель события агрегированного календаря
type EventResponse struct {
	Type      string `json:"type"` // booking | blocked | personal
	Title     string `json:"title"`
	Date      string `json:"date"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	AllDay    bool   `json:"allDay"`

	BookingID     *int64  `json:"bookingId,omitempty"`
	BookingStatus *string `json:"bookingStatus,omitempty"`
	SourceUID     *string `json:"sourceUid,omitempty"`
}

// CalendarViewResponse HTTP модель агрегированного календаря
type CalendarViewResponse struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Events    []EventResponse `json:"events"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *buildCalendarView.Response) *CalendarViewResponse {
	events := make([]EventResponse, 0, len(resp.Events))
	for _, e := range resp.Events {
		event := EventResponse{
			Type:      string(e.Type),
			Title:     e.Title,
			Date:      e.Date.Format(domain.DateFormat),
			StartTime: e.StartTime.String(),
			EndTime:   e.EndTime.String(),
			AllDay:    e.AllDay,
			BookingID: e.BookingID,
			SourceUID: e.SourceUID,
		}
		if e.BookingStatus != nil {
			status := string(*e.BookingStatus)
			event.BookingStatus = &status
		}
		events = append(events, event)
	}

	return &CalendarViewResponse{
		StartDate: resp.StartDate.Format(domain.DateFormat),
		EndDate:   resp.EndDate.Format(domain.DateFormat),
		Events:    events,
	}
}
