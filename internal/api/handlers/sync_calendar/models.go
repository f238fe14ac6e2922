package sync_calendar

import (
	syncCalendar "github.com/silwerlining/SLP-BookingService/internal/usecase/sync_calendar"
)

// SyncResponse HTTP модель результата синхронизации
type SyncResponse struct {
	PulledEvents    int    `json:"pulledEvents"`
	PushedBookings  int    `json:"pushedBookings"`
	BookingCalendar string `json:"bookingCalendar"`
}

// TestConnectionResponse HTTP модель результата проверки подключения
type TestConnectionResponse struct {
	Calendars []string `json:"calendars"`
}

// FromSyncResponse конвертирует ответ use case в HTTP response
func FromSyncResponse(resp *syncCalendar.SyncResponse) *SyncResponse {
	return &SyncResponse{
		PulledEvents:    resp.PulledEvents,
		PushedBookings:  resp.PushedBookings,
		BookingCalendar: resp.BookingCalendar,
	}
}

// FromTestResponse конвертирует ответ use case в HTTP response
func FromTestResponse(resp *syncCalendar.TestResponse) *TestConnectionResponse {
	calendars := resp.Calendars
	if calendars == nil {
		calendars = []string{}
	}
	return &TestConnectionResponse{Calendars: calendars}
}
