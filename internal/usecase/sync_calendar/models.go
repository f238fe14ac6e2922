package sync_calendar

// SyncResponse результат синхронизации
type SyncResponse struct {
	PulledEvents    int    // Событий в обновлённом зеркале
	PushedBookings  int    // Бронирований выгружено во внешний календарь
	BookingCalendar string // Имя календаря, в который выгружаются бронирования
}

// TestResponse результат проверки подключения
type TestResponse struct {
	Calendars []string // Имена доступных календарей
}
