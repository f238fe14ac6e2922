package sync_calendar

import "errors"

var (
	// ErrNotConfigured возвращается, когда настройки календаря не заполнены
	ErrNotConfigured = errors.New("sync_calendar: calendar connection is not configured")

	// ErrSyncDisabled возвращается, когда синхронизация выключена оператором
	ErrSyncDisabled = errors.New("sync_calendar: sync is disabled")

	// ErrSyncFailed возвращается при ошибке обмена с внешним календарём
	// Текст ошибки провайдера сохраняется в цепочке для ответа оператору
	ErrSyncFailed = errors.New("sync_calendar: external calendar sync failed")

	// ErrBookingCalendarNotFound возвращается, когда назначенный календарь
	// бронирований отсутствует на сервере
	ErrBookingCalendarNotFound = errors.New("sync_calendar: booking calendar not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_calendar: internal error")
)
