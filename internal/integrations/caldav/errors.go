package caldav

import "errors"

var (
	// ErrUnauthorized возвращается при неверных учётных данных CalDAV
	ErrUnauthorized = errors.New("caldav client: invalid credentials")

	// ErrCalendarNotFound возвращается, когда календарь не найден на сервере
	ErrCalendarNotFound = errors.New("caldav client: calendar not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("caldav client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе сервера
	ErrInvalidResponse = errors.New("caldav client: invalid response")
)
