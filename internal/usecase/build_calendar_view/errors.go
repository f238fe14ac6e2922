package build_calendar_view

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном периоде запроса
	ErrInvalidRange = errors.New("build_calendar_view: invalid date range")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("build_calendar_view: internal error")
)
