package resolve_availability

import "errors"

var (
	// ErrInvalidCategory возвращается при запросе неизвестной категории съёмки
	ErrInvalidCategory = errors.New("resolve_availability: unknown session category")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("resolve_availability: invalid date")

	// ErrInvalidMonth возвращается при некорректном месяце запроса
	ErrInvalidMonth = errors.New("resolve_availability: invalid month")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("resolve_availability: internal error")
)
