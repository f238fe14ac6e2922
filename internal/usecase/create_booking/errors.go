package create_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда запрошенный слот занят или не существует
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidCategory возвращается при неизвестной категории съёмки
	ErrInvalidCategory = errors.New("create_booking: unknown session category")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
