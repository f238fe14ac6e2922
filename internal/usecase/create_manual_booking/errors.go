package create_manual_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда запрошенный слот занят или не существует
	ErrSlotNotAvailable = errors.New("create_manual_booking: slot is not available")

	// ErrInvalidCategory возвращается при неизвестной категории съёмки
	ErrInvalidCategory = errors.New("create_manual_booking: unknown session category")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_manual_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_manual_booking: internal error")
)
