package copy_slots

import "errors"

var (
	// ErrInvalidCategory возвращается при неизвестной категории съёмки
	ErrInvalidCategory = errors.New("copy_slots: invalid session category")

	// ErrInvalidDay возвращается при некорректном дне недели
	ErrInvalidDay = errors.New("copy_slots: invalid day of week")

	// ErrNoDestinations возвращается, когда не указан ни один день-получатель
	ErrNoDestinations = errors.New("copy_slots: no destinations specified")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("copy_slots: internal error")
)
