package settings

import "errors"

var (
	// ErrConfigurationConflict возвращается, когда новые ограничения
	// несовместимы с шаблоном расписания (буфер больше зазора между слотами)
	ErrConfigurationConflict = errors.New("configuration conflict")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("block not found")

	// ErrCustomSlotNotFound возвращается, когда разовый слот не найден
	ErrCustomSlotNotFound = errors.New("custom slot not found")

	// ErrQuestionnaireNotFound возвращается, когда анкета категории не настроена
	ErrQuestionnaireNotFound = errors.New("questionnaire not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
