package complete_booking

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен не существует
	ErrTokenNotFound = errors.New("complete_booking: token not found")

	// ErrTokenExpired возвращается, когда срок жизни токена истёк
	ErrTokenExpired = errors.New("complete_booking: token expired")

	// ErrTokenAlreadyUsed возвращается при попытке изменить бронирование погашенным токеном
	ErrTokenAlreadyUsed = errors.New("complete_booking: token already used")

	// ErrInvalidAnswers возвращается, когда ответы анкеты не проходят валидацию
	ErrInvalidAnswers = errors.New("complete_booking: invalid questionnaire answers")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("complete_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("complete_booking: internal error")
)
