package complete_booking

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// FormRequest модель запроса формы завершения (GET по токену)
type FormRequest struct {
	Token string
}

// FormResponse модель формы завершения: бронирование и анкета категории
type FormResponse struct {
	BookingID       int64
	ClientName      string
	SessionCategory string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	Fields []domain.QuestionnaireField
}

// CompleteRequest модель запроса завершения бронирования по токену
type CompleteRequest struct {
	Token       string
	ClientEmail *string
	ClientPhone *string
	Notes       *string
	// Ответы анкеты: ключ поля -> значения
	Answers map[string][]string
}

// CompleteResponse модель ответа с подтверждённым бронированием
type CompleteResponse struct {
	BookingID       int64
	ClientName      string
	ClientEmail     *string
	ClientPhone     *string
	SessionCategory string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Notes           *string
}
