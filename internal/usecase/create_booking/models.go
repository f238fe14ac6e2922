package create_booking

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientName      string           // Имя клиента
	ClientEmail     *string          // Email (опционально)
	ClientPhone     *string          // Телефон (опционально)
	SessionCategory string           // Категория съёмки
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	PackageName     *string          // Название пакета (опционально)
	PackagePrice    *float64         // Базовая цена пакета (опционально)
	Notes           *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                        int64
	ClientName                string
	ClientEmail               *string
	ClientPhone               *string
	SessionCategory           string
	BookingDate               time.Time
	StartTime                 types.TimeString
	DurationMinutes           int
	Status                    string
	PackageName               *string
	TotalPrice                *float64 // Цена пакета с учётом надбавки за выходной
	IsWeekendSurchargeApplied bool
	Notes                     *string
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
