package create_manual_booking

import (
	"time"

	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

// Request модель запроса оператора на ручное бронирование
type Request struct {
	ClientName      string
	ClientPhone     *string
	SessionCategory string
	Date            time.Time
	StartTime       types.TimeString
	PackageName     *string
	PackagePrice    *float64
	Notes           *string
}

// Response модель ответа: бронирование в статусе pending и одноразовая ссылка завершения
type Response struct {
	BookingID                 int64
	ClientName                string
	SessionCategory           string
	BookingDate               time.Time
	StartTime                 types.TimeString
	DurationMinutes           int
	Status                    string
	IsWeekendSurchargeApplied bool

	Token          string
	TokenExpiresAt time.Time
}
