package get_month_availability

import (
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

// DayResponse HTTP модель доступности одного дня месяца
type DayResponse struct {
	Date             string  `json:"date"` // "2026-03-15"
	HasOpenSlots     bool    `json:"hasOpenSlots"`
	SlotCount        int     `json:"slotCount"`
	SurchargeApplies bool    `json:"surchargeApplies"`
	Surcharge        float64 `json:"surcharge,omitempty"`
}

// MonthAvailabilityResponse HTTP модель помесячной доступности
// Содержит все дни месяца, включая дни без слотов
type MonthAvailabilityResponse struct {
	Month string        `json:"month"` // "2026-03"
	Days  []DayResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.MonthResponse) *MonthAvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:             d.Date.Format(domain.DateFormat),
			HasOpenSlots:     d.HasSlots(),
			SlotCount:        len(d.Slots),
			SurchargeApplies: d.SurchargeApplies,
			Surcharge:        d.Surcharge,
		})
	}

	return &MonthAvailabilityResponse{
		Month: resp.Month.Format(domain.MonthFormat),
		Days:  days,
	}
}
