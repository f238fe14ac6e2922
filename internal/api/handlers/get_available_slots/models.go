package get_available_slots

import (
	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailabilityResponse HTTP модель доступности даты
type AvailabilityResponse struct {
	Date             string         `json:"date"` // "2026-03-15"
	Slots            []SlotResponse `json:"slots"`
	SurchargeApplies bool           `json:"surchargeApplies"`
	Surcharge        float64        `json:"surcharge,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveAvailability.DayResponse) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailabilityResponse{
		Date:             resp.Date.Format(domain.DateFormat),
		Slots:            slots,
		SurchargeApplies: resp.SurchargeApplies,
		Surcharge:        resp.Surcharge,
	}
}
