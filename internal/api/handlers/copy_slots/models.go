package copy_slots

import (
	"fmt"

	copySlots "github.com/silwerlining/SLP-BookingService/internal/usecase/copy_slots"
)

// DestinationRequest HTTP модель дня-получателя
type DestinationRequest struct {
	SessionCategory string `json:"sessionCategory"`
	DayID           int    `json:"dayId"` // 0 - воскресенье ... 6 - суббота
}

// CopySlotsRequest HTTP request model
type CopySlotsRequest struct {
	SourceCategory string               `json:"sourceCategory"`
	SourceDayID    int                  `json:"sourceDayId"`
	Destinations   []DestinationRequest `json:"destinations"`
}

// CopySlotsResponse HTTP response model с явным отчётом об объёме операции
type CopySlotsResponse struct {
	SlotsCopied  int    `json:"slotsCopied"`
	Destinations int    `json:"destinations"`
	Message      string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CopySlotsRequest) ToUseCaseRequest() *copySlots.Request {
	destinations := make([]copySlots.Destination, 0, len(r.Destinations))
	for _, d := range r.Destinations {
		destinations = append(destinations, copySlots.Destination{
			SessionCategory: d.SessionCategory,
			DayID:           d.DayID,
		})
	}

	return &copySlots.Request{
		SourceCategory: r.SourceCategory,
		SourceDayID:    r.SourceDayID,
		Destinations:   destinations,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *copySlots.Response) *CopySlotsResponse {
	return &CopySlotsResponse{
		SlotsCopied:  resp.SlotsCopied,
		Destinations: resp.Destinations,
		Message:      fmt.Sprintf("%d slots copied to %d destinations", resp.SlotsCopied, resp.Destinations),
	}
}
