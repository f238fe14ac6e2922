package get_month_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	resolveAvailability "github.com/silwerlining/SLP-BookingService/internal/usecase/resolve_availability"
)

func TestFromUseCaseResponse_DayFlags(t *testing.T) {
	resp := FromUseCaseResponse(&resolveAvailability.MonthResponse{
		Month: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Days: []domain.DayAvailability{
			{
				Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
				Slots: []domain.AvailableSlot{
					{StartTime: "09:00", DurationMinutes: 120},
					{StartTime: "14:00", DurationMinutes: 120},
				},
			},
			{
				Date:             time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
				Slots:            []domain.AvailableSlot{},
				SurchargeApplies: true,
				Surcharge:        750,
			},
		},
	})

	assert.Equal(t, "2026-03", resp.Month)
	require.Len(t, resp.Days, 2)

	assert.Equal(t, "2026-03-11", resp.Days[0].Date)
	assert.True(t, resp.Days[0].HasOpenSlots)
	assert.Equal(t, 2, resp.Days[0].SlotCount)

	// День без слотов: флаг false, но день присутствует в ответе
	assert.Equal(t, "2026-03-14", resp.Days[1].Date)
	assert.False(t, resp.Days[1].HasOpenSlots)
	assert.Equal(t, 0, resp.Days[1].SlotCount)
	assert.True(t, resp.Days[1].SurchargeApplies)
}
