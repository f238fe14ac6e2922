package resolve_availability

import (
	"sort"
	"time"

	"github.com/silwerlining/SLP-BookingService/internal/domain"
	"github.com/silwerlining/SLP-BookingService/pkg/types"
)

const minutesPerDay = 24 * 60

// scheduleData срез данных расписания, достаточный для расчёта доступности
// любой даты внутри загруженного периода
type scheduleData struct {
	settings       *domain.BookingSettings
	templateSlots  []*domain.TemplateSlot
	customSlots    []*domain.CustomSlot
	bookings       []*domain.Booking
	blockedDates   map[string]bool
	blockedSlots   map[string]bool
	externalEvents []*domain.ExternalEvent
}

// resolveDay вычисляет доступные слоты даты
// Доступность месяца считается этой же функцией по дням, поэтому
// помесячный и подневный расчёты всегда согласованы
func resolveDay(data *scheduleData, date time.Time, now time.Time) domain.DayAvailability {
	today := truncateToDay(now)
	result := domain.DayAvailability{
		Date:             date,
		Slots:            []domain.AvailableSlot{},
		SurchargeApplies: data.settings.SurchargeApplies(date),
	}
	if result.SurchargeApplies {
		result.Surcharge = data.settings.WeekendSurcharge
	}

	// Дата вне окна бронирования: пустой результат, не ошибка
	if !isWithinWindow(date, today, data.settings) {
		return result
	}

	// Полностью закрытый день
	if data.blockedDates[dayKey(date)] {
		return result
	}

	nominal := nominalSlots(data, date)
	if len(nominal) == 0 {
		return result
	}

	occupied := occupiedIntervals(data, date)
	duration := data.settings.SessionDurationMinutes

	isToday := dayKey(date) == dayKey(today)
	nowMinutes := now.Hour()*60 + now.Minute()

	for _, start := range nominal {
		// Точечная блокировка снимает ровно один слот
		if data.blockedSlots[slotKey(date, start)] {
			continue
		}

		startMinutes, err := start.MinutesFromMidnight()
		if err != nil {
			continue
		}
		if startMinutes+duration > minutesPerDay {
			continue
		}

		// Сегодняшняя дата: уже прошедшие времена не предлагаются
		if isToday && startMinutes <= nowMinutes {
			continue
		}

		// Слот закрыт, если его время начала попадает в занятый интервал,
		// расширенный буфером
		free := true
		for _, occ := range occupied {
			if occ.Contains(startMinutes) {
				free = false
				break
			}
		}
		if free {
			result.Slots = append(result.Slots, domain.AvailableSlot{
				StartTime:       start,
				DurationMinutes: duration,
			})
		}
	}

	return result
}

// isWithinWindow проверяет попадание даты в окно бронирования
// [today + minLeadDays, today + maxAdvanceDays]
func isWithinWindow(date, today time.Time, settings *domain.BookingSettings) bool {
	first := today.AddDate(0, 0, settings.MinLeadDays)
	last := today.AddDate(0, 0, settings.MaxAdvanceDays)
	return !date.Before(first) && !date.After(last)
}

// nominalSlots собирает номинальный набор слотов даты:
// слоты недельного шаблона на день недели плюс разовые слоты даты
// Дубликаты времён (между категориями или шаблоном и разовым слотом) схлопываются
func nominalSlots(data *scheduleData, date time.Time) []types.TimeString {
	day := domain.DayID(date)
	seen := make(map[string]bool)
	slots := make([]types.TimeString, 0)

	for _, ts := range data.templateSlots {
		if ts.DayID != day || seen[ts.StartTime.String()] {
			continue
		}
		seen[ts.StartTime.String()] = true
		slots = append(slots, ts.StartTime)
	}

	for _, cs := range data.customSlots {
		if dayKey(cs.Date) != dayKey(date) || seen[cs.StartTime.String()] {
			continue
		}
		seen[cs.StartTime.String()] = true
		slots = append(slots, cs.StartTime)
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].IsBefore(slots[j]) })
	return slots
}

// occupiedIntervals собирает занятые интервалы даты, расширенные буфером
// с обеих сторон: активные бронирования любой категории и события
// личного календаря. Событие на весь день закрывает дату целиком
func occupiedIntervals(data *scheduleData, date time.Time) []domain.Interval {
	buffer := data.settings.BufferMinutes
	intervals := make([]domain.Interval, 0)

	for _, b := range data.bookings {
		if !b.IsActive() || dayKey(b.BookingDate) != dayKey(date) {
			continue
		}
		start, err := b.StartTime.MinutesFromMidnight()
		if err != nil {
			continue
		}
		intervals = append(intervals, domain.Interval{
			Start: start,
			End:   start + b.DurationMinutes,
		}.Expand(buffer))
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	for _, e := range data.externalEvents {
		if !e.OverlapsDate(date) {
			continue
		}
		if e.AllDay {
			intervals = append(intervals, domain.Interval{Start: 0, End: minutesPerDay})
			continue
		}
		start := int(e.StartsAt.Sub(dayStart).Minutes())
		end := int(e.EndsAt.Sub(dayStart).Minutes())
		if start < 0 {
			start = 0
		}
		if end > minutesPerDay {
			end = minutesPerDay
		}
		intervals = append(intervals, domain.Interval{Start: start, End: end}.Expand(buffer))
	}

	return intervals
}
