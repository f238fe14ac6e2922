package caldav

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseICS_TimedEvent(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"BEGIN:VEVENT",
		"UID:uid-1",
		"DTSTART:20260311T090000Z",
		"DTEND:20260311T100000Z",
		"SUMMARY:Врач",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.Equal(t, "uid-1", e.UID)
	assert.Equal(t, "Врач", e.Summary)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), e.StartsAt)
	assert.Equal(t, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), e.EndsAt)
	assert.False(t, e.AllDay)
}

func TestParseICS_AllDayEvent(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VEVENT",
		"UID:uid-1",
		"DTSTART;VALUE=DATE:20260311",
		"DTEND;VALUE=DATE:20260312",
		"SUMMARY:Отпуск",
		"END:VEVENT",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 1)

	e := events[0]
	assert.True(t, e.AllDay)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), e.StartsAt)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), e.EndsAt)
}

func TestParseICS_FoldedLinesUnfolded(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VEVENT",
		"UID:uid-1",
		"DTSTART:20260311T090000Z",
		"SUMMARY:Очень длинное наз",
		" вание события",
		"END:VEVENT",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Очень длинное название события", events[0].Summary)
}

func TestParseICS_MissingDTENDDefaults(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VEVENT",
		"UID:timed",
		"DTSTART:20260311T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:allday",
		"DTSTART;VALUE=DATE:20260311",
		"END:VEVENT",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Событие со временем без DTEND считается мгновенным
	assert.Equal(t, events[0].StartsAt, events[0].EndsAt)
	// Событие на весь день без DTEND занимает сутки
	assert.Equal(t, events[1].StartsAt.Add(24*time.Hour), events[1].EndsAt)
}

func TestParseICS_SkipsIncompleteEvents(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VEVENT",
		"SUMMARY:Без UID",
		"DTSTART:20260311T090000Z",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:no-start",
		"SUMMARY:Без даты",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:bad-date",
		"DTSTART:tomorrow",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:ok",
		"DTSTART:20260311T090000Z",
		"END:VEVENT",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ok", events[0].UID)
}

func TestParseICS_EscapedSummary(t *testing.T) {
	ics := strings.Join([]string{
		"BEGIN:VEVENT",
		"UID:uid-1",
		"DTSTART:20260311T090000Z",
		`SUMMARY:Съёмка\, студия\; зал 2`,
		"END:VEVENT",
	}, "\r\n")

	events, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Съёмка, студия; зал 2", events[0].Summary)
}

func TestBuildICS_RoundTrip(t *testing.T) {
	event := &Event{
		UID:      "booking-uid",
		Summary:  "Фотосессия: Анна, портрет",
		StartsAt: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC),
	}

	ics := buildICS(event, "-//SLP//BookingService//RU")
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "UID:booking-uid")
	assert.Contains(t, ics, "DTSTART:20260311T100000Z")
	assert.Contains(t, ics, `SUMMARY:Фотосессия: Анна\, портрет`)

	parsed, err := parseICS(ics)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, event.UID, parsed[0].UID)
	assert.Equal(t, event.Summary, parsed[0].Summary)
	assert.Equal(t, event.StartsAt, parsed[0].StartsAt)
	assert.Equal(t, event.EndsAt, parsed[0].EndsAt)
}
