package caldav

import (
	"fmt"
	"strings"
	"time"
)

const (
	icsDateTimeUTC = "20060102T150405Z"
	icsDateTime    = "20060102T150405"
	icsDate        = "20060102"
)

// parseICS разбирает iCalendar-документ и возвращает все VEVENT с датами
// Компоненты без UID или DTSTART пропускаются
func parseICS(data string) ([]*Event, error) {
	lines := unfoldLines(data)

	events := make([]*Event, 0)
	var cur *Event
	var curErr error

	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			cur = &Event{}
			curErr = nil
		case line == "END:VEVENT":
			if cur != nil && curErr == nil && cur.UID != "" && !cur.StartsAt.IsZero() {
				// DTEND может отсутствовать: событие без длительности
				if cur.EndsAt.IsZero() {
					if cur.AllDay {
						cur.EndsAt = cur.StartsAt.Add(24 * time.Hour)
					} else {
						cur.EndsAt = cur.StartsAt
					}
				}
				events = append(events, cur)
			}
			cur = nil
		case cur != nil:
			name, params, value, ok := splitICSLine(line)
			if !ok {
				continue
			}
			switch name {
			case "UID":
				cur.UID = value
			case "SUMMARY":
				cur.Summary = unescapeICS(value)
			case "DTSTART":
				t, allDay, err := parseICSTime(value, params)
				if err != nil {
					curErr = err
					continue
				}
				cur.StartsAt = t
				cur.AllDay = allDay
			case "DTEND":
				t, _, err := parseICSTime(value, params)
				if err != nil {
					curErr = err
					continue
				}
				cur.EndsAt = t
			}
		}
	}

	return events, nil
}

// buildICS собирает iCalendar-документ для одного события
func buildICS(event *Event, prodID string) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	b.WriteString("BEGIN:VEVENT\r\n")
	b.WriteString(fmt.Sprintf("UID:%s\r\n", event.UID))
	b.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format(icsDateTimeUTC)))
	b.WriteString(fmt.Sprintf("DTSTART:%s\r\n", event.StartsAt.UTC().Format(icsDateTimeUTC)))
	b.WriteString(fmt.Sprintf("DTEND:%s\r\n", event.EndsAt.UTC().Format(icsDateTimeUTC)))
	b.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(event.Summary)))
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

// unfoldLines разворачивает перенесённые строки (продолжение начинается с пробела или таба)
func unfoldLines(data string) []string {
	raw := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// splitICSLine разбирает строку NAME;PARAM=VAL:VALUE
func splitICSLine(line string) (name string, params map[string]string, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", nil, "", false
	}
	head, value := line[:colon], line[colon+1:]

	parts := strings.Split(head, ";")
	name = strings.ToUpper(parts[0])
	params = make(map[string]string)
	for _, p := range parts[1:] {
		if eq := strings.Index(p, "="); eq > 0 {
			params[strings.ToUpper(p[:eq])] = p[eq+1:]
		}
	}
	return name, params, value, true
}

func parseICSTime(value string, params map[string]string) (time.Time, bool, error) {
	if params["VALUE"] == "DATE" || len(value) == len(icsDate) {
		t, err := time.Parse(icsDate, value)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid ics date %q: %w", value, err)
		}
		return t, true, nil
	}

	if strings.HasSuffix(value, "Z") {
		t, err := time.Parse(icsDateTimeUTC, value)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid ics datetime %q: %w", value, err)
		}
		return t, false, nil
	}

	// Локальное время или TZID: параметры зон не разворачиваем,
	// считаем время локальным временем студии
	t, err := time.ParseInLocation(icsDateTime, value, time.Local)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid ics datetime %q: %w", value, err)
	}
	return t, false, nil
}

func escapeICS(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

func unescapeICS(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\,`, ",")
	s = strings.ReplaceAll(s, `\;`, ";")
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
