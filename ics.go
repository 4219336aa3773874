package icslinks

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// FromICS builds a Builder from a VEVENT of an iCalendar stream.  When uid
// is empty the first event is used.
//
// Times carrying "Z" or a TZID are stored in UTC; floating times keep their
// wall clock; date-only values mark the event as all-day.  Without DTEND the
// end is DTSTART plus DURATION, or the next day for an all-day event.
func FromICS(r io.Reader, uid string) (*Builder, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	var event *ical.VEvent
	for _, e := range cal.Events() {
		if uid == "" || strings.EqualFold(e.Id(), uid) {
			event = e
			break
		}
	}
	if event == nil {
		if uid == "" {
			return nil, fmt.Errorf("%w: calendar has no VEVENT", ErrEventNotFound)
		}
		return nil, fmt.Errorf("%w: uid %q", ErrEventNotFound, uid)
	}

	startProp := event.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, KeyDtStart)
	}
	allDay := isAllDayProperty(startProp)
	startAt, err := icsTime(startProp, event.GetStartAt)
	if err != nil {
		return nil, err
	}

	var endAt time.Time
	endFormat := startProp
	endProp := event.GetProperty(ical.ComponentPropertyDtEnd)
	durProp := event.GetProperty(ical.ComponentProperty(ical.PropertyDuration))
	switch {
	case endProp != nil:
		endFormat = endProp
		if endAt, err = icsTime(endProp, event.GetEndAt); err != nil {
			return nil, err
		}
	case durProp != nil:
		if endAt, err = addICSDuration(startAt, durProp.Value); err != nil {
			return nil, err
		}
	case allDay:
		endAt = startAt.AddDate(0, 0, 1)
	default:
		return nil, fmt.Errorf("%w: %s", ErrMissingField, KeyDtEnd)
	}

	start := icsDate(startProp, startAt, allDay)
	end := icsDate(endFormat, endAt, allDay)

	return New(start, end,
		WithSummary(propertyValue(event, ical.ComponentPropertySummary)),
		WithLocation(propertyValue(event, ical.ComponentPropertyLocation)),
		WithDescription(propertyValue(event, ical.ComponentPropertyDescription)),
		WithAllDay(allDay),
	), nil
}

func propertyValue(e *ical.VEvent, p ical.ComponentProperty) string {
	if prop := e.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// isAllDayProperty reports VALUE=DATE or a value without a time part.
func isAllDayProperty(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func icsTime(p *ical.IANAProperty, get func() (time.Time, error)) (time.Time, error) {
	t, err := get()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q: %v", ErrInvalidDate, p.IANAToken, p.Value, err)
	}
	return t, nil
}

// icsDate renders t in the convention of the date property p.
func icsDate(p *ical.IANAProperty, t time.Time, allDay bool) string {
	if allDay {
		return t.Format("2006-01-02")
	}
	_, hasTZID := p.ICalParameters["TZID"]
	if hasTZID || strings.HasSuffix(p.Value, "Z") {
		return t.UTC().Format(time.RFC3339)
	}
	return t.Format("2006-01-02 15:04:05")
}

var icsDurationPattern = regexp.MustCompile(`^([+-])?P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// addICSDuration adds an RFC 5545 DURATION value such as "PT1H30M" or "P1D"
// to t.  Weeks and days are nominal, the rest exact.
func addICSDuration(t time.Time, value string) (time.Time, error) {
	v := strings.ToUpper(strings.TrimSpace(value))
	m := icsDurationPattern.FindStringSubmatch(v)
	if m == nil || v == "P" || v == "PT" || strings.HasSuffix(v, "T") || strings.HasSuffix(v, "P") {
		return time.Time{}, fmt.Errorf("%w: DURATION %q", ErrInvalidDate, value)
	}
	n := make([]int, 5)
	for i := range n {
		if m[i+2] == "" {
			continue
		}
		x, err := strconv.Atoi(m[i+2])
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: DURATION %q", ErrInvalidDate, value)
		}
		n[i] = x
	}
	sign := 1
	if m[1] == "-" {
		sign = -1
	}
	weeks, days, hours, minutes, seconds := n[0], n[1], n[2], n[3], n[4]
	clock := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	return t.AddDate(0, 0, sign*(7*weeks+days)).Add(time.Duration(sign) * clock), nil
}
