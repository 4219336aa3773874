package icslinks

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
)

// Target patterns, strftime style.
const (
	outlookDatePattern = "%Y-%m-%dT%H:%M:%S"
	utcStampPattern    = "%Y%m%dT%H%M%SZ"
	dateOnlyPattern    = "%Y%m%d"
)

// dateLayouts are the accepted input layouts, tried in order.  Layouts with
// a zone designator are converted to UTC; the rest keep their wall clock.
var dateLayouts = []struct {
	layout string
	zoned  bool
}{
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{time.RFC3339, true},
	{"2006-01-02T15:04Z07:00", true},
	{"2006-01-02 15:04:05Z07:00", true},
	{"2006-01-02 15:04Z07:00", true},
	{"2006-01-02 15:04:05-0700", true},
	{"20060102T150405Z", true},
	{"20060102T150405", false},
	{"2006-01-02", false},
	{"20060102", false},
}

// offsetSuffix matches a date-time followed by a numeric UTC offset, with an
// optional space before it and the hour in one or two digits: "+2", "+02",
// "+0200", " +02:00".
var offsetSuffix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}(?::\d{2})?)\s*([+-])(\d{1,2})(?::?(\d{2}))?$`)

// normalizeOffset rewrites a numeric offset suffix to "±HH:MM".
func normalizeOffset(v string) string {
	m := offsetSuffix.FindStringSubmatch(v)
	if m == nil {
		return v
	}
	hh, mm := m[3], m[4]
	if len(hh) == 1 {
		hh = "0" + hh
	}
	if mm == "" {
		mm = "00"
	}
	return m[1] + m[2] + hh + ":" + mm
}

// parseDate reads a free-form date-time string into an instant.
func parseDate(s string) (time.Time, error) {
	v := normalizeOffset(strings.TrimSpace(s))
	for _, l := range dateLayouts {
		t, err := time.ParseInLocation(l.layout, v, time.UTC)
		if err != nil {
			continue
		}
		if l.zoned {
			t = t.UTC()
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// isDateOnly reports whether s carries no time of day, e.g. "20230815".
func isDateOnly(s string) bool {
	v := strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func formatDate(s, pattern string) (string, error) {
	t, err := parseDate(s)
	if err != nil {
		return "", err
	}
	return timefmt.Format(t, pattern), nil
}

// formatRange formats start and end with the same pattern.
func formatRange(start, end, pattern string) (string, string, error) {
	st, err := formatDate(start, pattern)
	if err != nil {
		return "", "", fmt.Errorf("start: %w", err)
	}
	et, err := formatDate(end, pattern)
	if err != nil {
		return "", "", fmt.Errorf("end: %w", err)
	}
	return st, et, nil
}
