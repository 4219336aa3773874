// Package icslinks builds "add to calendar" links for webmail calendars
// (Outlook, Office 365, Google, AOL, Yahoo) from a single set of event
// fields, and reads those fields back from a link or query string.
package icslinks

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Event holds the fields every provider link is built from.  Start and End
// are kept as given and only parsed when a link is formatted.
type Event struct {
	Start       string
	End         string
	Summary     string
	Location    string
	Description string
	AllDay      bool
}

// Builder formats one event for every provider.  Apart from SetLabels it is
// read-only; SetLabels must not run concurrently with other methods.
type Builder struct {
	event  Event
	labels map[Provider]string
}

// Option configures a Builder created by New.
type Option func(b *Builder)

func WithSummary(s string) Option {
	return func(b *Builder) { b.event.Summary = s }
}

func WithLocation(s string) Option {
	return func(b *Builder) { b.event.Location = s }
}

func WithDescription(s string) Option {
	return func(b *Builder) { b.event.Description = s }
}

func WithAllDay(allDay bool) Option {
	return func(b *Builder) { b.event.AllDay = allDay }
}

// WithLabels applies label overrides, see SetLabels.
func WithLabels(labels map[Provider]string) Option {
	return func(b *Builder) { b.SetLabels(labels) }
}

// New creates a Builder for the event running from start to end.
//
// Example:
//
//	b := icslinks.New("2023-08-15 15:00:00", "2023-08-15 16:30:00",
//		icslinks.WithSummary("Meeting"),
//		icslinks.WithLocation("Office"),
//	)
//	u, err := b.URL(icslinks.ProviderGoogle)
func New(start, end string, opts ...Option) *Builder {
	b := &Builder{
		event:  Event{Start: start, End: end},
		labels: make(map[Provider]string, len(providers)),
	}
	for _, p := range providers {
		b.labels[p] = p.DefaultLabel()
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Event returns a copy of the event fields.
func (b *Builder) Event() Event {
	return b.event
}

// SetLabels overrides display labels.  Unknown providers are ignored.
func (b *Builder) SetLabels(labels map[Provider]string) *Builder {
	for p, label := range labels {
		if !p.Valid() {
			continue
		}
		b.labels[p] = label
	}
	return b
}

func (b *Builder) Label(p Provider) string {
	return b.labels[p]
}

// ParseBool interprets an all-day flag.  "true", "1" and "yes" (any case)
// are true; every other value is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// Field keys understood by FromMap, upper case.
const (
	KeyDtStart     = "DTSTART"
	KeyStart       = "START"
	KeyDtEnd       = "DTEND"
	KeyEnd         = "END"
	KeySummary     = "SUMMARY"
	KeyLocation    = "LOCATION"
	KeyDescription = "DESCRIPTION"
	KeyAllDay      = "ALLDAY"
	KeyAllDayAlt   = "ALL_DAY"
)

// FromMap builds a Builder from a key/value mapping with case-insensitive
// keys.  Besides the generic keys it accepts the query keys written by the
// Outlook, Google and Yahoo formatters, so a generated link parses back
// into the same event.  Generic keys take precedence.
func FromMap(m map[string]string) (*Builder, error) {
	fields := lo.MapKeys(m, func(_ string, k string) string {
		return strings.ToUpper(strings.TrimSpace(k))
	})
	get := func(keys ...string) string {
		for _, k := range keys {
			if v := fields[k]; v != "" {
				return v
			}
		}
		return ""
	}

	var dateStart, dateEnd string
	if dates := fields["DATES"]; dates != "" {
		dateStart, dateEnd, _ = strings.Cut(dates, "/")
	}

	start := lo.CoalesceOrEmpty(get(KeyDtStart, KeyStart, "STARTDT", "ST"), dateStart)
	if start == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, KeyDtStart)
	}
	end := lo.CoalesceOrEmpty(get(KeyDtEnd, KeyEnd, "ENDDT", "ET"), dateEnd)
	if end == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, KeyDtEnd)
	}

	var allDay bool
	switch {
	case get(KeyAllDay, KeyAllDayAlt) != "":
		allDay = ParseBool(get(KeyAllDay, KeyAllDayAlt))
	case fields["DUR"] != "":
		allDay = strings.EqualFold(fields["DUR"], "allday")
	case fields["DATES"] != "":
		allDay = isDateOnly(dateStart) && isDateOnly(dateEnd)
	}

	return New(start, end,
		WithSummary(get(KeySummary, "BODY", "DETAILS", "DESC")),
		WithLocation(get(KeyLocation, "IN_LOC")),
		WithDescription(get(KeyDescription, "SUBJECT", "TEXT", "TITLE")),
		WithAllDay(allDay),
	), nil
}

// FromURL builds a Builder from the query component of rawURL.  With
// isBase64 the query component is a base64 blob holding the real query.
func FromURL(rawURL string, isBase64 bool) (*Builder, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	query := u.RawQuery
	if query == "" {
		return nil, fmt.Errorf("%w: no query component in %q", ErrInvalidURL, rawURL)
	}

	if isBase64 {
		query, err = decodeBase64Query(query)
		if err != nil {
			return nil, err
		}
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	m := make(map[string]string, len(values))
	for k, vs := range values {
		k = strings.ToUpper(k)
		if _, seen := m[k]; seen || len(vs) == 0 {
			continue
		}
		m[k] = vs[0]
	}
	return FromMap(m)
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

func decodeBase64Query(query string) (string, error) {
	// PathUnescape leaves '+' alone, which is part of the standard alphabet.
	blob, err := url.PathUnescape(query)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	blob = strings.TrimSpace(blob)
	for _, enc := range base64Encodings {
		if decoded, err := enc.DecodeString(blob); err == nil {
			return strings.TrimPrefix(string(decoded), "?"), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidEncoding, blob)
}
