package icslinks

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	outlookComposePath = "/calendar/action/compose"
	outlookRRU         = "addevent"
	googleAction       = "TEMPLATE"
	yahooVersion       = "60"
)

// queryWriter appends key=value pairs in call order.  Values passed to add
// are escaped with url.QueryEscape (space becomes "+"); raw values are
// written as is.
type queryWriter struct {
	sb strings.Builder
}

func (w *queryWriter) raw(key, value string) {
	if w.sb.Len() > 0 {
		w.sb.WriteByte('&')
	}
	w.sb.WriteString(key)
	w.sb.WriteByte('=')
	w.sb.WriteString(value)
}

func (w *queryWriter) add(key, value string) {
	w.raw(key, url.QueryEscape(value))
}

func (w *queryWriter) String() string {
	return w.sb.String()
}

// Parameters returns the query string for p without a leading "?".
func (b *Builder) Parameters(p Provider) (string, error) {
	family, err := p.Family()
	if err != nil {
		return "", err
	}
	switch family {
	case FamilyOutlook:
		return b.outlookParameters()
	case FamilyGoogle:
		return b.googleParameters()
	case FamilyYahoo:
		return b.yahooParameters()
	}
	return "", ErrUnknownProvider
}

// URL returns the compose URL of p for the event.
func (b *Builder) URL(p Provider) (string, error) {
	params, err := b.Parameters(p)
	if err != nil {
		return "", err
	}
	return p.BaseURL() + params, nil
}

// stampPattern is shared by the Google and Yahoo formats.
func (b *Builder) stampPattern() string {
	if b.event.AllDay {
		return dateOnlyPattern
	}
	return utcStampPattern
}

func (b *Builder) outlookParameters() (string, error) {
	st, et, err := formatRange(b.event.Start, b.event.End, outlookDatePattern)
	if err != nil {
		return "", err
	}
	var w queryWriter
	w.raw("allday", strconv.FormatBool(b.event.AllDay))
	w.add("body", b.event.Summary)
	w.add("enddt", et)
	w.add("location", b.event.Location)
	w.add("path", outlookComposePath)
	w.add("rru", outlookRRU)
	w.add("startdt", st)
	w.add("subject", b.event.Description)
	return w.String(), nil
}

func (b *Builder) googleParameters() (string, error) {
	st, et, err := formatRange(b.event.Start, b.event.End, b.stampPattern())
	if err != nil {
		return "", err
	}
	var w queryWriter
	w.add("action", googleAction)
	w.raw("dates", url.QueryEscape(st)+"/"+url.QueryEscape(et))
	w.add("details", b.event.Summary)
	w.add("location", b.event.Location)
	w.add("text", b.event.Description)
	return w.String(), nil
}

func (b *Builder) yahooParameters() (string, error) {
	st, et, err := formatRange(b.event.Start, b.event.End, b.stampPattern())
	if err != nil {
		return "", err
	}
	dur := "false"
	if b.event.AllDay {
		dur = "allday"
	}
	var w queryWriter
	w.add("desc", b.event.Summary)
	w.raw("dur", dur)
	w.add("et", et)
	w.add("in_loc", b.event.Location)
	w.add("st", st)
	w.add("title", b.event.Description)
	w.add("v", yahooVersion)
	return w.String(), nil
}
