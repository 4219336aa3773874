package icslinks

import (
	"fmt"
	"strings"
)

// Provider identifies a calendar web application that accepts new events
// through a compose URL.  The string value is the client id used as the key
// of serialized link sets.
type Provider string

const (
	// ProviderOutlook is Outlook on the web (outlook.live.com).
	ProviderOutlook Provider = "outlook"
	// ProviderOutlookMobile is the Outlook deeplink compose endpoint.
	ProviderOutlookMobile Provider = "outlook_mobile"
	// ProviderOffice is Office 365 Outlook (outlook.office.com).
	ProviderOffice Provider = "office"
	// ProviderOfficeMobile is the Office 365 deeplink compose endpoint.
	ProviderOfficeMobile Provider = "office_mobile"
	// ProviderGoogle is Google Calendar.
	ProviderGoogle Provider = "google"
	// ProviderAOL is AOL Calendar.  It takes the Yahoo parameter format.
	ProviderAOL Provider = "aol"
	// ProviderYahoo is Yahoo Calendar.
	ProviderYahoo Provider = "yahoo"
)

// Family groups providers that share one parameter format.
type Family int

const (
	FamilyOutlook Family = iota + 1
	FamilyGoogle
	FamilyYahoo
)

type providerInfo struct {
	baseURL string
	label   string
}

// providers is the read-only registry.  Its order is the canonical output
// order of All and Subset.
var providers = []Provider{
	ProviderOutlook,
	ProviderOutlookMobile,
	ProviderOffice,
	ProviderOfficeMobile,
	ProviderGoogle,
	ProviderAOL,
	ProviderYahoo,
}

var registry = map[Provider]providerInfo{
	ProviderOutlook:       {baseURL: "https://outlook.live.com/calendar/0/action/compose?", label: "Outlook"},
	ProviderOutlookMobile: {baseURL: "https://outlook.live.com/calendar/0/deeplink/compose?", label: "Outlook Mobile"},
	ProviderOffice:        {baseURL: "https://outlook.office.com/calendar/0/action/compose?", label: "Office 365"},
	ProviderOfficeMobile:  {baseURL: "https://outlook.office.com/calendar/0/deeplink/compose?", label: "Office 365 Mobile"},
	ProviderGoogle:        {baseURL: "https://calendar.google.com/calendar/render?", label: "Google"},
	ProviderAOL:           {baseURL: "https://calendar.aol.com/?", label: "AOL"},
	ProviderYahoo:         {baseURL: "https://calendar.yahoo.com/?", label: "Yahoo"},
}

// Providers returns every known provider in canonical order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// ParseProvider resolves a client id such as "google" or "Office-Mobile".
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, s)
	}
	return p, nil
}

func (p Provider) Valid() bool {
	_, ok := registry[p]
	return ok
}

// BaseURL is the compose endpoint, including the trailing "?".
func (p Provider) BaseURL() string {
	return registry[p].baseURL
}

func (p Provider) DefaultLabel() string {
	return registry[p].label
}

// Family reports the parameter format used by p.  Adding a provider without
// extending this switch surfaces as ErrUnknownProvider in every formatter.
func (p Provider) Family() (Family, error) {
	switch p {
	case ProviderOutlook, ProviderOutlookMobile, ProviderOffice, ProviderOfficeMobile:
		return FamilyOutlook, nil
	case ProviderGoogle:
		return FamilyGoogle, nil
	case ProviderAOL, ProviderYahoo:
		return FamilyYahoo, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownProvider, string(p))
	}
}

func (p Provider) String() string {
	return string(p)
}
