package icslinks

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
)

// Link is the serialized form of one provider link.
type Link struct {
	Client Provider `json:"client"`
	Label  string   `json:"label"`
	URL    string   `json:"url"`
}

// LinkSet is a list of links in canonical provider order.  It marshals to a
// JSON object keyed by client id, preserving that order.
type LinkSet []Link

// All returns the link of every provider.
func (b *Builder) All() (LinkSet, error) {
	return b.links(providers)
}

// Subset returns the links of the requested providers.  The result follows
// the canonical provider order, not the order of ids; repeated ids collapse.
func (b *Builder) Subset(ids ...Provider) (LinkSet, error) {
	for _, id := range ids {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, string(id))
		}
	}
	return b.links(lo.Filter(providers, func(p Provider, _ int) bool {
		return lo.Contains(ids, p)
	}))
}

func (b *Builder) links(ps []Provider) (LinkSet, error) {
	out := make(LinkSet, 0, len(ps))
	for _, p := range ps {
		u, err := b.URL(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, Link{Client: p, Label: b.labels[p], URL: u})
	}
	return out, nil
}

// Get returns the link for p, if present.
func (ls LinkSet) Get(p Provider) (Link, bool) {
	return lo.Find(ls, func(l Link) bool { return l.Client == p })
}

// URLs drops labels, leaving client id to URL.
func (ls LinkSet) URLs() URLSet {
	return URLSet(ls)
}

func (ls LinkSet) MarshalJSON() ([]byte, error) {
	return marshalOrdered(ls, func(l Link) any { return l })
}

// URLSet is the label-free form of a LinkSet.  It marshals to a JSON object
// mapping client id to URL in canonical order.
type URLSet []Link

// Map returns the set as a plain map.
func (us URLSet) Map() map[Provider]string {
	return lo.SliceToMap(us, func(l Link) (Provider, string) {
		return l.Client, l.URL
	})
}

func (us URLSet) MarshalJSON() ([]byte, error) {
	return marshalOrdered(us, func(l Link) any { return l.URL })
}

func marshalOrdered(links []Link, value func(Link) any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range links {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeCompact(&buf, string(l.Client)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeCompact(&buf, value(l)); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeCompact writes v without HTML escaping so "&" in URLs stays
// readable, and without the encoder's trailing newline.
func encodeCompact(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}
