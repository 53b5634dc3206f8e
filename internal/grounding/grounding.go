// Package grounding selects the displayable citations of a grounded answer.
package grounding

import "healthassist/backend/internal/model"

// Kind classifies a citation by the payload it carries.
type Kind string

const (
	KindNone Kind = ""
	KindMaps Kind = "maps"
	KindWeb  Kind = "web"
)

// KindOf returns the payload kind of c. A map place wins over a web link.
func KindOf(c model.Citation) Kind {
	switch {
	case c.Maps != nil:
		return KindMaps
	case c.Web != nil:
		return KindWeb
	default:
		return KindNone
	}
}

// Filter keeps the citations that carry a map place or a web link, in input
// order. Entries carrying neither are dropped; nothing is deduplicated.
func Filter(citations []model.Citation) []model.Citation {
	out := make([]model.Citation, 0, len(citations))
	for _, c := range citations {
		if KindOf(c) != KindNone {
			out = append(out, c)
		}
	}
	return out
}

// Partition splits citations into map places and web links, each in input order.
func Partition(citations []model.Citation) (places, links []model.Citation) {
	for _, c := range citations {
		switch KindOf(c) {
		case KindMaps:
			places = append(places, c)
		case KindWeb:
			links = append(links, c)
		}
	}
	return places, links
}
