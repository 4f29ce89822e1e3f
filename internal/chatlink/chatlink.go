// Package chatlink builds WhatsApp click-to-chat deep links. Construction
// only; nothing here talks to WhatsApp.
package chatlink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tukang-design/studio-api/internal/catalog"
	"github.com/tukang-design/studio-api/internal/pricing"
)

// Builder constructs wa.me links for a single studio number.
type Builder struct {
	number string
}

// NewBuilder creates a builder for the given phone number. The number is
// normalized to digits only, as wa.me requires.
func NewBuilder(number string) *Builder {
	return &Builder{number: normalizeNumber(number)}
}

func normalizeNumber(number string) string {
	var sb strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Link returns a wa.me URL opening a chat with the studio, with the
// composer pre-filled with text. Empty text omits the query entirely.
func (b *Builder) Link(text string) string {
	u := "https://wa.me/" + b.number
	if text != "" {
		u += "?text=" + url.QueryEscape(text)
	}
	return u
}

// PackageInterest returns a deep link pre-filled with a package enquiry
// for the given service.
func (b *Builder) PackageInterest(svc *catalog.ServiceOption, region catalog.Region) string {
	if svc == nil {
		return b.Link("Hi! I'd like to ask about your web design services.")
	}
	price := pricing.ServicePrice(svc, region)
	text := fmt.Sprintf("Hi! I'm interested in the %s package", svc.Name)
	if price > 0 {
		text += fmt.Sprintf(" (%s)", pricing.Format(price, region))
	}
	text += ". Can we talk?"
	return b.Link(text)
}
