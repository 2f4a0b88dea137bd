// Package query turns one free-text financial query into an immutable parsed
// value: a classified intent plus independently extracted slots.
package query

import (
	"strings"
	"time"

	"github.com/finquery/finquery/internal/core"
)

// Parser composes the slot extractor and the intent classifier. The alias
// table is fixed at construction and safe for concurrent reads.
type Parser struct {
	aliases    map[string]string
	aliasOrder []string
	now        func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithAliases merges extra name-to-code aliases over the built-in table.
func WithAliases(extra map[string]string) Option {
	return func(p *Parser) {
		for name, code := range extra {
			p.aliases[name] = code
		}
	}
}

// WithNow overrides the clock used for relative-date resolution.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// New creates a parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		aliases: make(map[string]string, len(defaultAliases)),
		now:     time.Now,
	}
	for name, code := range defaultAliases {
		p.aliases[name] = code
	}
	for _, opt := range opts {
		opt(p)
	}
	p.aliasOrder = orderAliases(p.aliases)
	return p
}

// Parse classifies the text and extracts all slots. Each slot is found via its
// own rule chain, so extraction is order-independent across slots.
func (p *Parser) Parse(text string) core.ParsedQuery {
	text = strings.TrimSpace(text)

	return core.ParsedQuery{
		Intent: Classify(text),
		Raw:    text,
		Symbol: p.extractSymbol(text),
		Date:   p.extractDate(text),
		Period: extractPeriod(text),
		Limit:  extractLimit(text),
	}
}
