// Package language holds the static per-language registry: greetings, stage
// prompts, commodity synonyms and numeral tables. Profiles are loaded once at
// startup from an embedded table and are immutable afterwards.
package language

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bolibazaar/bolibazaar/pkg/domain"
)

//go:embed profiles.yaml
var profilesYAML []byte

// SynonymEntry maps a canonical commodity to the spoken terms that refer to
// it. Entries are ordered: the first match wins.
type SynonymEntry struct {
	Commodity string   `yaml:"commodity"`
	Terms     []string `yaml:"terms"`
}

// Profile is the full language definition for one supported language.
type Profile struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Greeting string `yaml:"greeting"`

	// Reprompt is the generic "say that again" line used when extraction
	// degrades after retries.
	Reprompt string `yaml:"reprompt"`

	// MarketPriceLine formats a market quote: commodity, min, max, currency, avg.
	MarketPriceLine string `yaml:"market_price_line"`

	// PriceAtMarket is the phrase substituted for a price when the user asked
	// for the market rate.
	PriceAtMarket string `yaml:"price_at_market"`

	// ConfirmLine formats the listing summary: quantity, unit, commodity, price phrase.
	ConfirmLine string `yaml:"confirm_line"`

	Prompts  map[string]string  `yaml:"prompts"`
	Clarify  map[string]string  `yaml:"clarify"`
	Synonyms []SynonymEntry     `yaml:"synonyms"`
	Numerals map[string]float64 `yaml:"numerals"`
}

// Prompt returns the localized prompt for a stage, falling back to the
// generic reprompt when the stage has none.
func (p *Profile) Prompt(stage domain.Stage) string {
	if s, ok := p.Prompts[string(stage)]; ok {
		return s
	}
	return p.Reprompt
}

// ClarifyFor returns the localized clarifying prompt for a missing field.
func (p *Profile) ClarifyFor(field string) string {
	if s, ok := p.Clarify[field]; ok {
		return s
	}
	return p.Reprompt
}

// ResolveCommodity matches free text against the synonym table. The first
// matching entry wins. When nothing matches, the raw text passes through and
// ok is false so the caller can flag low confidence.
func (p *Profile) ResolveCommodity(text string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return "", false
	}
	for _, entry := range p.Synonyms {
		for _, term := range entry.Terms {
			t := strings.ToLower(term)
			if needle == t || strings.Contains(needle, t) {
				return entry.Commodity, true
			}
		}
	}
	return text, false
}

// Registry is the read-only set of supported language profiles.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

type profilesFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// NewRegistry parses the embedded profile table.
func NewRegistry() (*Registry, error) {
	var file profilesFile
	if err := yaml.Unmarshal(profilesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse language profiles: %w", err)
	}
	r := &Registry{profiles: make(map[string]*Profile, len(file.Profiles))}
	for _, p := range file.Profiles {
		if p.Code == "" {
			return nil, fmt.Errorf("language profile with empty code")
		}
		if p.Greeting == "" {
			return nil, fmt.Errorf("language %s: empty greeting", p.Code)
		}
		r.profiles[p.Code] = p
		r.order = append(r.order, p.Code)
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on a broken embedded table.
// The table ships with the binary, so a failure here is a build defect.
func MustRegistry() *Registry {
	r, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the profile for a language code.
func (r *Registry) Get(code string) (*Profile, error) {
	p, ok := r.profiles[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, code)
	}
	return p, nil
}

// All returns every profile in declaration order.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.profiles[code])
	}
	return out
}
