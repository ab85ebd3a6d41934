package language

import (
	"strconv"
	"strings"
)

// ParseQuantity turns a spoken or written amount into a number using the
// profile's numeral table. It accepts plain digits ("200", "2.5"), single
// numeral words ("सौ"), and additive word sequences with multipliers
// ("two hundred fifty", "do sau pachas").
func (p *Profile) ParseQuantity(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return v, true
	}

	var total, current float64
	matched := false
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		tok = strings.Trim(tok, ".,")
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			current += v
			matched = true
			continue
		}
		v, ok := p.Numerals[tok]
		if !ok {
			continue
		}
		matched = true
		if v >= 100 {
			// Multiplier word: scale what we have so far ("do sau" = 2*100).
			if current == 0 {
				current = 1
			}
			current *= v
			total += current
			current = 0
		} else {
			current += v
		}
	}
	if !matched {
		return 0, false
	}
	return total + current, true
}
