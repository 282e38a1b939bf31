package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Guide represents a tour guide as stored in the directory. Language and
// price fields arrive in whatever shape the document store holds them
// (array or delimited string, number or numeric string) and are only
// normalized on read.
type Guide struct {
	ID        string
	Name      string
	Languages any
	Price     any
	Rating    float64
	Skills    []string
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Preference captures a visitor's guide request. It is never persisted.
type Preference struct {
	Language string
	Budget   float64
}

// SpokenLanguages normalizes the raw languages field into a list:
// a string slice is used as-is, a string is split on commas with each
// token trimmed, anything else yields an empty list.
func (g Guide) SpokenLanguages() []string {
	switch v := g.Languages.(type) {
	case []string:
		return v
	case []any:
		langs := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				langs = append(langs, s)
			}
		}
		return langs
	case string:
		parts := strings.Split(v, ",")
		langs := make([]string, 0, len(parts))
		for _, part := range parts {
			langs = append(langs, strings.TrimSpace(part))
		}
		return langs
	default:
		return []string{}
	}
}

// PriceValue coerces the raw price field to a number. Non-numeric values
// coerce to NaN, which fails every budget comparison and therefore
// excludes the guide from matching.
func (g Guide) PriceValue() float64 {
	switch v := g.Price.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return parsed
	default:
		return math.NaN()
	}
}

// MatchGuides returns the guides speaking the requested language (exact,
// case-sensitive match) whose price fits within the budget, inclusive.
// The filter is stable and never mutates its input.
func MatchGuides(guides []Guide, pref Preference) []Guide {
	matched := make([]Guide, 0)
	for _, guide := range guides {
		if !containsLanguage(guide.SpokenLanguages(), pref.Language) {
			continue
		}
		if !(guide.PriceValue() <= pref.Budget) {
			continue
		}
		matched = append(matched, guide)
	}
	return matched
}

func containsLanguage(langs []string, language string) bool {
	for _, lang := range langs {
		if lang == language {
			return true
		}
	}
	return false
}
