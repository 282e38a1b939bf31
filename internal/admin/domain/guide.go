package domain

import (
	"errors"
	"strings"
	"time"
)

// Guide is the admin-side aggregate. Unlike the public read model, writes
// always use the canonical shapes: languages as a list, price as a
// number. Legacy string-typed documents only ever enter through reads.
type Guide struct {
	ID        string
	Name      string
	Languages []string
	Price     float64
	Rating    float64
	Skills    []string
	PhotoURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces the invariants admin writes must satisfy.
func (g *Guide) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("guide name is required")
	}
	if len(g.Languages) == 0 {
		return errors.New("at least one language is required")
	}
	for _, lang := range g.Languages {
		if strings.TrimSpace(lang) == "" {
			return errors.New("languages must not be blank")
		}
	}
	if g.Price < 0 {
		return errors.New("price must not be negative")
	}
	if g.Rating < 0 || g.Rating > 5 {
		return errors.New("rating must be between 0 and 5")
	}
	return nil
}
