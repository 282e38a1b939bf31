package domain

import (
	"errors"
	"strings"
	"time"
)

// Monastery aggregates the directory fields administrators may edit.
type Monastery struct {
	ID          string
	Name        string
	Location    string
	Description string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces the minimal shape a directory entry must have.
func (m *Monastery) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("monastery name is required")
	}
	return nil
}
