package domain

import "time"

// Monastery represents a directory entry. Entries are maintained by
// administrators; the public surface only reads them.
type Monastery struct {
	ID          string
	Name        string
	Location    string
	Description string
	PhotoURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
