package domain

import "time"

// UserProfile is the record persisted at signup, keyed by the id the
// identity provider issued. Profiles are written exactly once and never
// updated or deleted by this service.
type UserProfile struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Anonymous bool
	CreatedAt time.Time
}
