package application

import (
	"context"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// MonasteryRepository abstracts read access to the monastery directory.
// Entries are administered out-of-band; the public context never writes.
type MonasteryRepository interface {
	FindAll(ctx context.Context) ([]domain.Monastery, error)
}

// GuideRepository abstracts read access to the guide pool.
type GuideRepository interface {
	FindAll(ctx context.Context) ([]domain.Guide, error)
}

// ProfileRepository persists signup profiles keyed by identity id.
type ProfileRepository interface {
	Create(ctx context.Context, profile domain.UserProfile) error
}

// Identity is what the identity provider hands back for an anonymous
// signup: a provider-issued id and a bearer token proving it.
type Identity struct {
	ID    string
	Token string
}

// IdentityProvider mints anonymous identities.
type IdentityProvider interface {
	SignInAnonymously(ctx context.Context) (Identity, error)
}

// ChatBackend relays a visitor message to the configured assistant
// endpoint and returns the extracted reply text.
type ChatBackend interface {
	Send(ctx context.Context, message string) (string, error)
}

// WeatherReport carries the upstream response verbatim so the proxy can
// relay status and body without reinterpreting them.
type WeatherReport struct {
	StatusCode int
	Body       []byte
}

// WeatherProvider fetches current conditions for a city. A non-success
// upstream status is still a report, not an error; only transport
// failures surface as errors.
type WeatherProvider interface {
	CurrentByCity(ctx context.Context, city string) (*WeatherReport, error)
}

// Record is a document snapshot entry: the store-assigned id merged with
// the document's fields.
type Record = map[string]any

// LiveCollection pushes full collection snapshots to a callback whenever
// the backing collection changes. The returned release function stops the
// subscription; once it returns, no further callbacks fire.
type LiveCollection interface {
	Subscribe(ctx context.Context, onUpdate func([]Record)) (func(), error)
}

// GuideMatchService describes the guide matching use-cases.
type GuideMatchService interface {
	List(ctx context.Context) ([]domain.Guide, error)
	Match(ctx context.Context, pref domain.Preference) ([]domain.Guide, error)
}

// SignupCommand captures the signup form input.
type SignupCommand struct {
	Name  string
	Phone string
	Email string
}

// SignupResult reports the provider-issued id and token for a completed
// signup.
type SignupResult struct {
	ID    string
	Token string
}

// SignupService creates an anonymous identity and persists its profile.
type SignupService interface {
	Signup(ctx context.Context, cmd SignupCommand) (*SignupResult, error)
}
