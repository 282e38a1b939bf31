package application

import (
	"context"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

// MonasteryRepository is the admin-side port for directory writes.
type MonasteryRepository interface {
	Find(ctx context.Context) ([]admindomain.Monastery, error)
	FindByID(ctx context.Context, id string) (*admindomain.Monastery, error)
	Create(ctx context.Context, monastery *admindomain.Monastery) error
	Update(ctx context.Context, monastery *admindomain.Monastery) error
	Delete(ctx context.Context, id string) error
}

// GuideRepository is the admin-side port for guide pool writes.
type GuideRepository interface {
	Find(ctx context.Context) ([]admindomain.Guide, error)
	FindByID(ctx context.Context, id string) (*admindomain.Guide, error)
	Create(ctx context.Context, guide *admindomain.Guide) error
	Update(ctx context.Context, guide *admindomain.Guide) error
	Delete(ctx context.Context, id string) error
}

// UpsertMonasteryCommand carries admin input for create/update.
type UpsertMonasteryCommand struct {
	Name        string
	Location    string
	Description string
	PhotoURL    string
}

// UpsertGuideCommand carries admin input for create/update.
type UpsertGuideCommand struct {
	Name      string
	Languages []string
	Price     float64
	Rating    float64
	Skills    []string
	PhotoURL  string
}

// MonasteryService describes admin directory use-cases.
type MonasteryService interface {
	List(ctx context.Context) ([]admindomain.Monastery, error)
	Detail(ctx context.Context, id string) (*admindomain.Monastery, error)
	Create(ctx context.Context, cmd UpsertMonasteryCommand) (*admindomain.Monastery, error)
	Update(ctx context.Context, id string, cmd UpsertMonasteryCommand) (*admindomain.Monastery, error)
	Delete(ctx context.Context, id string) error
}

// GuideService describes admin guide pool use-cases.
type GuideService interface {
	List(ctx context.Context) ([]admindomain.Guide, error)
	Detail(ctx context.Context, id string) (*admindomain.Guide, error)
	Create(ctx context.Context, cmd UpsertGuideCommand) (*admindomain.Guide, error)
	Update(ctx context.Context, id string, cmd UpsertGuideCommand) (*admindomain.Guide, error)
	Delete(ctx context.Context, id string) error
}
