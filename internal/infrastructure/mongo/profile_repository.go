package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// ProfileRepository implements application.ProfileRepository using
// MongoDB.
type ProfileRepository struct {
	collection *mongo.Collection
	name       string
}

// NewProfileRepository creates a new Mongo-backed profile repository.
func NewProfileRepository(db *mongo.Database, collectionName string) *ProfileRepository {
	return &ProfileRepository{collection: db.Collection(collectionName), name: collectionName}
}

// Create writes the profile document at the identity id. Failures are
// reported as StoreWriteError so the signup service can surface the
// orphaned-identity case distinctly from an identity rejection.
func (r *ProfileRepository) Create(ctx context.Context, profile domain.UserProfile) error {
	doc := UserProfileDocument{
		ID:        profile.ID,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Email:     profile.Email,
		Anonymous: profile.Anonymous,
		CreatedAt: profile.CreatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return &domain.StoreWriteError{Collection: r.name, Err: err}
	}
	return nil
}
