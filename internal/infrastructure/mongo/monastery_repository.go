package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// MonasteryRepository implements application.MonasteryRepository using
// MongoDB.
type MonasteryRepository struct {
	collection *mongo.Collection
}

// NewMonasteryRepository creates a new Mongo-backed monastery repository.
func NewMonasteryRepository(db *mongo.Database, collectionName string) *MonasteryRepository {
	return &MonasteryRepository{collection: db.Collection(collectionName)}
}

// FindAll returns every directory entry in store iteration order.
func (r *MonasteryRepository) FindAll(ctx context.Context) ([]domain.Monastery, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	monasteries := make([]domain.Monastery, 0)
	for cursor.Next(ctx) {
		var doc MonasteryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		monasteries = append(monasteries, mapMonasteryDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return monasteries, nil
}

func mapMonasteryDocument(doc MonasteryDocument) domain.Monastery {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}
	updatedAt := time.Time{}
	if doc.UpdatedAt != nil {
		updatedAt = *doc.UpdatedAt
	}

	return domain.Monastery{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Location:    doc.Location,
		Description: doc.Description,
		PhotoURL:    doc.PhotoURL,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}
