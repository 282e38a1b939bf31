package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

// GuideRepository implements application.GuideRepository using MongoDB.
type GuideRepository struct {
	collection *mongo.Collection
}

// NewGuideRepository creates a new Mongo-backed guide repository.
func NewGuideRepository(db *mongo.Database, collectionName string) *GuideRepository {
	return &GuideRepository{collection: db.Collection(collectionName)}
}

// FindAll returns the whole guide pool. Matching happens in memory; the
// pool is small and the language/price fields are too loosely typed to
// filter store-side.
func (r *GuideRepository) FindAll(ctx context.Context) ([]domain.Guide, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	guides := make([]domain.Guide, 0)
	for cursor.Next(ctx) {
		var doc GuideDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		guides = append(guides, mapGuideDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return guides, nil
}

func mapGuideDocument(doc GuideDocument) domain.Guide {
	createdAt := time.Time{}
	if doc.CreatedAt != nil {
		createdAt = *doc.CreatedAt
	}
	updatedAt := time.Time{}
	if doc.UpdatedAt != nil {
		updatedAt = *doc.UpdatedAt
	}

	return domain.Guide{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		Languages: normalizeBSONValue(doc.Languages),
		Price:     normalizeBSONValue(doc.Price),
		Rating:    doc.Rating,
		Skills:    append([]string{}, doc.Skills...),
		PhotoURL:  doc.PhotoURL,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// normalizeBSONValue unwraps driver container types so the domain only
// ever sees plain Go values.
func normalizeBSONValue(value any) any {
	switch v := value.(type) {
	case bson.A:
		items := make([]any, 0, len(v))
		for _, item := range v {
			items = append(items, normalizeBSONValue(item))
		}
		return items
	case bson.D:
		fields := make(map[string]any, len(v))
		for _, elem := range v {
			fields[elem.Key] = normalizeBSONValue(elem.Value)
		}
		return fields
	default:
		return v
	}
}
