package mongo

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

// AdminGuideRepository is the Mongo implementation of the admin-side
// guide pool port. Writes use the canonical field shapes; reads still
// tolerate legacy string-typed languages and prices.
type AdminGuideRepository struct {
	collection *mongo.Collection
}

// NewAdminGuideRepository binds the repository to a collection.
func NewAdminGuideRepository(db *mongo.Database, collectionName string) *AdminGuideRepository {
	return &AdminGuideRepository{collection: db.Collection(collectionName)}
}

// Find returns every guide, newest first.
func (r *AdminGuideRepository) Find(ctx context.Context) ([]admindomain.Guide, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	guides := make([]admindomain.Guide, 0)
	for cursor.Next(ctx) {
		var doc GuideDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		guides = append(guides, mapAdminGuide(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return guides, nil
}

// FindByID returns a single guide by its hex ObjectID.
func (r *AdminGuideRepository) FindByID(ctx context.Context, id string) (*admindomain.Guide, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	var doc GuideDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}
	guide := mapAdminGuide(doc)
	return &guide, nil
}

// Create inserts a new guide after a duplicate-name check.
func (r *AdminGuideRepository) Create(ctx context.Context, guide *admindomain.Guide) error {
	filter := bson.M{"name": strings.TrimSpace(guide.Name)}
	if err := r.collection.FindOne(ctx, filter).Err(); err == nil {
		return ErrDuplicateEntry
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	result, err := r.collection.InsertOne(ctx, buildGuideDocument(guide, now, true))
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		guide.ID = id.Hex()
	}
	guide.CreatedAt = now
	guide.UpdatedAt = now
	return nil
}

// Update replaces the editable fields of an existing guide.
func (r *AdminGuideRepository) Update(ctx context.Context, guide *admindomain.Guide) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(guide.ID))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": buildGuideDocument(guide, now, false)})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	guide.UpdatedAt = now
	return nil
}

// Delete removes a guide.
func (r *AdminGuideRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func buildGuideDocument(guide *admindomain.Guide, now time.Time, includeCreated bool) bson.M {
	payload := bson.M{
		"name":      guide.Name,
		"languages": append([]string{}, guide.Languages...),
		"price":     guide.Price,
		"rating":    guide.Rating,
		"skills":    append([]string{}, guide.Skills...),
		"photoURL":  guide.PhotoURL,
		"updatedAt": now,
	}
	if includeCreated {
		payload["createdAt"] = now
	}
	return payload
}

func mapAdminGuide(doc GuideDocument) admindomain.Guide {
	guide := admindomain.Guide{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Rating:   doc.Rating,
		Skills:   append([]string{}, doc.Skills...),
		PhotoURL: doc.PhotoURL,
	}
	// Reuse the public read model's normalization for loosely typed
	// legacy fields.
	publicView := mapGuideDocument(doc)
	guide.Languages = publicView.SpokenLanguages()
	if price := publicView.PriceValue(); !math.IsNaN(price) {
		guide.Price = price
	}
	if doc.CreatedAt != nil {
		guide.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		guide.UpdatedAt = *doc.UpdatedAt
	}
	return guide
}
