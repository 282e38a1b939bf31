package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/norbulab/sikkim-trails-services/api/internal/admin/domain"
)

// ErrDuplicateEntry reports a create that collides with an existing
// document of the same name.
var ErrDuplicateEntry = errors.New("entry already exists")

// AdminMonasteryRepository is the Mongo implementation of the admin-side
// directory port. Its writes are what the public live feed observes.
type AdminMonasteryRepository struct {
	collection *mongo.Collection
}

// NewAdminMonasteryRepository binds the repository to a collection.
func NewAdminMonasteryRepository(db *mongo.Database, collectionName string) *AdminMonasteryRepository {
	return &AdminMonasteryRepository{collection: db.Collection(collectionName)}
}

// Find returns every entry, newest first.
func (r *AdminMonasteryRepository) Find(ctx context.Context) ([]admindomain.Monastery, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	monasteries := make([]admindomain.Monastery, 0)
	for cursor.Next(ctx) {
		var doc MonasteryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		monasteries = append(monasteries, mapAdminMonastery(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return monasteries, nil
}

// FindByID returns a single entry by its hex ObjectID.
func (r *AdminMonasteryRepository) FindByID(ctx context.Context, id string) (*admindomain.Monastery, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	var doc MonasteryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, err
	}
	monastery := mapAdminMonastery(doc)
	return &monastery, nil
}

// Create inserts a new entry after a duplicate-name check.
func (r *AdminMonasteryRepository) Create(ctx context.Context, monastery *admindomain.Monastery) error {
	filter := bson.M{"name": strings.TrimSpace(monastery.Name)}
	if err := r.collection.FindOne(ctx, filter).Err(); err == nil {
		return ErrDuplicateEntry
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	now := time.Now().UTC()
	result, err := r.collection.InsertOne(ctx, bson.M{
		"name":        monastery.Name,
		"location":    monastery.Location,
		"description": monastery.Description,
		"photoURL":    monastery.PhotoURL,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		monastery.ID = id.Hex()
	}
	monastery.CreatedAt = now
	monastery.UpdatedAt = now
	return nil
}

// Update replaces the editable fields of an existing entry.
func (r *AdminMonasteryRepository) Update(ctx context.Context, monastery *admindomain.Monastery) error {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(monastery.ID))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	update := bson.M{
		"name":        monastery.Name,
		"location":    monastery.Location,
		"description": monastery.Description,
		"photoURL":    monastery.PhotoURL,
		"updatedAt":   now,
	}
	result, err := r.collection.UpdateByID(ctx, objectID, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	monastery.UpdatedAt = now
	return nil
}

// Delete removes an entry.
func (r *AdminMonasteryRepository) Delete(ctx context.Context, id string) error {
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

func mapAdminMonastery(doc MonasteryDocument) admindomain.Monastery {
	monastery := admindomain.Monastery{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Location:    doc.Location,
		Description: doc.Description,
		PhotoURL:    doc.PhotoURL,
	}
	if doc.CreatedAt != nil {
		monastery.CreatedAt = *doc.CreatedAt
	}
	if doc.UpdatedAt != nil {
		monastery.UpdatedAt = *doc.UpdatedAt
	}
	return monastery
}
