package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MonasteryDocument is the MongoDB schema of a directory entry.
type MonasteryDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Location    string             `bson:"location,omitempty"`
	Description string             `bson:"description,omitempty"`
	PhotoURL    string             `bson:"photoURL,omitempty"`
	CreatedAt   *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt   *time.Time         `bson:"updatedAt,omitempty"`
}

// GuideDocument is the MongoDB schema of a guide. Languages and price are
// deliberately untyped: legacy documents hold them as a comma-delimited
// string and a numeric string, newer ones as an array and a number. The
// domain layer normalizes on read.
type GuideDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Name      string             `bson:"name"`
	Languages any                `bson:"languages,omitempty"`
	Price     any                `bson:"price,omitempty"`
	Rating    float64            `bson:"rating,omitempty"`
	Skills    []string           `bson:"skills,omitempty"`
	PhotoURL  string             `bson:"photoURL,omitempty"`
	CreatedAt *time.Time         `bson:"createdAt,omitempty"`
	UpdatedAt *time.Time         `bson:"updatedAt,omitempty"`
}

// UserProfileDocument is the profile written once at signup. Its _id is
// the identity-provider-issued id, not an ObjectID.
type UserProfileDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Phone     string    `bson:"phone"`
	Email     string    `bson:"email,omitempty"`
	Anonymous bool      `bson:"anonymous"`
	CreatedAt time.Time `bson:"createdAt"`
}
