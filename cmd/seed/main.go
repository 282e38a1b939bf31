package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/norbulab/sikkim-trails-services/api/internal/infrastructure/mongo"
)

type seedOptions struct {
	mongoURI            string
	database            string
	monasteryCollection string
	guideCollection     string
	dropCollections     bool
}

func main() {
	logger := log.New(os.Stdout, "[sikkim-trails-seed] ", log.LstdFlags)

	_ = godotenv.Load()

	opts := seedOptions{}
	flag.StringVar(&opts.mongoURI, "uri", envOrDefault("MONGO_URI", "mongodb://mongo:27017"), "MongoDB connection URI")
	flag.StringVar(&opts.database, "db", envOrDefault("MONGO_DB", "sikkim-trails"), "database name")
	flag.StringVar(&opts.monasteryCollection, "monasteries", envOrDefault("MONASTERY_COLLECTION", "monasteries"), "monastery collection name")
	flag.StringVar(&opts.guideCollection, "guides", envOrDefault("GUIDE_COLLECTION", "Guides"), "guide collection name")
	flag.BoolVar(&opts.dropCollections, "drop", false, "drop the target collections before inserting")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(opts.mongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Fatalf("MongoDB connection failed: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Printf("MongoDB disconnect error: %v", err)
		}
	}()

	db := client.Database(opts.database)
	monasteries := db.Collection(opts.monasteryCollection)
	guides := db.Collection(opts.guideCollection)

	if opts.dropCollections {
		for _, coll := range []*mongo.Collection{monasteries, guides} {
			if err := coll.Drop(ctx); err != nil {
				logger.Fatalf("dropping %s failed: %v", coll.Name(), err)
			}
		}
		logger.Printf("dropped collections %s and %s", monasteries.Name(), guides.Name())
	}

	now := time.Now().UTC()

	inserted, err := monasteries.InsertMany(ctx, monasteryFixtures(now))
	if err != nil {
		logger.Fatalf("seeding monasteries failed: %v", err)
	}
	logger.Printf("inserted %d monasteries into %s", len(inserted.InsertedIDs), monasteries.Name())

	insertedGuides, err := guides.InsertMany(ctx, guideFixtures(now))
	if err != nil {
		logger.Fatalf("seeding guides failed: %v", err)
	}
	logger.Printf("inserted %d guides into %s", len(insertedGuides.InsertedIDs), guides.Name())
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func monasteryFixtures(now time.Time) []any {
	entries := []mongodoc.MonasteryDocument{
		{
			Name:        "Rumtek Monastery",
			Location:    "Gangtok",
			Description: "Spiritual heart of Sikkim, known for Tibetan architecture.",
			PhotoURL:    "rumtek1.jpg",
		},
		{
			Name:        "Pemayangtse Monastery",
			Location:    "Pelling",
			Description: "One of the oldest monasteries, near Pelling.",
			PhotoURL:    "pemayangtse.jpg",
		},
		{
			Name:        "Phodong Monastery",
			Location:    "North Sikkim",
			Description: "This beautiful monastery is one of the six most important monasteries in Sikkim, known for its ancient murals and a vibrant annual festival.",
			PhotoURL:    "phodong.jpg",
		},
		{
			Name:        "Rinchenpong Monastery",
			Location:    "West Sikkim",
			Description: "Known for its unique statue of the 'Ati Buddha' in the Yab-Yum position, this monastery is nestled in a tranquil setting offering peace and spectacular views.",
			PhotoURL:    "rinchenpong.jpg",
		},
		{
			Name:        "Dubdi Monastery",
			Location:    "Yuksom",
			Description: "Considered the oldest monastery in Sikkim, Dubdi means 'the retreat' and is a serene, historic site accessible via a scenic trek.",
			PhotoURL:    "dubdi monastery.jpg",
		},
		{
			Name:        "Enchy Monastery",
			Location:    "Gangtok",
			Description: "Perched on a ridge above Gangtok, this monastery offers stunning views and is home to a large collection of masks used in its annual ritual dances.",
			PhotoURL:    "enchy monastery.jpg",
		},
		{
			Name:        "Lingdum Monastery (Ranka Monastery)",
			Location:    "Ranka",
			Description: "A relatively new and visually stunning monastery, popular for its vibrant Tibetan architecture, beautiful surroundings, and calm atmosphere.",
			PhotoURL:    "Lingdum Monastery (Ranka Monastery).jpg",
		},
	}

	docs := make([]any, 0, len(entries))
	for _, entry := range entries {
		entry.ID = primitive.NewObjectID()
		created := now
		entry.CreatedAt = &created
		entry.UpdatedAt = &created
		docs = append(docs, entry)
	}
	return docs
}

// guideFixtures mixes legacy-shaped documents (comma-delimited language
// string, numeric string price) with the current shape so the read-side
// normalization stays exercised against real data.
func guideFixtures(now time.Time) []any {
	return []any{
		mongodoc.GuideDocument{
			ID:        primitive.NewObjectID(),
			Name:      "Tashi Dorje",
			Languages: "English, Hindi",
			Price:     "50",
			Rating:    4.8,
			Skills:    []string{"English", "History", "Spirituality"},
			PhotoURL:  "https://randomuser.me/api/portraits/men/32.jpg",
			CreatedAt: &now,
			UpdatedAt: &now,
		},
		mongodoc.GuideDocument{
			ID:        primitive.NewObjectID(),
			Name:      "Lhamo Doma",
			Languages: bson.A{"Hindi", "Nepali"},
			Price:     65,
			Rating:    4.9,
			Skills:    []string{"Hindi", "Culture", "Trekking"},
			PhotoURL:  "https://randomuser.me/api/portraits/women/45.jpg",
			CreatedAt: &now,
			UpdatedAt: &now,
		},
		mongodoc.GuideDocument{
			ID:        primitive.NewObjectID(),
			Name:      "Karma Wangchuk",
			Languages: bson.A{"English", "Tibetan"},
			Price:     80.0,
			Rating:    4.7,
			Skills:    []string{"English", "Buddhism", "Local Cuisine"},
			PhotoURL:  "https://randomuser.me/api/portraits/men/76.jpg",
			CreatedAt: &now,
			UpdatedAt: &now,
		},
	}
}
