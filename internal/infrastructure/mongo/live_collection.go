package mongo

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

// changeSource is the part of *mongo.ChangeStream the snapshot loop
// needs. Narrowing it keeps the loop testable without a live replica set.
type changeSource interface {
	Next(ctx context.Context) bool
	Err() error
	Close(ctx context.Context) error
}

type snapshotFunc func(ctx context.Context) ([]application.Record, error)

const closeStreamTimeout = 2 * time.Second

// LiveCollection implements application.LiveCollection over a MongoDB
// change stream. Each Subscribe call opens exactly one stream; callbacks
// always receive a complete fresh snapshot, never a diff.
type LiveCollection struct {
	collection *mongo.Collection
	logger     *log.Logger
}

// NewLiveCollection creates a watcher for the named collection.
func NewLiveCollection(db *mongo.Database, collectionName string, logger *log.Logger) *LiveCollection {
	return &LiveCollection{collection: db.Collection(collectionName), logger: logger}
}

// Subscribe opens a change stream and pushes a full snapshot to onUpdate:
// once immediately, then once per collection change. The returned release
// function stops the stream and blocks until the delivery goroutine has
// exited, so no callback can fire after it returns. Callers that drop the
// release function leak the stream for the life of the process.
func (l *LiveCollection) Subscribe(ctx context.Context, onUpdate func([]application.Record)) (func(), error) {
	streamCtx, cancel := context.WithCancel(ctx)

	stream, err := l.collection.Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		runSnapshotLoop(streamCtx, stream, l.snapshot, onUpdate, l.logger)
	}()

	release := func() {
		cancel()
		<-done
	}
	return release, nil
}

// runSnapshotLoop delivers the initial snapshot and then one snapshot per
// change event until the stream ends. A failed materialization is logged
// and that delivery skipped; the subscription itself stays up.
func runSnapshotLoop(ctx context.Context, stream changeSource, snapshot snapshotFunc, onUpdate func([]application.Record), logger *log.Logger) {
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), closeStreamTimeout)
		defer closeCancel()
		if err := stream.Close(closeCtx); err != nil && logger != nil {
			logger.Printf("change stream close failed: %v", err)
		}
	}()

	deliver := func() {
		records, err := snapshot(ctx)
		if err != nil {
			if ctx.Err() == nil && logger != nil {
				logger.Printf("collection snapshot failed: %v", err)
			}
			return
		}
		if ctx.Err() != nil {
			return
		}
		onUpdate(records)
	}

	deliver()

	for stream.Next(ctx) {
		deliver()
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil && logger != nil {
		logger.Printf("change stream ended: %v", err)
	}
}

// snapshot materializes the whole collection, each record being the
// store-assigned id merged with the document's fields.
func (l *LiveCollection) snapshot(ctx context.Context) ([]application.Record, error) {
	cursor, err := l.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]application.Record, 0)
	for cursor.Next(ctx) {
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		records = append(records, recordFromDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func recordFromDocument(doc bson.D) application.Record {
	record := make(application.Record, len(doc)+1)
	for _, elem := range doc {
		if elem.Key == "_id" {
			if id, ok := elem.Value.(primitive.ObjectID); ok {
				record["id"] = id.Hex()
			} else {
				record["id"] = elem.Value
			}
			continue
		}
		record[elem.Key] = normalizeBSONValue(elem.Value)
	}
	return record
}
