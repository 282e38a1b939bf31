package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/application"
)

// fakeChangeSource replays a fixed number of change events. Next blocks
// on the events channel so tests control event timing.
type fakeChangeSource struct {
	events chan struct{}
	err    error
	closed bool
}

func newFakeChangeSource() *fakeChangeSource {
	return &fakeChangeSource{events: make(chan struct{}, 8)}
}

func (f *fakeChangeSource) Next(ctx context.Context) bool {
	select {
	case _, ok := <-f.events:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (f *fakeChangeSource) Err() error { return f.err }

func (f *fakeChangeSource) Close(_ context.Context) error {
	f.closed = true
	return nil
}

func staticSnapshot(records []application.Record) snapshotFunc {
	return func(_ context.Context) ([]application.Record, error) {
		return records, nil
	}
}

func TestRunSnapshotLoopDeliversInitialSnapshot(t *testing.T) {
	source := newFakeChangeSource()
	close(source.events)

	ctx := context.Background()
	var deliveries [][]application.Record
	records := []application.Record{{"id": "1", "name": "Rumtek Monastery"}}

	runSnapshotLoop(ctx, source, staticSnapshot(records), func(r []application.Record) {
		deliveries = append(deliveries, r)
	}, nil)

	require.Len(t, deliveries, 1)
	require.Equal(t, records, deliveries[0])
	require.True(t, source.closed)
}

func TestRunSnapshotLoopDeliversOnEachChange(t *testing.T) {
	source := newFakeChangeSource()
	source.events <- struct{}{}
	source.events <- struct{}{}
	close(source.events)

	var deliveries int
	runSnapshotLoop(context.Background(), source, staticSnapshot(nil), func([]application.Record) {
		deliveries++
	}, nil)

	// initial snapshot plus one per change event
	require.Equal(t, 3, deliveries)
}

func TestRunSnapshotLoopSkipsFailedSnapshots(t *testing.T) {
	source := newFakeChangeSource()
	source.events <- struct{}{}
	close(source.events)

	snapErr := errors.New("find failed")
	calls := 0
	snapshot := func(_ context.Context) ([]application.Record, error) {
		calls++
		if calls == 1 {
			return nil, snapErr
		}
		return []application.Record{{"id": "1"}}, nil
	}

	var deliveries int
	runSnapshotLoop(context.Background(), source, snapshot, func([]application.Record) {
		deliveries++
	}, nil)

	require.Equal(t, 2, calls)
	require.Equal(t, 1, deliveries)
}

func TestRunSnapshotLoopStopsAfterCancel(t *testing.T) {
	source := newFakeChangeSource()
	ctx, cancel := context.WithCancel(context.Background())

	delivered := make(chan struct{}, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		runSnapshotLoop(ctx, source, staticSnapshot(nil), func([]application.Record) {
			delivered <- struct{}{}
		}, nil)
	}()

	// wait for the initial delivery, then cancel
	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("initial snapshot never delivered")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	require.True(t, source.closed)
	select {
	case <-delivered:
		t.Fatal("delivery after cancellation")
	default:
	}
}

func TestRecordFromDocument(t *testing.T) {
	objectID := primitive.NewObjectID()
	doc := bson.D{
		{Key: "_id", Value: objectID},
		{Key: "name", Value: "Rumtek Monastery"},
		{Key: "tags", Value: bson.A{"gangtok", "kagyu"}},
	}

	record := recordFromDocument(doc)
	require.Equal(t, objectID.Hex(), record["id"])
	require.Equal(t, "Rumtek Monastery", record["name"])
	require.Equal(t, []any{"gangtok", "kagyu"}, record["tags"])
}
