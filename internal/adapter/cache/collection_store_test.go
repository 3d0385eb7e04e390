package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/port/testsuite"
	"github.com/pkg/errors"
)

func TestCollectionStore(t *testing.T) {
	testsuite.TestCollectionStore(t, func(t *testing.T) (testsuite.FeedbackStore, error) {
		return NewCollectionStore[*model.Feedback](collection.NewStore[*model.Feedback](), 10, time.Minute), nil
	})
}

type countingStore struct {
	port.CollectionStore[*model.Feedback]
	gets int
}

func (s *countingStore) GetRecord(ctx context.Context, id model.ID) (*model.Feedback, error) {
	s.gets++
	return s.CollectionStore.GetRecord(ctx, id)
}

func TestCollectionStoreHit(t *testing.T) {
	ctx := context.Background()

	backend := &countingStore{CollectionStore: collection.NewStore[*model.Feedback]()}
	store := NewCollectionStore[*model.Feedback](backend, 10, time.Minute)

	created, err := store.CreateRecord(ctx, &model.Feedback{Title: "Dark mode", Description: "Theme"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	for range 3 {
		record, err := store.GetRecord(ctx, created.ID)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		// Mutating a returned record must not alter the cached one
		record.Title = "mutated"
	}

	if e, g := 0, backend.gets; e != g {
		t.Errorf("backend.gets: expected %d, got %d", e, g)
	}

	record, err := store.GetRecord(ctx, created.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Dark mode", record.Title; e != g {
		t.Errorf("record.Title: expected %s, got %s", e, g)
	}

	if _, err := store.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.GetRecord(ctx, created.ID); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("expected port.ErrNotFound, got %+v", err)
	}

	if e, g := 1, backend.gets; e != g {
		t.Errorf("backend.gets: expected %d, got %d", e, g)
	}
}
