package service

import (
	"context"
	"testing"

	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

func TestRoadmapManagerItems(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}

	manager := NewRoadmapManager(
		collection.NewStore[*model.Roadmap](),
		collection.NewStore[*model.RoadmapItem](),
		WithNotifier(notifier),
	)

	roadmap, err := manager.Create(ctx, &model.Roadmap{Name: "Q1", Description: "First quarter"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.DefaultRoadmapVersion, roadmap.Version; e != g {
		t.Errorf("roadmap.Version: expected %d, got %d", e, g)
	}

	if e, g := model.DefaultRoadmapAudience, roadmap.AudienceType; e != g {
		t.Errorf("roadmap.AudienceType: expected %s, got %s", e, g)
	}

	other, err := manager.Create(ctx, &model.Roadmap{Name: "Q2", Description: "Second quarter"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	item, err := manager.CreateItem(ctx, roadmap.ID, &model.RoadmapItem{FeatureID: 7, RoadmapID: other.ID})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := roadmap.ID, item.RoadmapID; e != g {
		t.Errorf("item.RoadmapID: expected %d, got %d", e, g)
	}

	if e, g := "roadmap-item:created", notifier.Last().Event; e != g {
		t.Errorf("notifier.Last().Event: expected %s, got %s", e, g)
	}

	if _, err := manager.CreateItem(ctx, roadmap.ID, &model.RoadmapItem{}); err == nil {
		t.Errorf("expected an error for an item without feature")
	}

	if _, err := manager.CreateItem(ctx, 42, &model.RoadmapItem{FeatureID: 1}); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("CreateItem(42): expected %v, got %v", port.ErrNotFound, err)
	}

	withItems, err := manager.GetWithItems(ctx, roadmap.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(withItems.Items); e != g {
		t.Fatalf("len(withItems.Items): expected %d, got %d", e, g)
	}

	empty, err := manager.GetWithItems(ctx, other.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if empty.Items == nil || len(empty.Items) != 0 {
		t.Errorf("empty.Items: expected an empty slice, got %v", empty.Items)
	}

	updated, err := manager.UpdateItem(ctx, roadmap.ID, item.ID, model.RoadmapItemUpdates{Status: ptr("in-progress")})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "in-progress", updated.Status; e != g {
		t.Errorf("updated.Status: expected %s, got %s", e, g)
	}

	if _, err := manager.UpdateItem(ctx, other.ID, item.ID, model.RoadmapItemUpdates{}); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("UpdateItem(other roadmap): expected %v, got %v", port.ErrNotFound, err)
	}

	if _, err := manager.DeleteItem(ctx, roadmap.ID, item.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := manager.DeleteItem(ctx, roadmap.ID, item.ID); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("DeleteItem(): expected %v, got %v", port.ErrNotFound, err)
	}
}
