package service

import (
	"context"
	"testing"

	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

func newTestFeatureManager(t *testing.T) (*FeatureManager, *recordingNotifier) {
	notifier := &recordingNotifier{}
	manager := NewFeatureManager(collection.NewStore[*model.Feature](), WithNotifier(notifier))

	fixtures := []*model.Feature{
		{Title: "SSO", Description: "sso", ReachScore: 70, ImpactScore: 75, ConfidenceScore: 85, EffortScore: 45},
		{Title: "Analytics", Description: "analytics", ReachScore: 85, ImpactScore: 90, ConfidenceScore: 80, EffortScore: 60},
		{Title: "Mobile", Description: "mobile", ReachScore: 95, ImpactScore: 30, ConfidenceScore: 70, EffortScore: 80},
	}

	for _, f := range fixtures {
		if _, err := manager.Create(context.Background(), f); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	return manager, notifier
}

func TestPrioritize(t *testing.T) {
	ctx := context.Background()
	manager, _ := newTestFeatureManager(t)

	prioritized, err := manager.Prioritize(ctx, "")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(prioritized); e != g {
		t.Fatalf("len(prioritized): expected %d, got %d", e, g)
	}

	expected := []struct {
		Title    string
		RICE     int
		Quadrant model.Quadrant
	}{
		{"Analytics", 102, model.QuadrantMajorProjects},
		{"SSO", 99, model.QuadrantQuickWins},
		{"Mobile", 25, model.QuadrantTimeWasters},
	}

	for i, e := range expected {
		g := prioritized[i]
		if e.Title != g.Title || e.RICE != g.RICE || e.Quadrant != g.Quadrant {
			t.Errorf("prioritized[%d]: expected %v, got %+v", i, e, *g)
		}
	}

	quickWins, err := manager.Prioritize(ctx, model.QuadrantQuickWins)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(quickWins); e != g {
		t.Errorf("len(quickWins): expected %d, got %d", e, g)
	}

	if _, err := manager.Prioritize(ctx, "nowhere"); err == nil {
		t.Errorf("expected an error for an unknown quadrant")
	}
}

func TestMoveFeature(t *testing.T) {
	ctx := context.Background()
	manager, notifier := newTestFeatureManager(t)

	moved, err := manager.MoveToQuadrant(ctx, 3, model.QuadrantQuickWins)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.QuadrantQuickWins, moved.Quadrant(); e != g {
		t.Errorf("moved.Quadrant(): expected %s, got %s", e, g)
	}

	if e, g := 80, moved.ImpactScore; e != g {
		t.Errorf("moved.ImpactScore: expected %d, got %d", e, g)
	}

	if e, g := "feature:updated", notifier.Last().Event; e != g {
		t.Errorf("notifier.Last().Event: expected %s, got %s", e, g)
	}

	positioned, err := manager.MoveToPosition(ctx, 3, 150, -10)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := MaxScore, positioned.ImpactScore; e != g {
		t.Errorf("positioned.ImpactScore: expected %d, got %d", e, g)
	}

	if e, g := MinScore, positioned.EffortScore; e != g {
		t.Errorf("positioned.EffortScore: expected %d, got %d", e, g)
	}

	if _, err := manager.MoveToQuadrant(ctx, 3, "nowhere"); err == nil {
		t.Errorf("expected an error for an unknown quadrant")
	}

	if _, err := manager.MoveToPosition(ctx, 42, 10, 10); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("MoveToPosition(42): expected %v, got %v", port.ErrNotFound, err)
	}
}
