package service

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestFeedbackManagerVote(t *testing.T) {
	ctx := context.Background()
	manager, notifier, clock := newTestFeedbackManager()

	created, err := manager.Create(ctx, &model.Feedback{Title: "Dark mode", Description: "theme"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	type step struct {
		VoteType model.VoteType
		Expected int
	}

	steps := []step{
		{VoteType: model.VoteUp, Expected: 1},
		{VoteType: "", Expected: 2},
		{VoteType: model.VoteDown, Expected: 1},
		{VoteType: model.VoteDown, Expected: 0},
		{VoteType: model.VoteDown, Expected: 0},
		{VoteType: "sideways", Expected: 0},
	}

	votedBefore := testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityFeedback, ActionVoted))
	updatedBefore := testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityFeedback, ActionUpdated))

	for i, s := range steps {
		clock.Advance(time.Hour)

		voted, err := manager.Vote(ctx, created.ID, s.VoteType)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		if e, g := s.Expected, voted.Votes; e != g {
			t.Errorf("steps[%d] voted.Votes: expected %d, got %d", i, e, g)
		}

		if e, g := clock.Now(), voted.UpdatedAt; !e.Equal(g) {
			t.Errorf("steps[%d] voted.UpdatedAt: expected %v, got %v", i, e, g)
		}

		last := notifier.Last()

		if e, g := "feedback:voted", last.Event; e != g {
			t.Errorf("steps[%d] last.Event: expected %s, got %s", i, e, g)
		}

		if e, g := (VotedEvent{ID: created.ID, Votes: s.Expected}), last.Payload; e != g {
			t.Errorf("steps[%d] last.Payload: expected %v, got %v", i, e, g)
		}
	}

	if e, g := float64(len(steps)), testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityFeedback, ActionVoted))-votedBefore; e != g {
		t.Errorf("voted mutations: expected %v, got %v", e, g)
	}

	if e, g := float64(0), testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityFeedback, ActionUpdated))-updatedBefore; e != g {
		t.Errorf("updated mutations: expected %v, got %v", e, g)
	}

	if _, err := manager.Vote(ctx, 42, model.VoteUp); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("Vote(42): expected %v, got %v", port.ErrNotFound, err)
	}
}

func TestFeedbackManagerStats(t *testing.T) {
	ctx := context.Background()
	manager, _, _ := newTestFeedbackManager()

	stats, err := manager.Stats(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, stats.AverageVotesPerFeedback; e != g {
		t.Errorf("stats.AverageVotesPerFeedback: expected %d, got %d", e, g)
	}

	fixtures := []*model.Feedback{
		{Title: "a", Description: "a", Votes: 1, Status: "new", Category: "UI/UX", Priority: "high"},
		{Title: "b", Description: "b", Votes: 2, Status: "new", Category: "Data"},
	}

	for _, f := range fixtures {
		if _, err := manager.Create(ctx, f); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	stats, err = manager.Stats(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Logf("stats: %s", spew.Sdump(stats))

	if e, g := 2, stats.TotalFeedback; e != g {
		t.Errorf("stats.TotalFeedback: expected %d, got %d", e, g)
	}

	if e, g := 3, stats.TotalVotes; e != g {
		t.Errorf("stats.TotalVotes: expected %d, got %d", e, g)
	}

	// round(1.5)
	if e, g := 2, stats.AverageVotesPerFeedback; e != g {
		t.Errorf("stats.AverageVotesPerFeedback: expected %d, got %d", e, g)
	}

	if e, g := 2, stats.StatusCounts["new"]; e != g {
		t.Errorf("stats.StatusCounts[new]: expected %d, got %d", e, g)
	}

	if e, g := 1, stats.PriorityCounts[model.DefaultPriority]; e != g {
		t.Errorf("stats.PriorityCounts[medium]: expected %d, got %d", e, g)
	}

	if e, g := 1, stats.CategoryCounts["Data"]; e != g {
		t.Errorf("stats.CategoryCounts[Data]: expected %d, got %d", e, g)
	}
}
