package service

import (
	"context"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func TestCollectionManagerCreate(t *testing.T) {
	ctx := context.Background()
	manager, notifier, clock := newTestFeedbackManager()

	created, err := manager.Create(ctx, &model.Feedback{
		Title:       "Dark mode",
		Description: "Please add a dark theme",
		Votes:       3,
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Logf("created: %s", spew.Sdump(created))

	if e, g := model.ID(1), created.ID; e != g {
		t.Errorf("created.ID: expected %d, got %d", e, g)
	}

	if e, g := model.DefaultFeedbackSource, created.Source; e != g {
		t.Errorf("created.Source: expected %s, got %s", e, g)
	}

	if e, g := model.DefaultFeedbackCustomer, created.Customer; e != g {
		t.Errorf("created.Customer: expected %s, got %s", e, g)
	}

	if e, g := model.DefaultFeedbackStatus, created.Status; e != g {
		t.Errorf("created.Status: expected %s, got %s", e, g)
	}

	if created.Tags == nil {
		t.Errorf("created.Tags: expected an empty slice, got nil")
	}

	if e, g := clock.Now(), created.CreatedAt; !e.Equal(g) {
		t.Errorf("created.CreatedAt: expected %v, got %v", e, g)
	}

	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("created.UpdatedAt: expected %v, got %v", created.CreatedAt, created.UpdatedAt)
	}

	last := notifier.Last()

	if e, g := "feedback:created", last.Event; e != g {
		t.Errorf("last.Event: expected %s, got %s", e, g)
	}

	if payload, ok := last.Payload.(*model.Feedback); !ok || payload.ID != created.ID {
		t.Errorf("last.Payload: expected created record, got %s", spew.Sdump(last.Payload))
	}
}

func TestCollectionManagerCreateValidation(t *testing.T) {
	ctx := context.Background()
	manager, notifier, _ := newTestFeedbackManager()

	_, err := manager.Create(ctx, &model.Feedback{Title: "Missing description"})
	if err == nil {
		t.Fatalf("expected an error")
	}

	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err: expected a validation error, got %+v", err)
	}

	if e, g := "Title and description are required", validationErr.Message; e != g {
		t.Errorf("validationErr.Message: expected %s, got %s", e, g)
	}

	if e, g := 0, len(notifier.Events()); e != g {
		t.Errorf("len(notifier.Events()): expected %d, got %d", e, g)
	}

	records, err := manager.List(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(records); e != g {
		t.Errorf("len(records): expected %d, got %d", e, g)
	}
}

func TestCollectionManagerUpdate(t *testing.T) {
	ctx := context.Background()
	manager, notifier, clock := newTestFeedbackManager()

	created, err := manager.Create(ctx, &model.Feedback{Title: "Export", Description: "CSV export", Category: "Data"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	clock.Advance(time.Hour)

	updated, err := manager.Update(ctx, created.ID, model.FeedbackUpdates{
		Status: ptr("reviewed"),
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "reviewed", updated.Status; e != g {
		t.Errorf("updated.Status: expected %s, got %s", e, g)
	}

	if e, g := "Data", updated.Category; e != g {
		t.Errorf("updated.Category: expected %s, got %s", e, g)
	}

	if e, g := created.ID, updated.ID; e != g {
		t.Errorf("updated.ID: expected %d, got %d", e, g)
	}

	if e, g := created.CreatedAt, updated.CreatedAt; !e.Equal(g) {
		t.Errorf("updated.CreatedAt: expected %v, got %v", e, g)
	}

	if e, g := clock.Now(), updated.UpdatedAt; !e.Equal(g) {
		t.Errorf("updated.UpdatedAt: expected %v, got %v", e, g)
	}

	if e, g := "feedback:updated", notifier.Last().Event; e != g {
		t.Errorf("notifier.Last().Event: expected %s, got %s", e, g)
	}

	if _, err := manager.Update(ctx, created.ID, model.FeedbackUpdates{Title: ptr("")}); err == nil {
		t.Errorf("expected an error when blanking the title")
	}

	stored, err := manager.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "Export", stored.Title; e != g {
		t.Errorf("stored.Title: expected %s, got %s", e, g)
	}

	if _, err := manager.Update(ctx, 42, model.FeedbackUpdates{Status: ptr("closed")}); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("Update(42): expected %v, got %v", port.ErrNotFound, err)
	}
}

func TestCollectionManagerDelete(t *testing.T) {
	ctx := context.Background()
	manager, notifier, _ := newTestFeedbackManager()

	for _, title := range []string{"first", "second", "third"} {
		if _, err := manager.Create(ctx, &model.Feedback{Title: title, Description: title}); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	}

	deleted, err := manager.Delete(ctx, 3)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "third", deleted.Title; e != g {
		t.Errorf("deleted.Title: expected %s, got %s", e, g)
	}

	last := notifier.Last()

	if e, g := "feedback:deleted", last.Event; e != g {
		t.Errorf("last.Event: expected %s, got %s", e, g)
	}

	if e, g := (DeletedEvent{ID: 3}), last.Payload; e != g {
		t.Errorf("last.Payload: expected %v, got %v", e, g)
	}

	if _, err := manager.Get(ctx, 3); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("Get(3): expected %v, got %v", port.ErrNotFound, err)
	}

	created, err := manager.Create(ctx, &model.Feedback{Title: "fourth", Description: "fourth"})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.ID(4), created.ID; e != g {
		t.Errorf("created.ID: expected %d, got %d", e, g)
	}
}

func TestCollectionManagerQuery(t *testing.T) {
	ctx := context.Background()
	manager, _, clock := newTestFeedbackManager()

	fixtures := []*model.Feedback{
		{Title: "Dark mode", Description: "theme", Category: "UI/UX", Customer: "Acme"},
		{Title: "Export", Description: "csv", Category: "Data", Customer: "Globex"},
		{Title: "Slow dashboard", Description: "perf", Category: "Performance", Customer: "Acme"},
	}

	for _, f := range fixtures {
		if _, err := manager.Create(ctx, f); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
		clock.Advance(time.Minute)
	}

	page, err := manager.Query(ctx, query.NewSpec(query.WithSearch("acme")))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, page.TotalCount; e != g {
		t.Fatalf("page.TotalCount: expected %d, got %d", e, g)
	}

	if e, g := "Slow dashboard", page.Data[0].Title; e != g {
		t.Errorf("page.Data[0].Title: expected %s, got %s", e, g)
	}

	if _, err := manager.Query(ctx, query.NewSpec(query.WithSort("unknown", query.OrderAsc))); err == nil {
		t.Errorf("expected an error for an unknown sort field")
	}
}
