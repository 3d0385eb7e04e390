package testsuite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

type FeedbackStore = port.CollectionStore[*model.Feedback]

func TestCollectionStore(t *testing.T, factory func(t *testing.T) (FeedbackStore, error)) {
	type testCase struct {
		Name string
		Run  func(t *testing.T, ctx context.Context, store FeedbackStore) error
	}

	var testCases []testCase = []testCase{
		{
			Name: "CreateAssignsSequentialIDs",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 3)
				if err != nil {
					return errors.WithStack(err)
				}

				for i, r := range records {
					if e, g := model.ID(i+1), r.ID; e != g {
						t.Errorf("records[%d].ID: expected %d, got %d", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "IDsAreNeverReused",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 3)
				if err != nil {
					return errors.WithStack(err)
				}

				if _, err := store.DeleteRecord(ctx, records[2].ID); err != nil {
					return errors.WithStack(err)
				}

				created, err := store.CreateRecord(ctx, newFeedback("after delete"))
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := model.ID(4), created.ID; e != g {
					t.Errorf("created.ID: expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "ListPreservesInsertionOrder",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				if _, err := createFeedbacks(ctx, store, 5); err != nil {
					return errors.WithStack(err)
				}

				records, err := store.ListRecords(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 5, len(records); e != g {
					t.Fatalf("len(records): expected %d, got %d", e, g)
				}

				for i, r := range records {
					if e, g := fmt.Sprintf("feedback #%d", i), r.Title; e != g {
						t.Errorf("records[%d].Title: expected %s, got %s", i, e, g)
					}
				}

				return nil
			},
		},
		{
			Name: "ReturnedRecordsAreCopies",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 1)
				if err != nil {
					return errors.WithStack(err)
				}

				records[0].Title = "mutated"
				records[0].Tags[0] = "mutated"

				stored, err := store.GetRecord(ctx, records[0].ID)
				if err != nil {
					return errors.WithStack(err)
				}

				t.Logf("stored: %s", spew.Sdump(stored))

				if e, g := "feedback #0", stored.Title; e != g {
					t.Errorf("stored.Title: expected %s, got %s", e, g)
				}

				if e, g := "ui", stored.Tags[0]; e != g {
					t.Errorf("stored.Tags[0]: expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "UpdateRecord",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 1)
				if err != nil {
					return errors.WithStack(err)
				}

				updated, err := store.UpdateRecord(ctx, records[0].ID, func(record *model.Feedback) error {
					record.Status = "reviewed"
					record.Votes = 12
					return nil
				})
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := "reviewed", updated.Status; e != g {
					t.Errorf("updated.Status: expected %s, got %s", e, g)
				}

				stored, err := store.GetRecord(ctx, records[0].ID)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 12, stored.Votes; e != g {
					t.Errorf("stored.Votes: expected %d, got %d", e, g)
				}

				if e, g := "feedback #0", stored.Title; e != g {
					t.Errorf("stored.Title: expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "FailedUpdateLeavesRecordUntouched",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 1)
				if err != nil {
					return errors.WithStack(err)
				}

				errRejected := errors.New("rejected")

				_, err = store.UpdateRecord(ctx, records[0].ID, func(record *model.Feedback) error {
					record.Title = "changed"
					return errRejected
				})
				if !errors.Is(err, errRejected) {
					t.Errorf("err: expected %v, got %v", errRejected, err)
				}

				stored, err := store.GetRecord(ctx, records[0].ID)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := "feedback #0", stored.Title; e != g {
					t.Errorf("stored.Title: expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "MissingRecords",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				if _, err := store.GetRecord(ctx, 42); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("GetRecord(42): expected %v, got %v", port.ErrNotFound, err)
				}

				_, err := store.UpdateRecord(ctx, 42, func(record *model.Feedback) error { return nil })
				if !errors.Is(err, port.ErrNotFound) {
					t.Errorf("UpdateRecord(42): expected %v, got %v", port.ErrNotFound, err)
				}

				if _, err := store.DeleteRecord(ctx, 42); !errors.Is(err, port.ErrNotFound) {
					t.Errorf("DeleteRecord(42): expected %v, got %v", port.ErrNotFound, err)
				}

				return nil
			},
		},
		{
			Name: "DeleteRecord",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				records, err := createFeedbacks(ctx, store, 2)
				if err != nil {
					return errors.WithStack(err)
				}

				deleted, err := store.DeleteRecord(ctx, records[0].ID)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := records[0].Title, deleted.Title; e != g {
					t.Errorf("deleted.Title: expected %s, got %s", e, g)
				}

				remaining, err := store.ListRecords(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := 1, len(remaining); e != g {
					t.Fatalf("len(remaining): expected %d, got %d", e, g)
				}

				if e, g := records[1].ID, remaining[0].ID; e != g {
					t.Errorf("remaining[0].ID: expected %d, got %d", e, g)
				}

				return nil
			},
		},
		{
			Name: "ImportRecordsKeepsIDs",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				first := newFeedback("imported #5")
				first.ID = 5
				second := newFeedback("imported #2")
				second.ID = 2

				if err := store.ImportRecords(ctx, first, second); err != nil {
					return errors.WithStack(err)
				}

				created, err := store.CreateRecord(ctx, newFeedback("created"))
				if err != nil {
					return errors.WithStack(err)
				}

				if e, g := model.ID(6), created.ID; e != g {
					t.Errorf("created.ID: expected %d, got %d", e, g)
				}

				records, err := store.ListRecords(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				ids := make([]model.ID, 0, len(records))
				for _, r := range records {
					ids = append(ids, r.ID)
				}

				if e, g := fmt.Sprint([]model.ID{5, 2, 6}), fmt.Sprint(ids); e != g {
					t.Errorf("ids: expected %s, got %s", e, g)
				}

				return nil
			},
		},
		{
			Name: "ConcurrentCreates",
			Run: func(t *testing.T, ctx context.Context, store FeedbackStore) error {
				const total = 20

				var (
					wg   sync.WaitGroup
					errs = make(chan error, total)
				)

				for i := range total {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						if _, err := store.CreateRecord(ctx, newFeedback(fmt.Sprintf("concurrent #%d", i))); err != nil {
							errs <- errors.WithStack(err)
						}
					}(i)
				}

				wg.Wait()
				close(errs)

				if err := <-errs; err != nil {
					return err
				}

				records, err := store.ListRecords(ctx)
				if err != nil {
					return errors.WithStack(err)
				}

				seen := map[model.ID]struct{}{}
				for _, r := range records {
					if _, exists := seen[r.ID]; exists {
						t.Errorf("duplicated id %d", r.ID)
					}
					seen[r.ID] = struct{}{}
				}

				if e, g := total, len(seen); e != g {
					t.Errorf("len(seen): expected %d, got %d", e, g)
				}

				return nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := context.Background()

			store, err := factory(t)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if err := tc.Run(t, ctx, store); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}
		})
	}
}

func newFeedback(title string) *model.Feedback {
	now := time.Now().UTC().Truncate(time.Second)
	f := &model.Feedback{
		Title:       title,
		Description: "description of " + title,
		Tags:        []string{"ui"},
	}
	f.CreatedAt = now
	f.UpdatedAt = now
	f.ApplyDefaults()
	return f
}

func createFeedbacks(ctx context.Context, store FeedbackStore, total int) ([]*model.Feedback, error) {
	records := make([]*model.Feedback, 0, total)
	for i := range total {
		created, err := store.CreateRecord(ctx, newFeedback(fmt.Sprintf("feedback #%d", i)))
		if err != nil {
			return nil, errors.WithStack(err)
		}
		records = append(records, created)
	}
	return records, nil
}
