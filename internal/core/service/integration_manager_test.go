package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// inlineTaskRunner runs scheduled tasks synchronously.
type inlineTaskRunner struct {
	mutex    sync.Mutex
	handlers map[model.TaskType]port.TaskHandler
	states   map[model.TaskID]*port.TaskState
}

func (r *inlineTaskRunner) ScheduleTask(ctx context.Context, task model.Task) error {
	r.mutex.Lock()
	handler := r.handlers[task.Type()]
	r.mutex.Unlock()

	events := make(chan port.TaskEvent)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range events {
		}
	}()

	err := handler.Handle(ctx, task, events)
	close(events)
	<-done

	state := &port.TaskState{TaskStateHeader: port.TaskStateHeader{ID: task.ID(), Type: task.Type(), Status: port.TaskStatusSucceeded}}
	if err != nil {
		state.Status = port.TaskStatusFailed
		state.Error = err
	}

	r.mutex.Lock()
	r.states[task.ID()] = state
	r.mutex.Unlock()

	return nil
}

func (r *inlineTaskRunner) GetTaskState(ctx context.Context, id model.TaskID) (*port.TaskState, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	state, exists := r.states[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return state, nil
}

func (r *inlineTaskRunner) GetTask(ctx context.Context, id model.TaskID) (model.Task, error) {
	return nil, errors.WithStack(port.ErrNotFound)
}

func (r *inlineTaskRunner) ListTasks(ctx context.Context) ([]port.TaskStateHeader, error) {
	return nil, nil
}

func (r *inlineTaskRunner) CancelTask(ctx context.Context, id model.TaskID) error {
	return errors.WithStack(port.ErrCanceled)
}

func (r *inlineTaskRunner) RegisterTask(taskType model.TaskType, handler port.TaskHandler) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.handlers[taskType] = handler
}

func (r *inlineTaskRunner) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

var _ port.TaskRunner = &inlineTaskRunner{}

func TestIntegrationManagerSync(t *testing.T) {
	ctx := context.Background()

	notifier := &recordingNotifier{}
	clock := newFakeClock()

	taskRunner := &inlineTaskRunner{
		handlers: map[model.TaskType]port.TaskHandler{},
		states:   map[model.TaskID]*port.TaskState{},
	}

	manager := NewIntegrationManager(
		collection.NewStore[*model.Integration](),
		taskRunner,
		IntegrationManagerOptions{SyncDelay: time.Millisecond},
		WithNotifier(notifier),
		WithClock(clock.Now),
	)

	taskRunner.RegisterTask(model.TaskTypeIntegrationSync, manager)

	integration, err := manager.Create(ctx, &model.Integration{Name: "Slack", Type: "slack", IsActive: true})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if integration.LastSyncAt != nil {
		t.Errorf("integration.LastSyncAt: expected nil, got %v", integration.LastSyncAt)
	}

	if integration.Config == nil {
		t.Errorf("integration.Config: expected an empty map, got nil")
	}

	clock.Advance(time.Minute)

	syncedBefore := testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityIntegration, ActionSynced))

	taskID, err := manager.Sync(ctx, integration.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	state, err := taskRunner.GetTaskState(ctx, taskID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := port.TaskStatusSucceeded, state.Status; e != g {
		t.Fatalf("state.Status: expected %s, got %s (%+v)", e, g, state.Error)
	}

	synced, err := manager.Get(ctx, integration.ID)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if synced.LastSyncAt == nil || !synced.LastSyncAt.Equal(clock.Now()) {
		t.Errorf("synced.LastSyncAt: expected %v, got %v", clock.Now(), synced.LastSyncAt)
	}

	if e, g := clock.Now(), synced.UpdatedAt; !e.Equal(g) {
		t.Errorf("synced.UpdatedAt: expected %v, got %v", e, g)
	}

	if e, g := "integration:synced", notifier.Last().Event; e != g {
		t.Errorf("notifier.Last().Event: expected %s, got %s", e, g)
	}

	if e, g := float64(1), testutil.ToFloat64(metrics.Mutations.WithLabelValues(EntityIntegration, ActionSynced))-syncedBefore; e != g {
		t.Errorf("synced mutations: expected %v, got %v", e, g)
	}

	if _, err := manager.Sync(ctx, 42); !errors.Is(err, port.ErrNotFound) {
		t.Errorf("Sync(42): expected %v, got %v", port.ErrNotFound, err)
	}
}

func TestIntegrationManagerSyncCanceled(t *testing.T) {
	manager := NewIntegrationManager(
		collection.NewStore[*model.Integration](),
		nil,
		IntegrationManagerOptions{SyncDelay: time.Hour},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan port.TaskEvent, 10)

	err := manager.Handle(ctx, model.NewIntegrationSyncTask(1), events)
	if !errors.Is(err, port.ErrCanceled) {
		t.Errorf("err: expected %v, got %v", port.ErrCanceled, err)
	}
}
