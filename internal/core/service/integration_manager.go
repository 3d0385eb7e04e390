package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

const ActionSynced = "synced"

type IntegrationManagerOptions struct {
	SyncDelay time.Duration
}

type IntegrationManager struct {
	*CollectionManager[*model.Integration]

	taskRunner port.TaskRunner
	syncDelay  time.Duration
}

// Sync schedules the synchronization of an integration and returns the
// identifier of the scheduled task.
func (m *IntegrationManager) Sync(ctx context.Context, id model.ID) (model.TaskID, error) {
	if _, err := m.Get(ctx, id); err != nil {
		return "", errors.WithStack(err)
	}

	task := model.NewIntegrationSyncTask(id)

	if err := m.taskRunner.ScheduleTask(ctx, task); err != nil {
		return "", errors.Wrapf(err, "could not schedule sync of integration '%d'", id)
	}

	return task.ID(), nil
}

// Handle implements port.TaskHandler.
func (m *IntegrationManager) Handle(ctx context.Context, task model.Task, events chan port.TaskEvent) error {
	syncTask, ok := task.(*model.IntegrationSyncTask)
	if !ok {
		return errors.Errorf("unexpected task type '%T'", task)
	}

	ctx = slogx.WithAttrs(ctx, slog.Int64("integrationID", int64(syncTask.IntegrationID())))

	events <- port.NewTaskEvent(port.WithTaskMessage("synchronizing"), port.WithTaskProgress(0))

	timer := time.NewTimer(m.syncDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.WithStack(port.ErrCanceled)
	case <-timer.C:
	}

	integration, err := m.Mutate(ctx, syncTask.IntegrationID(), ActionSynced, func(i *model.Integration) (bool, error) {
		now := m.clock()
		i.LastSyncAt = &now
		return true, nil
	})
	if err != nil {
		return errors.Wrap(err, "could not update integration")
	}

	slog.InfoContext(ctx, "integration synchronized")

	events <- port.NewTaskEvent(port.WithTaskMessage("synchronized"), port.WithTaskProgress(1))

	m.Publish(ctx, ActionSynced, integration)

	return nil
}

func NewIntegrationManager(store port.CollectionStore[*model.Integration], taskRunner port.TaskRunner, opts IntegrationManagerOptions, funcs ...CollectionManagerOptionFunc) *IntegrationManager {
	return &IntegrationManager{
		CollectionManager: NewCollectionManager(EntityIntegration, store, IntegrationSchema, funcs...),
		taskRunner:        taskRunner,
		syncDelay:         opts.SyncDelay,
	}
}

var _ port.TaskHandler = &IntegrationManager{}
