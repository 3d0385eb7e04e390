package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/adapter/memory/syncx"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

type taskEntry struct {
	Task  model.Task
	State port.TaskState
}

type TaskRunnerOptions struct {
	Parallelism     int
	CleanupDelay    time.Duration
	CleanupInterval time.Duration
}

type TaskRunner struct {
	runningMutex *sync.Mutex
	runningCond  *sync.Cond
	running      bool
	// runCtx is the context given to Run, parent of every task context
	runCtx context.Context

	tasks      syncx.Map[model.TaskID, taskEntry]
	stateMutex sync.Mutex

	handlers  syncx.Map[model.TaskType, port.TaskHandler]
	semaphore chan struct{}

	cancelFuncs syncx.Map[model.TaskID, context.CancelFunc]

	cleanupDelay    time.Duration
	cleanupInterval time.Duration
}

// CancelTask implements port.TaskRunner.
func (r *TaskRunner) CancelTask(ctx context.Context, id model.TaskID) error {
	entry, exists := r.tasks.Load(id)
	if !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	if entry.State.Finished() {
		return errors.WithStack(port.ErrCanceled)
	}

	cancel, exists := r.cancelFuncs.Load(id)
	if !exists {
		return errors.WithStack(port.ErrCanceled)
	}

	cancel()

	r.finish(entry.Task, errors.WithStack(port.ErrCanceled))

	r.cancelFuncs.Delete(id)

	return nil
}

// GetTask implements port.TaskRunner.
func (r *TaskRunner) GetTask(ctx context.Context, id model.TaskID) (model.Task, error) {
	entry, exists := r.tasks.Load(id)
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return entry.Task, nil
}

// Run implements port.TaskRunner.
func (r *TaskRunner) Run(ctx context.Context) error {
	r.runningMutex.Lock()
	r.running = true
	r.runCtx = ctx
	r.runningCond.Broadcast()
	r.runningMutex.Unlock()

	defer func() {
		r.runningMutex.Lock()
		r.running = false
		r.runningMutex.Unlock()
	}()

	ticker := time.NewTicker(r.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
				return errors.WithStack(err)
			}

			return nil

		case <-ticker.C:
			r.cleanup(ctx)
		}
	}
}

func (r *TaskRunner) cleanup(ctx context.Context) {
	slog.DebugContext(ctx, "running task cleaner")

	var expired []model.TaskID

	now := time.Now()

	r.tasks.Range(func(id model.TaskID, entry taskEntry) bool {
		if entry.State.FinishedAt.IsZero() || !now.After(entry.State.FinishedAt.Add(r.cleanupDelay)) {
			return true
		}

		expired = append(expired, id)

		return true
	})

	for _, id := range expired {
		slog.DebugContext(ctx, "deleting expired task", slog.String("taskID", string(id)))
		r.tasks.Delete(id)
		r.cancelFuncs.Delete(id)
	}
}

// ListTasks implements port.TaskRunner.
func (r *TaskRunner) ListTasks(ctx context.Context) ([]port.TaskStateHeader, error) {
	headers := make([]port.TaskStateHeader, 0)
	r.tasks.Range(func(id model.TaskID, entry taskEntry) bool {
		headers = append(headers, entry.State.TaskStateHeader)
		return true
	})
	return headers, nil
}

// RegisterTask implements port.TaskRunner.
func (r *TaskRunner) RegisterTask(taskType model.TaskType, handler port.TaskHandler) {
	r.handlers.Store(taskType, handler)
}

// ScheduleTask implements port.TaskRunner.
func (r *TaskRunner) ScheduleTask(ctx context.Context, task model.Task) error {
	taskID := task.ID()

	ctx = slogx.WithAttrs(ctx,
		slog.String("taskID", string(taskID)),
		slog.String("taskType", string(task.Type())),
	)

	r.updateState(task, func(s *port.TaskState) {
		s.ScheduledAt = time.Now()
		s.Status = port.TaskStatusPending
	})

	go r.execute(ctx, task)

	return nil
}

func (r *TaskRunner) execute(ctx context.Context, task model.Task) {
	taskID := task.ID()

	defer func() {
		r.cancelFuncs.Delete(taskID)

		if recovered := recover(); recovered != nil {
			err, ok := recovered.(error)
			if !ok {
				err = errors.Errorf("%+v", recovered)
			}

			slog.ErrorContext(ctx, "recovered panic while running task", slogx.Error(errors.WithStack(err)))

			r.finish(task, errors.WithStack(err))
		}
	}()

	r.runningMutex.Lock()
	for !r.running {
		r.runningCond.Wait()
	}
	runCtx := r.runCtx
	r.runningMutex.Unlock()

	taskCtx, cancel := context.WithCancel(slogx.WithAttrs(runCtx,
		slog.String("taskID", string(taskID)),
		slog.String("taskType", string(task.Type())),
	))
	defer cancel()

	r.cancelFuncs.Store(taskID, cancel)

	select {
	case r.semaphore <- struct{}{}:
	case <-taskCtx.Done():
		r.finish(task, errors.WithStack(port.ErrCanceled))
		return
	}
	defer func() {
		<-r.semaphore
	}()

	if entry, exists := r.tasks.Load(taskID); exists && entry.State.Finished() {
		// Canceled while waiting for a slot
		return
	}

	handler, exists := r.handlers.Load(task.Type())
	if !exists {
		r.finish(task, errors.Errorf("no handler registered for task type '%s'", task.Type()))
		return
	}

	r.updateState(task, func(s *port.TaskState) {
		s.Status = port.TaskStatusRunning
	})

	events := make(chan port.TaskEvent)

	var eventsWg sync.WaitGroup
	eventsWg.Add(1)
	go func() {
		defer eventsWg.Done()
		for e := range events {
			r.updateState(task, func(s *port.TaskState) {
				if e.Progress != nil {
					s.Progress = max(min(*e.Progress, 1), 0)
				}
				if e.Message != nil {
					s.Message = *e.Message
				}
			})
		}
	}()

	start := time.Now()

	slog.DebugContext(taskCtx, "executing task")

	err := handler.Handle(taskCtx, task, events)

	// Drain pending events before writing the final state
	close(events)
	eventsWg.Wait()

	switch {
	case errors.Is(err, port.ErrCanceled) || errors.Is(err, context.Canceled):
		slog.DebugContext(ctx, "task was canceled")
		r.finish(task, errors.WithStack(port.ErrCanceled))

	case err != nil:
		slog.ErrorContext(ctx, "task failed", slogx.Error(errors.WithStack(err)))
		r.finish(task, errors.WithStack(err))

	default:
		slog.DebugContext(ctx, "task finished", slog.Duration("duration", time.Since(start)))
		r.finish(task, nil)
	}
}

// finish records the terminal state of a task. Only the first call has an
// effect.
func (r *TaskRunner) finish(task model.Task, err error) {
	r.updateState(task, func(s *port.TaskState) {
		if s.Finished() {
			return
		}

		s.FinishedAt = time.Now()

		if err != nil {
			s.Error = err
			s.Status = port.TaskStatusFailed
		} else {
			s.Status = port.TaskStatusSucceeded
			s.Progress = 1
		}

		metrics.TaskExecutions.With(prometheus.Labels{
			metrics.LabelTaskType: string(task.Type()),
			metrics.LabelStatus:   string(s.Status),
		}).Inc()
	})
}

func (r *TaskRunner) updateState(task model.Task, fn func(s *port.TaskState)) {
	r.stateMutex.Lock()
	defer r.stateMutex.Unlock()

	entry, _ := r.tasks.LoadOrStore(task.ID(), taskEntry{
		Task: task,
		State: port.TaskState{
			TaskStateHeader: port.TaskStateHeader{
				ID:   task.ID(),
				Type: task.Type(),
			},
		},
	})

	fn(&entry.State)

	r.tasks.Store(task.ID(), entry)
}

// GetTaskState implements port.TaskRunner.
func (r *TaskRunner) GetTaskState(ctx context.Context, id model.TaskID) (*port.TaskState, error) {
	entry, exists := r.tasks.Load(id)
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return &entry.State, nil
}

func NewTaskRunner(opts TaskRunnerOptions) *TaskRunner {
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 10 * time.Minute
	}

	runningMutex := &sync.Mutex{}
	return &TaskRunner{
		runningMutex:    runningMutex,
		runningCond:     sync.NewCond(runningMutex),
		running:         false,
		semaphore:       make(chan struct{}, max(opts.Parallelism, 1)),
		cleanupDelay:    opts.CleanupDelay,
		cleanupInterval: opts.CleanupInterval,
	}
}

var _ port.TaskRunner = &TaskRunner{}
