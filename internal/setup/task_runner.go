package setup

import (
	"context"
	"log/slog"
	"time"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var TaskRunner = NewRegistry[port.TaskRunner]()

var getTaskRunner = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.TaskRunner, error) {
	taskRunner, err := TaskRunner.From(conf.TaskRunner.URI)
	if err != nil {
		return nil, errors.Wrapf(err, "could not retrieve task runner for uri '%s'", conf.TaskRunner.URI)
	}

	go func() {
		taskRunnerCtx := context.Background()
		backoff := time.Second
		for {
			start := time.Now()
			if err := taskRunner.Run(taskRunnerCtx); err != nil {
				slog.ErrorContext(taskRunnerCtx, "error while running task runner", slogx.Error(errors.WithStack(err)))
			}
			time.Sleep(backoff)
			if time.Since(start) > backoff/2 {
				backoff = time.Second
			} else {
				backoff *= 2
			}
		}
	}()

	// Collect tasks metrics
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()
		for {
			collectTaskMetrics(ctx, taskRunner)
			<-ticker.C
		}
	}()

	return taskRunner, nil
})

func collectTaskMetrics(ctx context.Context, taskRunner port.TaskRunner) {
	tasks, err := taskRunner.ListTasks(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not list tasks", slogx.Error(errors.WithStack(err)))
		return
	}

	stats := map[port.TaskStatus]float64{}
	for _, s := range port.TaskStatuses {
		stats[s] = 0
	}

	for _, t := range tasks {
		stats[t.Status] += 1
	}

	for status, total := range stats {
		metrics.Tasks.With(prometheus.Labels{
			metrics.LabelStatus: string(status),
		}).Set(total)
	}
}
