package memory

import (
	"net/url"
	"strconv"
	"time"

	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/setup"
	"github.com/pkg/errors"
)

func init() {
	setup.TaskRunner.Register("memory", func(u *url.URL) (port.TaskRunner, error) {
		opts := TaskRunnerOptions{
			Parallelism:     10,
			CleanupDelay:    time.Hour,
			CleanupInterval: 10 * time.Minute,
		}

		query := u.Query()

		if rawValue := query.Get("parallelism"); rawValue != "" {
			v, err := strconv.ParseInt(rawValue, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'parallelism' parameter")
			}
			opts.Parallelism = int(v)
		}

		if rawValue := query.Get("cleanupDelay"); rawValue != "" {
			v, err := time.ParseDuration(rawValue)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'cleanupDelay' parameter")
			}
			opts.CleanupDelay = v
		}

		if rawValue := query.Get("cleanupInterval"); rawValue != "" {
			v, err := time.ParseDuration(rawValue)
			if err != nil {
				return nil, errors.Wrapf(err, "could not parse 'cleanupInterval' parameter")
			}
			opts.CleanupInterval = v
		}

		return NewTaskRunner(opts), nil
	})
}
