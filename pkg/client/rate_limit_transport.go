package client

import (
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RateLimitTransport retries requests rejected with a 429 status.
type RateLimitTransport struct {
	Base        http.RoundTripper
	MaxRetries  int
	DefaultWait time.Duration
	// MaxWait caps the delay between two attempts. Zero disables the cap.
	MaxWait time.Duration
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Base
	if transport == nil {
		transport = http.DefaultTransport
	}

	for attempt := 0; ; attempt++ {
		res, err := transport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if res.StatusCode != http.StatusTooManyRequests || attempt >= t.MaxRetries {
			return res, nil
		}

		io.Copy(io.Discard, res.Body)
		res.Body.Close()

		wait := t.getWaitTime(res)

		slog.WarnContext(req.Context(), "rate limited, retrying",
			slog.Duration("wait_time", wait),
			slog.Int("attempt", attempt+1),
			slog.Int("max_retries", t.MaxRetries),
		)

		timer := time.NewTimer(wait)
		select {
		case <-req.Context().Done():
			timer.Stop()
			return nil, req.Context().Err()
		case <-timer.C:
		}

		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, errors.Wrap(err, "could not rewind request body")
			}
			req.Body = body
		} else if req.Body != nil && req.Body != http.NoBody {
			return nil, errors.New("cannot retry request with one-time reader body")
		}
	}
}

func (t *RateLimitTransport) getWaitTime(res *http.Response) time.Duration {
	wait := t.DefaultWait

	if retryAfter := res.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			wait = time.Duration(seconds) * time.Second
			wait += time.Duration(rand.Int63n(int64(wait/4) + 1))
		} else if date, err := http.ParseTime(retryAfter); err == nil {
			wait = time.Until(date)
		}
	}

	if wait < 0 {
		wait = 0
	}

	if t.MaxWait > 0 && wait > t.MaxWait {
		wait = t.MaxWait
	}

	return wait
}
