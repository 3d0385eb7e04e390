package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestServerHandler(t *testing.T) {
	echoPath := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, r.URL.Path)
	})

	var calls []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	server := NewServer(
		WithBaseURL("/hub/"),
		WithMount("/api/", echoPath),
		WithMount("/ws", echoPath),
		WithMiddleware(tag("outer"), tag("inner")),
	)

	handler := server.Handler()

	type testCase struct {
		Path           string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []testCase{
		{Path: "/hub/api/feedback/1", ExpectedStatus: http.StatusOK, ExpectedBody: "/feedback/1"},
		{Path: "/hub/ws", ExpectedStatus: http.StatusOK, ExpectedBody: "/hub/ws"},
		{Path: "/hub/unknown", ExpectedStatus: http.StatusNotFound},
	}

	for _, tc := range testCases {
		calls = nil

		req := httptest.NewRequest(http.MethodGet, tc.Path, nil)
		res := httptest.NewRecorder()

		handler.ServeHTTP(res, req)

		if e, g := tc.ExpectedStatus, res.Code; e != g {
			t.Errorf("%s: expected status %d, got %d", tc.Path, e, g)
			continue
		}

		if len(calls) != 2 || calls[0] != "outer" || calls[1] != "inner" {
			t.Errorf("%s: unexpected middleware calls %v", tc.Path, calls)
		}

		if tc.ExpectedStatus == http.StatusNotFound {
			var body ErrorResponse
			if err := json.Unmarshal(res.Body.Bytes(), &body); err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := "Route not found", body.Error; e != g {
				t.Errorf("%s: expected error %q, got %q", tc.Path, e, g)
			}

			continue
		}

		if e, g := tc.ExpectedBody, res.Body.String(); e != g {
			t.Errorf("%s: expected body %q, got %q", tc.Path, e, g)
		}
	}
}

func TestServerRunCallsShutdownHooks(t *testing.T) {
	closed := make(chan struct{})

	server := NewServer(
		WithAddress("127.0.0.1:0"),
		WithShutdownTimeout(time.Second),
		WithShutdownHook(func() {
			close(closed)
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())

	errs := make(chan error, 1)
	go func() {
		errs <- server.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errs:
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop before deadline")
	}

	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Error("shutdown hook was not called")
	}
}
