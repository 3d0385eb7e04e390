package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/bornholm/producthub/internal/http/handler/api"
	"github.com/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	baseURL, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return New(
		WithBaseURL(baseURL),
		WithHTTPClient(&http.Client{
			Timeout: 5 * time.Second,
			Transport: &RateLimitTransport{
				MaxRetries:  2,
				DefaultWait: 10 * time.Millisecond,
				MaxWait:     10 * time.Millisecond,
			},
		}),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestListFeedback(t *testing.T) {
	var received url.Values

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feedback", func(w http.ResponseWriter, r *http.Request) {
		received = r.URL.Query()
		writeJSON(w, http.StatusOK, query.Page[*model.Feedback]{
			Data:       []*model.Feedback{{Base: model.Base{ID: 1}, Title: "Dark mode"}},
			TotalCount: 1,
			Page:       1,
			TotalPages: 1,
		})
	})

	client := newTestClient(t, mux)

	page, err := client.ListFeedback(context.Background(),
		WithListFilter("status", "new"),
		WithListFilter("category", ""),
		WithListSearch("dark"),
		WithListSort("votes", query.OrderAsc),
		WithListPage(2, 5),
	)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(page.Data); e != g {
		t.Fatalf("len(page.Data): expected %d, got %d", e, g)
	}

	if e, g := "Dark mode", page.Data[0].Title; e != g {
		t.Errorf("page.Data[0].Title: expected %s, got %s", e, g)
	}

	expected := map[string]string{
		"status":    "new",
		"search":    "dark",
		"sortBy":    "votes",
		"sortOrder": "asc",
		"page":      "2",
		"limit":     "5",
	}

	for name, e := range expected {
		if g := received.Get(name); e != g {
			t.Errorf("query %s: expected %s, got %s", name, e, g)
		}
	}

	if received.Has("category") {
		t.Errorf("query category: expected empty filter to be omitted")
	}
}

func TestVoteFeedback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/feedback/{id}/vote", func(w http.ResponseWriter, r *http.Request) {
		var req api.VoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
			return
		}

		if req.VoteType != model.VoteDown {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unexpected vote"})
			return
		}

		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)

		writeJSON(w, http.StatusOK, api.VoteResponse{
			Feedback: &model.Feedback{Base: model.Base{ID: model.ID(id)}, Votes: 41},
			Message:  "Vote down recorded",
		})
	})

	client := newTestClient(t, mux)

	res, err := client.VoteFeedback(context.Background(), 3, model.VoteDown)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.ID(3), res.ID; e != g {
		t.Errorf("res.ID: expected %d, got %d", e, g)
	}

	if e, g := 41, res.Votes; e != g {
		t.Errorf("res.Votes: expected %d, got %d", e, g)
	}

	if e, g := "Vote down recorded", res.Message; e != g {
		t.Errorf("res.Message: expected %s, got %s", e, g)
	}
}

func TestAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/feedback/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Feedback not found"})
	})

	client := newTestClient(t, mux)

	_, err := client.GetFeedback(context.Background(), 999)
	if err == nil {
		t.Fatal("expected an error")
	}

	if !IsNotFound(err) {
		t.Errorf("expected a not found error, got %+v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an *APIError, got %T", err)
	}

	if e, g := "Feedback not found", apiErr.Message; e != g {
		t.Errorf("apiErr.Message: expected %s, got %s", e, g)
	}
}

func TestAllFeatures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/features", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))

		writeJSON(w, http.StatusOK, query.Page[*model.Feature]{
			Data:       []*model.Feature{{Base: model.Base{ID: model.ID(page)}}},
			TotalCount: 3,
			Page:       page,
			TotalPages: 3,
			HasNext:    page < 3,
			HasPrev:    page > 1,
		})
	})

	client := newTestClient(t, mux)

	features, err := client.AllFeatures(context.Background())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 3, len(features); e != g {
		t.Fatalf("len(features): expected %d, got %d", e, g)
	}

	for i, f := range features {
		if e, g := model.ID(i+1), f.ID; e != g {
			t.Errorf("features[%d].ID: expected %d, got %d", i, e, g)
		}
	}
}

func TestRateLimitRetry(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too Many Requests"})
			return
		}

		writeJSON(w, http.StatusOK, api.HealthResponse{Status: "OK", Uptime: 12})
	})

	client := newTestClient(t, mux)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "OK", health.Status; e != g {
		t.Errorf("health.Status: expected %s, got %s", e, g)
	}

	if e, g := int32(2), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}

func TestWaitFor(t *testing.T) {
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasks/{taskID}", func(w http.ResponseWriter, r *http.Request) {
		task := &api.Task{
			ID:     model.TaskID(r.PathValue("taskID")),
			Status: "running",
		}

		if calls.Add(1) >= 3 {
			task.Status = "succeeded"
			task.FinishedAt = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		}

		writeJSON(w, http.StatusOK, api.ShowTaskResponse{Task: task})
	})

	client := newTestClient(t, mux)

	task, err := client.WaitFor(context.Background(), "sync-1", WithWaitForPollInterval(5*time.Millisecond))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := model.TaskID("sync-1"), task.ID; e != g {
		t.Errorf("task.ID: expected %s, got %s", e, g)
	}

	if e, g := int32(3), calls.Load(); e != g {
		t.Errorf("calls: expected %d, got %d", e, g)
	}
}
