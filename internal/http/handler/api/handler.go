package api

import (
	"net/http"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/service"
	"github.com/pkg/errors"
)

// Services are the domain services exposed by the API.
type Services struct {
	Feedback     *service.FeedbackManager
	Features     *service.FeatureManager
	Roadmaps     *service.RoadmapManager
	Integrations *service.IntegrationManager
	Frameworks   *service.CollectionManager[*model.Framework]
	MindMaps     *service.CollectionManager[*model.MindMap]
	Ideas        *service.IdeaManager
	Analytics    *service.Analytics
	TaskRunner   port.TaskRunner
}

type Options struct {
	// Development exposes internal error messages to clients.
	Development bool
	Clock       func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Development: false,
		Clock:       time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithDevelopment(development bool) OptionFunc {
	return func(opts *Options) {
		opts.Development = development
	}
}

func WithClock(clock func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

type Handler struct {
	services  *Services
	opts      *Options
	startedAt time.Time
	mux       *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		if recovered == http.ErrAbortHandler {
			panic(recovered)
		}

		h.handleError(w, r, "", errors.Errorf("recovered panic: %v", recovered))
	}()

	h.mux.ServeHTTP(w, r)
}

func NewHandler(services *Services, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	h := &Handler{
		services:  services,
		opts:      opts,
		startedAt: opts.Clock(),
		mux:       &http.ServeMux{},
	}

	h.mux.HandleFunc("GET /health", h.handleHealth)

	feedback := &resource[*model.Feedback, FeedbackCreateRequest, model.FeedbackUpdates]{
		handler:   h,
		label:     "Feedback",
		key:       "feedback",
		manager:   services.Feedback.CollectionManager,
		newRecord: FeedbackCreateRequest.Record,
	}

	h.mux.HandleFunc("GET /feedback/stats/summary", h.handleFeedbackStats)
	h.mux.HandleFunc("POST /feedback/{id}/vote", h.handleFeedbackVote)
	feedback.mount(h.mux, "/feedback")

	features := &resource[*model.Feature, FeatureCreateRequest, model.FeatureUpdates]{
		handler:   h,
		label:     "Feature",
		key:       "feature",
		manager:   services.Features.CollectionManager,
		newRecord: FeatureCreateRequest.Record,
	}

	features.mount(h.mux, "/features")

	roadmaps := &resource[*model.Roadmap, *model.Roadmap, model.RoadmapUpdates]{
		handler:   h,
		label:     "Roadmap",
		key:       "roadmap",
		manager:   services.Roadmaps.CollectionManager,
		newRecord: orEmpty[model.Roadmap],
	}

	roadmaps.mount(h.mux, "/roadmap", routeGet)
	h.mux.HandleFunc("GET /roadmap/{id}", h.handleGetRoadmap)
	h.mux.HandleFunc("POST /roadmap/{id}/items", h.handleCreateRoadmapItem)
	h.mux.HandleFunc("PUT /roadmap/{id}/items/{itemID}", h.handleUpdateRoadmapItem)
	h.mux.HandleFunc("DELETE /roadmap/{id}/items/{itemID}", h.handleDeleteRoadmapItem)

	integrations := &resource[*model.Integration, IntegrationCreateRequest, model.IntegrationUpdates]{
		handler:   h,
		label:     "Integration",
		key:       "integration",
		manager:   services.Integrations.CollectionManager,
		newRecord: IntegrationCreateRequest.Record,
	}

	integrations.mount(h.mux, "/integrations")
	h.mux.HandleFunc("POST /integrations/{id}/sync", h.handleSyncIntegration)

	frameworks := &resource[*model.Framework, *model.Framework, model.FrameworkUpdates]{
		handler:   h,
		label:     "Framework",
		key:       "framework",
		manager:   services.Frameworks,
		newRecord: orEmpty[model.Framework],
	}

	frameworks.mount(h.mux, "/prioritization/frameworks")
	h.mux.HandleFunc("GET /prioritization/features", h.handlePrioritizedFeatures)
	h.mux.HandleFunc("PUT /prioritization/features/{id}/position", h.handleUpdateFeaturePosition)
	h.mux.HandleFunc("PUT /prioritization/features/{id}/quadrant", h.handleUpdateFeatureQuadrant)

	mindMaps := &resource[*model.MindMap, *model.MindMap, model.MindMapUpdates]{
		handler:   h,
		label:     "Mind map",
		key:       "mindMap",
		manager:   services.MindMaps,
		newRecord: orEmpty[model.MindMap],
	}

	h.mux.HandleFunc("GET /mindmap/ai-ideas", h.handleListIdeas)
	h.mux.HandleFunc("POST /mindmap/ai-ideas/generate", h.handleGenerateIdea)
	mindMaps.mount(h.mux, "/mindmap")

	h.mux.HandleFunc("GET /analytics/dashboard", h.handleDashboard)
	h.mux.HandleFunc("GET /analytics/feedback-trends", h.handleFeedbackTrends)

	h.mux.HandleFunc("GET /tasks", h.listTasks)
	h.mux.HandleFunc("GET /tasks/{taskID}", h.showTask)
	h.mux.HandleFunc("DELETE /tasks/{taskID}", h.cancelTask)

	h.mux.HandleFunc("/", h.handleNotFound)

	return h
}

var _ http.Handler = &Handler{}
