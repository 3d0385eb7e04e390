package setup

import (
	"context"

	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/service"
	"github.com/bornholm/producthub/internal/http/handler/api"
	"github.com/pkg/errors"
)

var getServicesFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*api.Services, error) {
	stores, err := getStoresFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create stores from config")
	}

	notifier, err := getNotifierFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create notifier from config")
	}

	taskRunner, err := getTaskRunner(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not create task runner from config")
	}

	withNotifier := service.WithNotifier(notifier)

	integrations := service.NewIntegrationManager(
		stores.Integrations, taskRunner,
		service.IntegrationManagerOptions{SyncDelay: conf.Integrations.SyncDelay},
		withNotifier,
	)

	taskRunner.RegisterTask(model.TaskTypeIntegrationSync, integrations)

	services := &api.Services{
		Feedback:     service.NewFeedbackManager(stores.Feedback, withNotifier),
		Features:     service.NewFeatureManager(stores.Features, withNotifier),
		Roadmaps:     service.NewRoadmapManager(stores.Roadmaps, stores.RoadmapItems, withNotifier),
		Integrations: integrations,
		Frameworks:   service.NewCollectionManager(service.EntityFramework, stores.Frameworks, service.FrameworkSchema, withNotifier),
		MindMaps:     service.NewCollectionManager(service.EntityMindMap, stores.MindMaps, service.MindMapSchema, withNotifier),
		Ideas:        service.NewIdeaManager(stores.Ideas, stores.Feedback, withNotifier),
		Analytics:    service.NewAnalytics(stores.Feedback, stores.Features),
		TaskRunner:   taskRunner,
	}

	return services, nil
})
