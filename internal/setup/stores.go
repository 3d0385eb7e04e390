package setup

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/bornholm/producthub/internal/adapter/cache"
	gormAdapter "github.com/bornholm/producthub/internal/adapter/gorm"
	"github.com/bornholm/producthub/internal/adapter/memory/collection"
	"github.com/bornholm/producthub/internal/config"
	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/service"
	"github.com/bornholm/producthub/internal/seed"
	"github.com/pkg/errors"
)

const (
	StorageSchemeMemory = "memory"
	StorageSchemeSQLite = "sqlite"
)

var getStoresFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (*seed.Stores, error) {
	u, err := url.Parse(conf.Storage.URI)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse storage uri '%s'", conf.Storage.URI)
	}

	var stores *seed.Stores

	switch u.Scheme {
	case StorageSchemeMemory:
		stores = newMemoryStores()

	case StorageSchemeSQLite:
		db, err := getGormDatabaseFromConfig(ctx, conf)
		if err != nil {
			return nil, errors.Wrap(err, "could not create gorm database from config")
		}

		c := conf.Storage.Cache

		stores = &seed.Stores{
			Feedback:     withCache[*model.Feedback](c, gormAdapter.NewCollectionStore(db, service.EntityFeedback, newOf[model.Feedback])),
			Features:     withCache[*model.Feature](c, gormAdapter.NewCollectionStore(db, service.EntityFeature, newOf[model.Feature])),
			Roadmaps:     withCache[*model.Roadmap](c, gormAdapter.NewCollectionStore(db, service.EntityRoadmap, newOf[model.Roadmap])),
			RoadmapItems: withCache[*model.RoadmapItem](c, gormAdapter.NewCollectionStore(db, service.EntityRoadmapItem, newOf[model.RoadmapItem])),
			Integrations: withCache[*model.Integration](c, gormAdapter.NewCollectionStore(db, service.EntityIntegration, newOf[model.Integration])),
			Frameworks:   withCache[*model.Framework](c, gormAdapter.NewCollectionStore(db, service.EntityFramework, newOf[model.Framework])),
			MindMaps:     withCache[*model.MindMap](c, gormAdapter.NewCollectionStore(db, service.EntityMindMap, newOf[model.MindMap])),
			Ideas:        withCache[*model.Idea](c, gormAdapter.NewCollectionStore(db, service.EntityIdea, newOf[model.Idea])),
		}

	default:
		return nil, errors.Errorf("unsupported storage scheme '%s'", u.Scheme)
	}

	if !conf.Storage.Seed.Enabled {
		return stores, nil
	}

	fixtures, err := seed.Load(conf.Storage.Seed.File)
	if err != nil {
		return nil, errors.Wrap(err, "could not load fixtures")
	}

	if err := seed.Apply(ctx, fixtures, stores); err != nil {
		return nil, errors.Wrap(err, "could not seed stores")
	}

	slog.DebugContext(ctx, "stores seeded", slog.String("scheme", u.Scheme))

	return stores, nil
})

func newMemoryStores() *seed.Stores {
	return &seed.Stores{
		Feedback:     collection.NewStore[*model.Feedback](),
		Features:     collection.NewStore[*model.Feature](),
		Roadmaps:     collection.NewStore[*model.Roadmap](),
		RoadmapItems: collection.NewStore[*model.RoadmapItem](),
		Integrations: collection.NewStore[*model.Integration](),
		Frameworks:   collection.NewStore[*model.Framework](),
		MindMaps:     collection.NewStore[*model.MindMap](),
		Ideas:        collection.NewStore[*model.Idea](),
	}
}

func withCache[T model.Record[T]](conf config.StorageCache, store port.CollectionStore[T]) port.CollectionStore[T] {
	if !conf.Enabled {
		return store
	}

	return cache.NewCollectionStore(store, conf.Size, conf.TTL)
}

func newOf[T any]() *T {
	return new(T)
}
