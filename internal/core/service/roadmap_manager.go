package service

import (
	"context"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

type RoadmapManager struct {
	*CollectionManager[*model.Roadmap]

	Items *CollectionManager[*model.RoadmapItem]
}

// GetWithItems returns a roadmap and its items, in insertion order.
func (m *RoadmapManager) GetWithItems(ctx context.Context, id model.ID) (*model.RoadmapWithItems, error) {
	roadmap, err := m.Get(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items, err := m.listItems(ctx, id)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &model.RoadmapWithItems{
		Roadmap: roadmap,
		Items:   items,
	}, nil
}

func (m *RoadmapManager) CreateItem(ctx context.Context, roadmapID model.ID, item *model.RoadmapItem) (*model.RoadmapItem, error) {
	if _, err := m.Get(ctx, roadmapID); err != nil {
		return nil, errors.WithStack(err)
	}

	item = item.Clone()
	item.RoadmapID = roadmapID

	created, err := m.Items.Create(ctx, item)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return created, nil
}

func (m *RoadmapManager) UpdateItem(ctx context.Context, roadmapID model.ID, itemID model.ID, updates model.RoadmapItemUpdates) (*model.RoadmapItem, error) {
	if _, err := m.getItem(ctx, roadmapID, itemID); err != nil {
		return nil, errors.WithStack(err)
	}

	updated, err := m.Items.Update(ctx, itemID, updates)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return updated, nil
}

func (m *RoadmapManager) DeleteItem(ctx context.Context, roadmapID model.ID, itemID model.ID) (*model.RoadmapItem, error) {
	if _, err := m.getItem(ctx, roadmapID, itemID); err != nil {
		return nil, errors.WithStack(err)
	}

	deleted, err := m.Items.Delete(ctx, itemID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return deleted, nil
}

// getItem returns the item if it belongs to the roadmap.
func (m *RoadmapManager) getItem(ctx context.Context, roadmapID model.ID, itemID model.ID) (*model.RoadmapItem, error) {
	item, err := m.Items.Get(ctx, itemID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if item.RoadmapID != roadmapID {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return item, nil
}

func (m *RoadmapManager) listItems(ctx context.Context, roadmapID model.ID) ([]*model.RoadmapItem, error) {
	all, err := m.Items.List(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]*model.RoadmapItem, 0)
	for _, i := range all {
		if i.RoadmapID == roadmapID {
			items = append(items, i)
		}
	}

	return items, nil
}

func NewRoadmapManager(roadmaps port.CollectionStore[*model.Roadmap], items port.CollectionStore[*model.RoadmapItem], funcs ...CollectionManagerOptionFunc) *RoadmapManager {
	return &RoadmapManager{
		CollectionManager: NewCollectionManager(EntityRoadmap, roadmaps, RoadmapSchema, funcs...),
		Items:             NewCollectionManager(EntityRoadmapItem, items, RoadmapItemSchema, funcs...),
	}
}
