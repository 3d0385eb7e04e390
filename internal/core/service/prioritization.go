package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

const (
	MinScore = 0
	MaxScore = 100
)

// PrioritizedFeature is the projection of a feature on the prioritization
// matrix.
type PrioritizedFeature struct {
	ID         model.ID       `json:"id"`
	Title      string         `json:"title"`
	Impact     int            `json:"impact"`
	Effort     int            `json:"effort"`
	Reach      int            `json:"reach"`
	Confidence int            `json:"confidence"`
	Votes      int            `json:"votes"`
	AssignedTo string         `json:"assignedTo"`
	RICE       int            `json:"rice"`
	Quadrant   model.Quadrant `json:"quadrant"`
}

func NewPrioritizedFeature(f *model.Feature) *PrioritizedFeature {
	return &PrioritizedFeature{
		ID:         f.ID,
		Title:      f.Title,
		Impact:     f.ImpactScore,
		Effort:     f.EffortScore,
		Reach:      f.ReachScore,
		Confidence: f.ConfidenceScore,
		Votes:      f.Votes,
		AssignedTo: f.AssignedTo,
		RICE:       f.RICE(),
		Quadrant:   f.Quadrant(),
	}
}

// Prioritize projects features on the prioritization matrix, highest RICE
// score first. An empty quadrant keeps every feature.
func Prioritize(features []*model.Feature, quadrant model.Quadrant) []*PrioritizedFeature {
	prioritized := make([]*PrioritizedFeature, 0, len(features))
	for _, f := range features {
		p := NewPrioritizedFeature(f)
		if quadrant != "" && p.Quadrant != quadrant {
			continue
		}
		prioritized = append(prioritized, p)
	}

	slices.SortStableFunc(prioritized, func(a, b *PrioritizedFeature) int {
		return cmp.Compare(b.RICE, a.RICE)
	})

	return prioritized
}

type FeatureManager struct {
	*CollectionManager[*model.Feature]
}

func (m *FeatureManager) Prioritize(ctx context.Context, quadrant model.Quadrant) ([]*PrioritizedFeature, error) {
	if quadrant != "" && !quadrant.Valid() {
		return nil, errors.WithStack(model.NewValidationErrorf("Unknown quadrant '%s'", quadrant))
	}

	features, err := m.List(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return Prioritize(features, quadrant), nil
}

// MoveToPosition overwrites the impact and effort scores of a feature,
// clamped to the scoring range.
func (m *FeatureManager) MoveToPosition(ctx context.Context, id model.ID, impact, effort int) (*model.Feature, error) {
	feature, err := m.Mutate(ctx, id, ActionUpdated, func(f *model.Feature) (bool, error) {
		f.ImpactScore = min(max(impact, MinScore), MaxScore)
		f.EffortScore = min(max(effort, MinScore), MaxScore)
		return true, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	m.Publish(ctx, ActionUpdated, feature)

	return feature, nil
}

// MoveToQuadrant places a feature in a quadrant by applying the quadrant
// representative scores.
func (m *FeatureManager) MoveToQuadrant(ctx context.Context, id model.ID, quadrant model.Quadrant) (*model.Feature, error) {
	if !quadrant.Valid() {
		return nil, errors.WithStack(model.NewValidationErrorf("Unknown quadrant '%s'", quadrant))
	}

	feature, err := m.Mutate(ctx, id, ActionUpdated, func(f *model.Feature) (bool, error) {
		if err := f.MoveTo(quadrant); err != nil {
			return false, errors.WithStack(err)
		}
		return true, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	m.Publish(ctx, ActionUpdated, feature)

	return feature, nil
}

func NewFeatureManager(store port.CollectionStore[*model.Feature], funcs ...CollectionManagerOptionFunc) *FeatureManager {
	return &FeatureManager{
		CollectionManager: NewCollectionManager(EntityFeature, store, FeatureSchema, funcs...),
	}
}
