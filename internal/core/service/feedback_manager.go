package service

import (
	"context"
	"math"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

const ActionVoted = "voted"

type VotedEvent struct {
	ID    model.ID `json:"id"`
	Votes int      `json:"votes"`
}

type FeedbackManager struct {
	*CollectionManager[*model.Feedback]
}

// Vote records an up or down vote on a feedback. Unknown vote types leave
// the votes untouched but still refresh the modification date.
func (m *FeedbackManager) Vote(ctx context.Context, id model.ID, voteType model.VoteType) (*model.Feedback, error) {
	if voteType == "" {
		voteType = model.VoteUp
	}

	feedback, err := m.Mutate(ctx, id, ActionVoted, func(f *model.Feedback) (bool, error) {
		f.Vote(voteType)
		return true, nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	m.Publish(ctx, ActionVoted, VotedEvent{ID: feedback.ID, Votes: feedback.Votes})

	return feedback, nil
}

func (m *FeedbackManager) Stats(ctx context.Context) (*model.FeedbackStats, error) {
	feedbacks, err := m.List(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return ComputeFeedbackStats(feedbacks), nil
}

func ComputeFeedbackStats(feedbacks []*model.Feedback) *model.FeedbackStats {
	stats := &model.FeedbackStats{
		TotalFeedback:  len(feedbacks),
		StatusCounts:   map[string]int{},
		CategoryCounts: map[string]int{},
		PriorityCounts: map[string]int{},
	}

	for _, f := range feedbacks {
		stats.TotalVotes += f.Votes
		stats.StatusCounts[f.Status]++
		stats.CategoryCounts[f.Category]++
		stats.PriorityCounts[f.Priority]++
	}

	if stats.TotalFeedback > 0 {
		stats.AverageVotesPerFeedback = int(math.Round(float64(stats.TotalVotes) / float64(stats.TotalFeedback)))
	}

	return stats
}

func NewFeedbackManager(store port.CollectionStore[*model.Feedback], funcs ...CollectionManagerOptionFunc) *FeedbackManager {
	return &FeedbackManager{
		CollectionManager: NewCollectionManager(EntityFeedback, store, FeedbackSchema, funcs...),
	}
}
