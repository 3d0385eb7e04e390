package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

type GenerateIdeaRequest struct {
	FeedbackSources []string `json:"feedbackSources"`
	Criteria        any      `json:"criteria"`
}

// IdeaManager derives feature suggestions from the collected feedback.
type IdeaManager struct {
	*CollectionManager[*model.Idea]

	feedbacks port.CollectionStore[*model.Feedback]
	random    func(n int) int
}

// Generate analyses the feedback coming from the requested sources and stores
// the resulting idea.
func (m *IdeaManager) Generate(ctx context.Context, req GenerateIdeaRequest) (*model.Idea, error) {
	feedbacks, err := m.feedbacks.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	sources := map[string]struct{}{}
	sourceList := make([]any, 0, len(req.FeedbackSources))
	for _, s := range req.FeedbackSources {
		sources[s] = struct{}{}
		sourceList = append(sourceList, s)
	}

	var (
		analysed   int
		votes      int
		categories = map[string]int{}
	)

	for _, f := range feedbacks {
		if _, exists := sources[f.Source]; len(sources) > 0 && !exists {
			continue
		}

		analysed++
		votes += f.Votes

		if f.Category != "" {
			categories[f.Category] += max(f.Votes, 1)
		}
	}

	topCategory := ""
	for category, weight := range categories {
		if topCategory == "" || weight > categories[topCategory] || (weight == categories[topCategory] && category < topCategory) {
			topCategory = category
		}
	}

	title := "AI-Generated Feature Idea"
	description := "Based on feedback analysis, users are requesting improvements in this area"
	if topCategory != "" {
		title = fmt.Sprintf("Improve %s experience", topCategory)
		description = fmt.Sprintf("Based on feedback analysis, users are requesting improvements in the %s area", topCategory)
	}

	idea := &model.Idea{
		Title:       title,
		Description: description,
		SourceData: map[string]any{
			"feedbackSources": sourceList,
			"criteria":        req.Criteria,
			"analysedCount":   analysed,
			"totalVotes":      votes,
		},
		ConfidenceScore:           model.MinIdeaConfidence + m.random(model.MaxIdeaConfidence-model.MinIdeaConfidence),
		Status:                    model.DefaultIdeaStatus,
		FeedbackAnalysis:          fmt.Sprintf("%d feedback items analysed, %d votes", analysed, votes),
		ImplementationSuggestions: "Start with a prototype and validate it with the customers who reported the issue",
	}

	created, err := m.Create(ctx, idea)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return created, nil
}

func NewIdeaManager(store port.CollectionStore[*model.Idea], feedbacks port.CollectionStore[*model.Feedback], funcs ...CollectionManagerOptionFunc) *IdeaManager {
	return &IdeaManager{
		CollectionManager: NewCollectionManager(EntityIdea, store, IdeaSchema, funcs...),
		feedbacks:         feedbacks,
		random:            rand.IntN,
	}
}
