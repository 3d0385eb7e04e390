package service

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

const (
	monthLayout          = "2006-01"
	uncategorized        = "Uncategorized"
	dashboardTopFeatures = 3
)

type TopFeature struct {
	ID     model.ID `json:"id"`
	Title  string   `json:"title"`
	Votes  int      `json:"votes"`
	Status string   `json:"status"`
}

type CategoryShare struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	// Value is the share of the category, in percent.
	Value int `json:"value"`
}

type Dashboard struct {
	TotalFeedback        int             `json:"totalFeedback"`
	ActiveFeatures       int             `json:"activeFeatures"`
	TotalVotes           int             `json:"totalVotes"`
	CustomerSatisfaction float64         `json:"customerSatisfaction"`
	MonthlyGrowth        float64         `json:"monthlyGrowth"`
	TopFeatures          []TopFeature    `json:"topFeatures"`
	FeedbackByCategory   []CategoryShare `json:"feedbackByCategory"`
}

type MonthlyTrend struct {
	Month    string `json:"month"`
	Feedback int    `json:"feedback"`
	Features int    `json:"features"`
	Votes    int    `json:"votes"`
}

// Analytics computes the dashboard indicators from the live stores.
type Analytics struct {
	feedbacks port.CollectionStore[*model.Feedback]
	features  port.CollectionStore[*model.Feature]
	clock     func() time.Time
}

func (a *Analytics) Dashboard(ctx context.Context) (*Dashboard, error) {
	feedbacks, err := a.feedbacks.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	features, err := a.features.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	dashboard := &Dashboard{
		TotalFeedback:      len(feedbacks),
		TopFeatures:        make([]TopFeature, 0, dashboardTopFeatures),
		FeedbackByCategory: make([]CategoryShare, 0),
	}

	var (
		positive   int
		thisMonth  int
		lastMonth  int
		categories = map[string]int{}
	)

	now := a.clock()
	currentMonth := now.Format(monthLayout)
	previousMonth := firstDayOfMonth(now).AddDate(0, -1, 0).Format(monthLayout)

	for _, f := range feedbacks {
		dashboard.TotalVotes += f.Votes

		if f.Sentiment > 0 {
			positive++
		}

		switch f.CreatedAt.In(now.Location()).Format(monthLayout) {
		case currentMonth:
			thisMonth++
		case previousMonth:
			lastMonth++
		}

		category := f.Category
		if category == "" {
			category = uncategorized
		}
		categories[category]++
	}

	for _, f := range features {
		dashboard.TotalVotes += f.Votes

		if f.Status != model.FeatureStatusCompleted {
			dashboard.ActiveFeatures++
		}
	}

	if len(feedbacks) > 0 {
		dashboard.CustomerSatisfaction = roundTo(float64(positive)*100/float64(len(feedbacks)), 1)
	}

	dashboard.MonthlyGrowth = growth(lastMonth, thisMonth)

	ranked := slices.Clone(features)
	slices.SortStableFunc(ranked, func(a, b *model.Feature) int {
		return cmp.Compare(b.Votes, a.Votes)
	})

	for _, f := range ranked[:min(dashboardTopFeatures, len(ranked))] {
		dashboard.TopFeatures = append(dashboard.TopFeatures, TopFeature{ID: f.ID, Title: f.Title, Votes: f.Votes, Status: f.Status})
	}

	for name, count := range categories {
		dashboard.FeedbackByCategory = append(dashboard.FeedbackByCategory, CategoryShare{
			Name:  name,
			Count: count,
			Value: int(math.Round(float64(count) * 100 / float64(len(feedbacks)))),
		})
	}

	slices.SortFunc(dashboard.FeedbackByCategory, func(a, b CategoryShare) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return dashboard, nil
}

// FeedbackTrends returns, per calendar month, the feedback and features
// created and the votes gathered by the feedback of that month.
func (a *Analytics) FeedbackTrends(ctx context.Context) ([]MonthlyTrend, error) {
	feedbacks, err := a.feedbacks.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	features, err := a.features.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	location := a.clock().Location()
	trends := map[string]*MonthlyTrend{}

	getTrend := func(t time.Time) *MonthlyTrend {
		month := t.In(location).Format(monthLayout)
		trend, exists := trends[month]
		if !exists {
			trend = &MonthlyTrend{Month: month}
			trends[month] = trend
		}
		return trend
	}

	for _, f := range feedbacks {
		trend := getTrend(f.CreatedAt)
		trend.Feedback++
		trend.Votes += f.Votes
	}

	for _, f := range features {
		getTrend(f.CreatedAt).Features++
	}

	result := make([]MonthlyTrend, 0, len(trends))
	for _, t := range trends {
		result = append(result, *t)
	}

	slices.SortFunc(result, func(a, b MonthlyTrend) int {
		return cmp.Compare(a.Month, b.Month)
	})

	return result, nil
}

func NewAnalytics(feedbacks port.CollectionStore[*model.Feedback], features port.CollectionStore[*model.Feature], funcs ...CollectionManagerOptionFunc) *Analytics {
	opts := NewCollectionManagerOptions(funcs...)
	return &Analytics{
		feedbacks: feedbacks,
		features:  features,
		clock:     opts.Clock,
	}
}

func growth(previous, current int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}

	return roundTo(float64(current-previous)*100/float64(previous), 1)
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func firstDayOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
