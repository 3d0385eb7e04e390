package api

import "github.com/bornholm/producthub/internal/core/model"

type FeedbackCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Customer    string   `json:"customer"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

func (r FeedbackCreateRequest) Record() *model.Feedback {
	return &model.Feedback{
		Title:       r.Title,
		Description: r.Description,
		Source:      r.Source,
		Customer:    r.Customer,
		Category:    r.Category,
		Status:      r.Status,
		Priority:    r.Priority,
		Tags:        r.Tags,
	}
}

type FeatureCreateRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	ImpactScore     *int     `json:"impactScore"`
	EffortScore     *int     `json:"effortScore"`
	ReachScore      *int     `json:"reachScore"`
	ConfidenceScore *int     `json:"confidenceScore"`
	Complexity      string   `json:"complexity"`
	EstimatedEffort int      `json:"estimatedEffort"`
	AssignedTo      string   `json:"assignedTo"`
	Tags            []string `json:"tags"`
}

func (r FeatureCreateRequest) Record() *model.Feature {
	return &model.Feature{
		Title:           r.Title,
		Description:     r.Description,
		Category:        r.Category,
		Status:          r.Status,
		Priority:        r.Priority,
		ImpactScore:     scoreOrDefault(r.ImpactScore),
		EffortScore:     scoreOrDefault(r.EffortScore),
		ReachScore:      scoreOrDefault(r.ReachScore),
		ConfidenceScore: scoreOrDefault(r.ConfidenceScore),
		Complexity:      r.Complexity,
		EstimatedEffort: r.EstimatedEffort,
		AssignedTo:      r.AssignedTo,
		Tags:            r.Tags,
	}
}

type IntegrationCreateRequest struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	Config   map[string]any `json:"config"`
	IsActive *bool          `json:"isActive"`
}

func (r IntegrationCreateRequest) Record() *model.Integration {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &model.Integration{
		Name:     r.Name,
		Type:     r.Type,
		Config:   r.Config,
		IsActive: isActive,
	}
}

type VoteRequest struct {
	VoteType model.VoteType `json:"voteType"`
}

type PositionRequest struct {
	Impact   *int           `json:"impact"`
	Effort   *int           `json:"effort"`
	Quadrant model.Quadrant `json:"quadrant"`
}

func scoreOrDefault(score *int) int {
	if score == nil {
		return model.DefaultScore
	}
	return *score
}
