package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultFeatureStatus     = "backlog"
	DefaultFeatureComplexity = "medium"
	DefaultFeatureAssignee   = "Unassigned"
	DefaultCreatedBy         = "Current User"
	DefaultScore             = 50
	FeatureStatusCompleted   = "completed"
)

type Feature struct {
	Base

	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category,omitempty"`
	Status          string   `json:"status"`
	Priority        string   `json:"priority"`
	Votes           int      `json:"votes"`
	ImpactScore     int      `json:"impactScore"`
	EffortScore     int      `json:"effortScore"`
	ReachScore      int      `json:"reachScore"`
	ConfidenceScore int      `json:"confidenceScore"`
	RevenueImpact   int64    `json:"revenueImpact"`
	Complexity      string   `json:"complexity"`
	EstimatedEffort int      `json:"estimatedEffort"`
	Dependencies    []string `json:"dependencies"`
	AssignedTo      string   `json:"assignedTo"`
	AssigneeAvatar  string   `json:"assigneeAvatar"`
	CreatedBy       string   `json:"createdBy"`
	Tags            []string `json:"tags"`
}

// ApplyDefaults implements Record.
func (f *Feature) ApplyDefaults() {
	if f.Status == "" {
		f.Status = DefaultFeatureStatus
	}
	if f.Priority == "" {
		f.Priority = DefaultPriority
	}
	if f.Complexity == "" {
		f.Complexity = DefaultFeatureComplexity
	}
	if f.AssignedTo == "" {
		f.AssignedTo = DefaultFeatureAssignee
	}
	if f.AssigneeAvatar == "" {
		f.AssigneeAvatar = Initials(f.AssignedTo)
	}
	if f.CreatedBy == "" {
		f.CreatedBy = DefaultCreatedBy
	}
	if f.Dependencies == nil {
		f.Dependencies = []string{}
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
}

// Validate implements Record.
func (f *Feature) Validate() error {
	if f.Title == "" || f.Description == "" {
		return NewValidationError("Title and description are required")
	}

	return validateNonNegative(
		intField{"votes", f.Votes},
		intField{"impactScore", f.ImpactScore},
		intField{"effortScore", f.EffortScore},
		intField{"reachScore", f.ReachScore},
		intField{"confidenceScore", f.ConfidenceScore},
		intField{"estimatedEffort", f.EstimatedEffort},
	)
}

// Clone implements Record.
func (f *Feature) Clone() *Feature {
	clone := *f
	clone.Dependencies = cloneSlice(f.Dependencies)
	clone.Tags = cloneSlice(f.Tags)
	return &clone
}

func (f *Feature) RICE() int {
	return RICE(f.ReachScore, f.ImpactScore, f.ConfidenceScore, f.EffortScore)
}

func (f *Feature) Quadrant() Quadrant {
	return Classify(f.ImpactScore, f.EffortScore)
}

// MoveTo overwrites the impact and effort scores with the representative
// values of the given quadrant.
func (f *Feature) MoveTo(q Quadrant) error {
	impact, effort, err := q.Position()
	if err != nil {
		return err
	}

	f.ImpactScore = impact
	f.EffortScore = effort

	return nil
}

// Initials returns the upper-cased first letter of each word of name.
func Initials(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
	}
	return sb.String()
}

type FeatureUpdates struct {
	Title           *string   `json:"title,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Status          *string   `json:"status,omitempty"`
	Priority        *string   `json:"priority,omitempty"`
	Votes           *int      `json:"votes,omitempty"`
	ImpactScore     *int      `json:"impactScore,omitempty"`
	EffortScore     *int      `json:"effortScore,omitempty"`
	ReachScore      *int      `json:"reachScore,omitempty"`
	ConfidenceScore *int      `json:"confidenceScore,omitempty"`
	RevenueImpact   *int64    `json:"revenueImpact,omitempty"`
	Complexity      *string   `json:"complexity,omitempty"`
	EstimatedEffort *int      `json:"estimatedEffort,omitempty"`
	Dependencies    *[]string `json:"dependencies,omitempty"`
	AssignedTo      *string   `json:"assignedTo,omitempty"`
	AssigneeAvatar  *string   `json:"assigneeAvatar,omitempty"`
	CreatedBy       *string   `json:"createdBy,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
}

// Apply implements Patch.
func (u FeatureUpdates) Apply(f *Feature) {
	assign(&f.Title, u.Title)
	assign(&f.Description, u.Description)
	assign(&f.Category, u.Category)
	assign(&f.Status, u.Status)
	assign(&f.Priority, u.Priority)
	assign(&f.Votes, u.Votes)
	assign(&f.ImpactScore, u.ImpactScore)
	assign(&f.EffortScore, u.EffortScore)
	assign(&f.ReachScore, u.ReachScore)
	assign(&f.ConfidenceScore, u.ConfidenceScore)
	assign(&f.RevenueImpact, u.RevenueImpact)
	assign(&f.Complexity, u.Complexity)
	assign(&f.EstimatedEffort, u.EstimatedEffort)
	assign(&f.AssignedTo, u.AssignedTo)
	assign(&f.AssigneeAvatar, u.AssigneeAvatar)
	assign(&f.CreatedBy, u.CreatedBy)
	if u.Dependencies != nil {
		f.Dependencies = cloneSlice(*u.Dependencies)
	}
	if u.Tags != nil {
		f.Tags = cloneSlice(*u.Tags)
	}
}

var _ Patch[*Feature] = FeatureUpdates{}
