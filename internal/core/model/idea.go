package model

const (
	DefaultIdeaStatus = "pending"

	MinIdeaConfidence = 70
	MaxIdeaConfidence = 100
)

// Idea is a feature suggestion derived from collected feedback.
type Idea struct {
	Base

	Title                     string         `json:"title"`
	Description               string         `json:"description"`
	SourceData                map[string]any `json:"sourceData"`
	ConfidenceScore           int            `json:"confidenceScore"`
	Status                    string         `json:"status"`
	FeedbackAnalysis          string         `json:"feedbackAnalysis,omitempty"`
	ImplementationSuggestions string         `json:"implementationSuggestions,omitempty"`
}

// ApplyDefaults implements Record.
func (i *Idea) ApplyDefaults() {
	if i.Status == "" {
		i.Status = DefaultIdeaStatus
	}
	if i.SourceData == nil {
		i.SourceData = map[string]any{}
	}
}

// Validate implements Record.
func (i *Idea) Validate() error {
	if i.Title == "" || i.Description == "" {
		return NewValidationError("Title and description are required")
	}

	if i.ConfidenceScore < 0 || i.ConfidenceScore >= MaxIdeaConfidence {
		return NewValidationErrorf("confidenceScore must be in [0, %d)", MaxIdeaConfidence)
	}

	return nil
}

// Clone implements Record.
func (i *Idea) Clone() *Idea {
	clone := *i
	clone.SourceData = cloneMap(i.SourceData)
	return &clone
}

type IdeaUpdates struct {
	Title                     *string `json:"title,omitempty"`
	Description               *string `json:"description,omitempty"`
	Status                    *string `json:"status,omitempty"`
	FeedbackAnalysis          *string `json:"feedbackAnalysis,omitempty"`
	ImplementationSuggestions *string `json:"implementationSuggestions,omitempty"`
}

// Apply implements Patch.
func (u IdeaUpdates) Apply(i *Idea) {
	assign(&i.Title, u.Title)
	assign(&i.Description, u.Description)
	assign(&i.Status, u.Status)
	assign(&i.FeedbackAnalysis, u.FeedbackAnalysis)
	assign(&i.ImplementationSuggestions, u.ImplementationSuggestions)
}

var _ Patch[*Idea] = IdeaUpdates{}
