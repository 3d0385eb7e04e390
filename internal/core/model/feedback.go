package model

const (
	DefaultFeedbackSource   = "Manual Entry"
	DefaultFeedbackCustomer = "Unknown"
	DefaultFeedbackStatus   = "new"
	DefaultPriority         = "medium"
)

type Feedback struct {
	Base

	Title       string   `json:"title"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
	Customer    string   `json:"customer"`
	Category    string   `json:"category,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Votes       int      `json:"votes"`
	Sentiment   int      `json:"sentiment"`
	Tags        []string `json:"tags"`
}

// ApplyDefaults implements Record.
func (f *Feedback) ApplyDefaults() {
	if f.Source == "" {
		f.Source = DefaultFeedbackSource
	}
	if f.Customer == "" {
		f.Customer = DefaultFeedbackCustomer
	}
	if f.Status == "" {
		f.Status = DefaultFeedbackStatus
	}
	if f.Priority == "" {
		f.Priority = DefaultPriority
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
}

// Validate implements Record.
func (f *Feedback) Validate() error {
	if f.Title == "" || f.Description == "" {
		return NewValidationError("Title and description are required")
	}

	return validateNonNegative(intField{"votes", f.Votes})
}

// Clone implements Record.
func (f *Feedback) Clone() *Feedback {
	clone := *f
	clone.Tags = cloneSlice(f.Tags)
	return &clone
}

type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

// Vote applies the given vote and reports whether the record was modified.
// Unknown vote types are ignored.
func (f *Feedback) Vote(voteType VoteType) bool {
	switch voteType {
	case VoteUp:
		f.Votes++
		return true
	case VoteDown:
		f.Votes = max(0, f.Votes-1)
		return true
	default:
		return false
	}
}

type FeedbackUpdates struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Source      *string   `json:"source,omitempty"`
	Customer    *string   `json:"customer,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Priority    *string   `json:"priority,omitempty"`
	Votes       *int      `json:"votes,omitempty"`
	Sentiment   *int      `json:"sentiment,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Apply implements Patch.
func (u FeedbackUpdates) Apply(f *Feedback) {
	assign(&f.Title, u.Title)
	assign(&f.Description, u.Description)
	assign(&f.Source, u.Source)
	assign(&f.Customer, u.Customer)
	assign(&f.Category, u.Category)
	assign(&f.Status, u.Status)
	assign(&f.Priority, u.Priority)
	assign(&f.Votes, u.Votes)
	assign(&f.Sentiment, u.Sentiment)
	if u.Tags != nil {
		f.Tags = cloneSlice(*u.Tags)
	}
}

var _ Patch[*Feedback] = FeedbackUpdates{}

type FeedbackStats struct {
	TotalFeedback           int            `json:"totalFeedback"`
	TotalVotes              int            `json:"totalVotes"`
	StatusCounts            map[string]int `json:"statusCounts"`
	CategoryCounts          map[string]int `json:"categoryCounts"`
	PriorityCounts          map[string]int `json:"priorityCounts"`
	AverageVotesPerFeedback int            `json:"averageVotesPerFeedback"`
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
