package model

const (
	DefaultRoadmapAudience   = "internal"
	DefaultRoadmapItemStatus = "planned"
	DefaultRoadmapVersion    = 1
)

type Roadmap struct {
	Base

	Name         string `json:"name"`
	Description  string `json:"description"`
	StartDate    string `json:"startDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	AudienceType string `json:"audienceType"`
	IsPublic     bool   `json:"isPublic"`
	Version      int    `json:"version"`
	CreatedBy    string `json:"createdBy"`
}

// ApplyDefaults implements Record.
func (r *Roadmap) ApplyDefaults() {
	if r.AudienceType == "" {
		r.AudienceType = DefaultRoadmapAudience
	}
	if r.Version == 0 {
		r.Version = DefaultRoadmapVersion
	}
	if r.CreatedBy == "" {
		r.CreatedBy = DefaultCreatedBy
	}
}

// Validate implements Record.
func (r *Roadmap) Validate() error {
	if r.Name == "" || r.Description == "" {
		return NewValidationError("Name and description are required")
	}

	return validateNonNegative(intField{"version", r.Version})
}

// Clone implements Record.
func (r *Roadmap) Clone() *Roadmap {
	clone := *r
	return &clone
}

type RoadmapUpdates struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
	AudienceType *string `json:"audienceType,omitempty"`
	IsPublic     *bool   `json:"isPublic,omitempty"`
	Version      *int    `json:"version,omitempty"`
	CreatedBy    *string `json:"createdBy,omitempty"`
}

// Apply implements Patch.
func (u RoadmapUpdates) Apply(r *Roadmap) {
	assign(&r.Name, u.Name)
	assign(&r.Description, u.Description)
	assign(&r.StartDate, u.StartDate)
	assign(&r.EndDate, u.EndDate)
	assign(&r.AudienceType, u.AudienceType)
	assign(&r.IsPublic, u.IsPublic)
	assign(&r.Version, u.Version)
	assign(&r.CreatedBy, u.CreatedBy)
}

var _ Patch[*Roadmap] = RoadmapUpdates{}

type RoadmapItem struct {
	Base

	RoadmapID ID      `json:"roadmapId"`
	FeatureID ID      `json:"featureId"`
	StartDate string  `json:"startDate,omitempty"`
	EndDate   string  `json:"endDate,omitempty"`
	Status    string  `json:"status"`
	PositionX float64 `json:"positionX"`
	PositionY float64 `json:"positionY"`
}

// ApplyDefaults implements Record.
func (i *RoadmapItem) ApplyDefaults() {
	if i.Status == "" {
		i.Status = DefaultRoadmapItemStatus
	}
}

// Validate implements Record.
func (i *RoadmapItem) Validate() error {
	if i.RoadmapID <= 0 || i.FeatureID <= 0 {
		return NewValidationError("Roadmap and feature are required")
	}

	return nil
}

// Clone implements Record.
func (i *RoadmapItem) Clone() *RoadmapItem {
	clone := *i
	return &clone
}

type RoadmapItemUpdates struct {
	FeatureID *ID      `json:"featureId,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
	Status    *string  `json:"status,omitempty"`
	PositionX *float64 `json:"positionX,omitempty"`
	PositionY *float64 `json:"positionY,omitempty"`
}

// Apply implements Patch.
func (u RoadmapItemUpdates) Apply(i *RoadmapItem) {
	assign(&i.FeatureID, u.FeatureID)
	assign(&i.StartDate, u.StartDate)
	assign(&i.EndDate, u.EndDate)
	assign(&i.Status, u.Status)
	assign(&i.PositionX, u.PositionX)
	assign(&i.PositionY, u.PositionY)
}

var _ Patch[*RoadmapItem] = RoadmapItemUpdates{}

// RoadmapWithItems is a roadmap and the items attached to it.
type RoadmapWithItems struct {
	*Roadmap

	Items []*RoadmapItem `json:"items"`
}
