package model

type Framework struct {
	Base

	Name        string             `json:"name"`
	Description string             `json:"description"`
	Criteria    []string           `json:"criteria"`
	Weights     map[string]float64 `json:"weights"`
	IsDefault   bool               `json:"isDefault"`
}

// ApplyDefaults implements Record.
func (f *Framework) ApplyDefaults() {
	if f.Weights == nil {
		f.Weights = map[string]float64{}
	}
}

// Validate implements Record.
func (f *Framework) Validate() error {
	if f.Name == "" || f.Description == "" || len(f.Criteria) == 0 {
		return NewValidationError("Name, description, and criteria are required")
	}

	for criterion, weight := range f.Weights {
		if weight < 0 {
			return NewValidationErrorf("weight of criterion '%s' must not be negative", criterion)
		}
	}

	return nil
}

// Clone implements Record.
func (f *Framework) Clone() *Framework {
	clone := *f
	clone.Criteria = cloneSlice(f.Criteria)
	clone.Weights = cloneMap(f.Weights)
	return &clone
}

type FrameworkUpdates struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Criteria    *[]string           `json:"criteria,omitempty"`
	Weights     *map[string]float64 `json:"weights,omitempty"`
	IsDefault   *bool               `json:"isDefault,omitempty"`
}

// Apply implements Patch.
func (u FrameworkUpdates) Apply(f *Framework) {
	assign(&f.Name, u.Name)
	assign(&f.Description, u.Description)
	assign(&f.IsDefault, u.IsDefault)
	if u.Criteria != nil {
		f.Criteria = cloneSlice(*u.Criteria)
	}
	if u.Weights != nil {
		f.Weights = cloneMap(*u.Weights)
	}
}

var _ Patch[*Framework] = FrameworkUpdates{}
