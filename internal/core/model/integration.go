package model

import "time"

type Integration struct {
	Base

	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Config     map[string]any `json:"config"`
	IsActive   bool           `json:"isActive"`
	LastSyncAt *time.Time     `json:"lastSyncAt"`
}

// ApplyDefaults implements Record.
func (i *Integration) ApplyDefaults() {
	if i.Config == nil {
		i.Config = map[string]any{}
	}
}

// Validate implements Record.
func (i *Integration) Validate() error {
	if i.Name == "" || i.Type == "" {
		return NewValidationError("Name and type are required")
	}

	return nil
}

// Clone implements Record.
func (i *Integration) Clone() *Integration {
	clone := *i
	clone.Config = cloneMap(i.Config)
	if i.LastSyncAt != nil {
		lastSyncAt := *i.LastSyncAt
		clone.LastSyncAt = &lastSyncAt
	}
	return &clone
}

type IntegrationUpdates struct {
	Name     *string         `json:"name,omitempty"`
	Type     *string         `json:"type,omitempty"`
	Config   *map[string]any `json:"config,omitempty"`
	IsActive *bool           `json:"isActive,omitempty"`
}

// Apply implements Patch.
func (u IntegrationUpdates) Apply(i *Integration) {
	assign(&i.Name, u.Name)
	assign(&i.Type, u.Type)
	assign(&i.IsActive, u.IsActive)
	if u.Config != nil {
		i.Config = cloneMap(*u.Config)
	}
}

var _ Patch[*Integration] = IntegrationUpdates{}

const TaskTypeIntegrationSync TaskType = "integration-sync"

// IntegrationSyncTask synchronizes an integration with its remote system.
type IntegrationSyncTask struct {
	id            TaskID
	integrationID ID
}

// ID implements Task.
func (t *IntegrationSyncTask) ID() TaskID {
	return t.id
}

// Type implements Task.
func (t *IntegrationSyncTask) Type() TaskType {
	return TaskTypeIntegrationSync
}

func (t *IntegrationSyncTask) IntegrationID() ID {
	return t.integrationID
}

func NewIntegrationSyncTask(integrationID ID) *IntegrationSyncTask {
	return &IntegrationSyncTask{
		id:            NewTaskID(),
		integrationID: integrationID,
	}
}

var _ Task = &IntegrationSyncTask{}
