package model

type MindMapNode struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

type MindMapEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type MindMapData struct {
	Nodes []MindMapNode `json:"nodes"`
	Edges []MindMapEdge `json:"edges"`
}

func (d *MindMapData) Clone() *MindMapData {
	if d == nil {
		return nil
	}
	return &MindMapData{
		Nodes: cloneSlice(d.Nodes),
		Edges: cloneSlice(d.Edges),
	}
}

type MindMap struct {
	Base

	Name      string       `json:"name"`
	Data      *MindMapData `json:"data"`
	IsShared  bool         `json:"isShared"`
	CreatedBy string       `json:"createdBy"`
}

// ApplyDefaults implements Record.
func (m *MindMap) ApplyDefaults() {
	if m.CreatedBy == "" {
		m.CreatedBy = DefaultCreatedBy
	}
	if m.Data != nil {
		if m.Data.Nodes == nil {
			m.Data.Nodes = []MindMapNode{}
		}
		if m.Data.Edges == nil {
			m.Data.Edges = []MindMapEdge{}
		}
	}
}

// Validate implements Record.
func (m *MindMap) Validate() error {
	if m.Name == "" || m.Data == nil {
		return NewValidationError("Name and data are required")
	}

	return nil
}

// Clone implements Record.
func (m *MindMap) Clone() *MindMap {
	clone := *m
	clone.Data = m.Data.Clone()
	return &clone
}

type MindMapUpdates struct {
	Name      *string      `json:"name,omitempty"`
	Data      *MindMapData `json:"data,omitempty"`
	IsShared  *bool        `json:"isShared,omitempty"`
	CreatedBy *string      `json:"createdBy,omitempty"`
}

// Apply implements Patch.
func (u MindMapUpdates) Apply(m *MindMap) {
	assign(&m.Name, u.Name)
	assign(&m.IsShared, u.IsShared)
	assign(&m.CreatedBy, u.CreatedBy)
	if u.Data != nil {
		m.Data = u.Data.Clone()
	}
}

var _ Patch[*MindMap] = MindMapUpdates{}
