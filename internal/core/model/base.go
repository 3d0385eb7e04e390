package model

import (
	"time"
)

type ID int64

// Record is the contract shared by every entity kept in a collection.
type Record[T any] interface {
	GetID() ID
	SetID(id ID)
	GetCreatedAt() time.Time
	SetCreatedAt(t time.Time)
	GetUpdatedAt() time.Time
	SetUpdatedAt(t time.Time)

	// ApplyDefaults fills in the optional fields left empty by the caller.
	ApplyDefaults()
	Validate() error
	// Clone returns a deep copy of the record.
	Clone() T
}

// Patch describes a partial update of a record.
type Patch[T any] interface {
	Apply(record T)
}

type PatchFunc[T any] func(record T)

func (fn PatchFunc[T]) Apply(record T) {
	fn(record)
}

type Base struct {
	ID        ID        `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) GetID() ID {
	return b.ID
}

func (b *Base) SetID(id ID) {
	b.ID = id
}

func (b *Base) GetCreatedAt() time.Time {
	return b.CreatedAt
}

func (b *Base) SetCreatedAt(t time.Time) {
	b.CreatedAt = t
}

func (b *Base) GetUpdatedAt() time.Time {
	return b.UpdatedAt
}

func (b *Base) SetUpdatedAt(t time.Time) {
	b.UpdatedAt = t
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	clone := make(map[K]V, len(m))
	for k, v := range m {
		clone[k] = cloneValue(v)
	}
	return clone
}

// cloneValue deep copies the values produced by JSON decoding of free-form
// documents.
func cloneValue[V any](v V) V {
	switch typed := any(v).(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = cloneValue(v)
		}
		return any(clone).(V)
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = cloneValue(v)
		}
		return any(clone).(V)
	default:
		return v
	}
}
