package port

import (
	"context"

	"github.com/bornholm/producthub/internal/core/model"
)

// CollectionStore keeps the records of one entity type in insertion order.
//
// Records returned by a store are copies: mutating them has no effect on the
// stored state.
type CollectionStore[T model.Record[T]] interface {
	// ListRecords returns every record in insertion order.
	ListRecords(ctx context.Context) ([]T, error)
	GetRecord(ctx context.Context, id model.ID) (T, error)
	// CreateRecord assigns the next identifier to the record and appends it.
	CreateRecord(ctx context.Context, record T) (T, error)
	// UpdateRecord applies fn to the stored record. The record is left
	// untouched if fn returns an error.
	UpdateRecord(ctx context.Context, id model.ID, fn func(record T) error) (T, error)
	DeleteRecord(ctx context.Context, id model.ID) (T, error)
	// ImportRecords appends records keeping their identifiers.
	ImportRecords(ctx context.Context, records ...T) error
}
