package cache

import (
	"context"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/pkg/errors"
)

// CollectionStore keeps recently read records of a backend store in memory.
// Listings always hit the backend.
type CollectionStore[T model.Record[T]] struct {
	backend port.CollectionStore[T]
	records *expirable.LRU[model.ID, T]
}

// CreateRecord implements [port.CollectionStore].
func (s *CollectionStore[T]) CreateRecord(ctx context.Context, record T) (T, error) {
	created, err := s.backend.CreateRecord(ctx, record)
	if err != nil {
		return created, errors.WithStack(err)
	}

	s.records.Add(created.GetID(), created.Clone())

	return created, nil
}

// DeleteRecord implements [port.CollectionStore].
func (s *CollectionStore[T]) DeleteRecord(ctx context.Context, id model.ID) (T, error) {
	defer s.records.Remove(id)

	deleted, err := s.backend.DeleteRecord(ctx, id)
	if err != nil {
		return deleted, errors.WithStack(err)
	}

	return deleted, nil
}

// GetRecord implements [port.CollectionStore].
func (s *CollectionStore[T]) GetRecord(ctx context.Context, id model.ID) (T, error) {
	if record, exists := s.records.Get(id); exists {
		return record.Clone(), nil
	}

	record, err := s.backend.GetRecord(ctx, id)
	if err != nil {
		return record, errors.WithStack(err)
	}

	s.records.Add(id, record.Clone())

	return record, nil
}

// ImportRecords implements [port.CollectionStore].
func (s *CollectionStore[T]) ImportRecords(ctx context.Context, records ...T) error {
	defer func() {
		for _, r := range records {
			s.records.Remove(r.GetID())
		}
	}()

	if err := s.backend.ImportRecords(ctx, records...); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// ListRecords implements [port.CollectionStore].
func (s *CollectionStore[T]) ListRecords(ctx context.Context) ([]T, error) {
	records, err := s.backend.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return records, nil
}

// UpdateRecord implements [port.CollectionStore].
func (s *CollectionStore[T]) UpdateRecord(ctx context.Context, id model.ID, fn func(record T) error) (T, error) {
	s.records.Remove(id)

	updated, err := s.backend.UpdateRecord(ctx, id, fn)
	if err != nil {
		return updated, errors.WithStack(err)
	}

	s.records.Add(id, updated.Clone())

	return updated, nil
}

func NewCollectionStore[T model.Record[T]](backend port.CollectionStore[T], size int, ttl time.Duration) *CollectionStore[T] {
	return &CollectionStore[T]{
		backend: backend,
		records: expirable.NewLRU[model.ID, T](size, nil, ttl),
	}
}

var _ port.CollectionStore[*model.Feedback] = &CollectionStore[*model.Feedback]{}
