package collection

import (
	"context"
	"sync"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/pkg/errors"
)

type Store[T model.Record[T]] struct {
	mutex   sync.RWMutex
	records []T
	// lastID is the highest identifier ever assigned by the store.
	lastID model.ID
}

// ListRecords implements port.CollectionStore.
func (s *Store[T]) ListRecords(ctx context.Context) ([]T, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]T, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r.Clone())
	}

	return records, nil
}

// GetRecord implements port.CollectionStore.
func (s *Store[T]) GetRecord(ctx context.Context, id model.ID) (T, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	idx := s.indexOf(id)
	if idx == -1 {
		var zero T
		return zero, errors.WithStack(port.ErrNotFound)
	}

	return s.records[idx].Clone(), nil
}

// CreateRecord implements port.CollectionStore.
func (s *Store[T]) CreateRecord(ctx context.Context, record T) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastID++

	stored := record.Clone()
	stored.SetID(s.lastID)

	s.records = append(s.records, stored)

	return stored.Clone(), nil
}

// UpdateRecord implements port.CollectionStore.
func (s *Store[T]) UpdateRecord(ctx context.Context, id model.ID, fn func(record T) error) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var zero T

	idx := s.indexOf(id)
	if idx == -1 {
		return zero, errors.WithStack(port.ErrNotFound)
	}

	updated := s.records[idx].Clone()

	if err := fn(updated); err != nil {
		return zero, errors.WithStack(err)
	}

	updated.SetID(id)

	s.records[idx] = updated

	return updated.Clone(), nil
}

// DeleteRecord implements port.CollectionStore.
func (s *Store[T]) DeleteRecord(ctx context.Context, id model.ID) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		var zero T
		return zero, errors.WithStack(port.ErrNotFound)
	}

	deleted := s.records[idx]

	s.records = append(s.records[:idx], s.records[idx+1:]...)

	return deleted, nil
}

// ImportRecords implements port.CollectionStore.
func (s *Store[T]) ImportRecords(ctx context.Context, records ...T) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, r := range records {
		if r.GetID() <= 0 {
			return errors.Errorf("could not import record without identifier")
		}

		if s.indexOf(r.GetID()) != -1 {
			return errors.Errorf("could not import record '%d': identifier already used", r.GetID())
		}

		s.records = append(s.records, r.Clone())
		s.lastID = max(s.lastID, r.GetID())
	}

	return nil
}

func (s *Store[T]) indexOf(id model.ID) int {
	for idx, r := range s.records {
		if r.GetID() == id {
			return idx
		}
	}
	return -1
}

func NewStore[T model.Record[T]]() *Store[T] {
	return &Store[T]{
		records: make([]T, 0),
	}
}

var _ port.CollectionStore[*model.Feedback] = &Store[*model.Feedback]{}
