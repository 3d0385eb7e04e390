package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/bornholm/producthub/internal/core/query"
	"github.com/bornholm/producthub/internal/metrics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type CollectionManagerOptions struct {
	Notifier port.Notifier
	Clock    func() time.Time
}

type CollectionManagerOptionFunc func(opts *CollectionManagerOptions)

func NewCollectionManagerOptions(funcs ...CollectionManagerOptionFunc) *CollectionManagerOptions {
	opts := &CollectionManagerOptions{
		Notifier: port.NoopNotifier,
		Clock:    time.Now,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithNotifier(notifier port.Notifier) CollectionManagerOptionFunc {
	return func(opts *CollectionManagerOptions) {
		opts.Notifier = notifier
	}
}

func WithClock(clock func() time.Time) CollectionManagerOptionFunc {
	return func(opts *CollectionManagerOptions) {
		opts.Clock = clock
	}
}

// DeletedEvent is the payload broadcast when a record is deleted.
type DeletedEvent struct {
	ID model.ID `json:"id"`
}

// CollectionManager exposes the listing and mutation operations of one
// entity type and broadcasts an "<entity>:<action>" event after every
// successful mutation.
type CollectionManager[T model.Record[T]] struct {
	entity   string
	store    port.CollectionStore[T]
	schema   *query.Schema[T]
	notifier port.Notifier
	clock    func() time.Time
}

// Entity returns the name used as event prefix.
func (m *CollectionManager[T]) Entity() string {
	return m.entity
}

func (m *CollectionManager[T]) Schema() *query.Schema[T] {
	return m.schema
}

func (m *CollectionManager[T]) Query(ctx context.Context, spec query.Spec) (*query.Page[T], error) {
	records, err := m.store.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	page, err := query.Execute(records, m.schema, spec)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return page, nil
}

func (m *CollectionManager[T]) List(ctx context.Context) ([]T, error) {
	records, err := m.store.ListRecords(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return records, nil
}

func (m *CollectionManager[T]) Get(ctx context.Context, id model.ID) (T, error) {
	record, err := m.store.GetRecord(ctx, id)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	return record, nil
}

func (m *CollectionManager[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T

	record = record.Clone()
	record.ApplyDefaults()

	if err := record.Validate(); err != nil {
		return zero, errors.WithStack(err)
	}

	now := m.clock()
	record.SetCreatedAt(now)
	record.SetUpdatedAt(now)

	created, err := m.store.CreateRecord(ctx, record)
	if err != nil {
		return zero, errors.WithStack(err)
	}

	m.count(ActionCreated)
	m.Publish(ctx, ActionCreated, created)

	return created, nil
}

// Update merges the patch into the stored record. Identifier and creation
// date are preserved. A *model.ValidationError is returned when the merged
// record is invalid.
func (m *CollectionManager[T]) Update(ctx context.Context, id model.ID, patch model.Patch[T]) (T, error) {
	updated, err := m.Mutate(ctx, id, ActionUpdated, func(record T) (bool, error) {
		patch.Apply(record)
		return true, nil
	})
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	m.Publish(ctx, ActionUpdated, updated)

	return updated, nil
}

// Mutate applies fn to the stored record and validates the result. The
// modification date is refreshed when fn reports a change. The mutation is
// counted under action but no event is broadcast.
func (m *CollectionManager[T]) Mutate(ctx context.Context, id model.ID, action string, fn func(record T) (bool, error)) (T, error) {
	updated, err := m.store.UpdateRecord(ctx, id, func(record T) error {
		createdAt := record.GetCreatedAt()

		changed, err := fn(record)
		if err != nil {
			return errors.WithStack(err)
		}

		record.SetID(id)
		record.SetCreatedAt(createdAt)

		if err := record.Validate(); err != nil {
			return errors.WithStack(err)
		}

		if changed {
			now := m.clock()
			if now.Before(createdAt) {
				now = createdAt
			}
			record.SetUpdatedAt(now)
		}

		return nil
	})
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	m.count(action)

	return updated, nil
}

func (m *CollectionManager[T]) Delete(ctx context.Context, id model.ID) (T, error) {
	deleted, err := m.store.DeleteRecord(ctx, id)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	m.count(ActionDeleted)
	m.Publish(ctx, ActionDeleted, DeletedEvent{ID: id})

	return deleted, nil
}

// Publish broadcasts an "<entity>:<action>" event.
func (m *CollectionManager[T]) Publish(ctx context.Context, action string, payload any) {
	event := fmt.Sprintf("%s:%s", m.entity, action)

	slog.DebugContext(ctx, "publishing event", slog.String("event", event))

	m.notifier.Publish(ctx, event, payload)
}

func (m *CollectionManager[T]) count(action string) {
	metrics.Mutations.With(prometheus.Labels{
		metrics.LabelEntity: m.entity,
		metrics.LabelAction: action,
	}).Inc()
}

func NewCollectionManager[T model.Record[T]](entity string, store port.CollectionStore[T], schema *query.Schema[T], funcs ...CollectionManagerOptionFunc) *CollectionManager[T] {
	opts := NewCollectionManagerOptions(funcs...)

	return &CollectionManager[T]{
		entity:   entity,
		store:    store,
		schema:   schema,
		notifier: opts.Notifier,
		clock:    opts.Clock,
	}
}
