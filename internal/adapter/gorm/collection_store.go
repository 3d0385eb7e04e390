package gorm

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/producthub/internal/core/model"
	"github.com/bornholm/producthub/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CollectionStore[T model.Record[T]] struct {
	collection  string
	newRecord   func() T
	getDatabase func(ctx context.Context) (*gorm.DB, error)
	// mutex serializes writers so identifiers are assigned in order
	mutex sync.Mutex
}

// ListRecords implements port.CollectionStore.
func (s *CollectionStore[T]) ListRecords(ctx context.Context) ([]T, error) {
	var rows []Record

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		if err := db.Where("collection = ?", s.collection).Order("position asc").Find(&rows).Error; err != nil {
			return errors.WithStack(err)
		}
		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		record, err := s.decode(&row)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		records = append(records, record)
	}

	return records, nil
}

// GetRecord implements port.CollectionStore.
func (s *CollectionStore[T]) GetRecord(ctx context.Context, id model.ID) (T, error) {
	var record T

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		row, err := s.findRow(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		record, err = s.decode(row)
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	return record, nil
}

// CreateRecord implements port.CollectionStore.
func (s *CollectionStore[T]) CreateRecord(ctx context.Context, record T) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	created := record.Clone()

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		sequence, err := s.getSequence(db)
		if err != nil {
			return errors.WithStack(err)
		}

		sequence.LastID++
		sequence.LastPosition++

		created.SetID(model.ID(sequence.LastID))

		if err := s.insert(db, created, sequence.LastPosition); err != nil {
			return errors.WithStack(err)
		}

		if err := db.Save(sequence).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	return created, nil
}

// UpdateRecord implements port.CollectionStore.
func (s *CollectionStore[T]) UpdateRecord(ctx context.Context, id model.ID, fn func(record T) error) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var updated T

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		row, err := s.findRow(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		updated, err = s.decode(row)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := fn(updated); err != nil {
			return errors.WithStack(err)
		}

		updated.SetID(id)

		data, err := json.Marshal(updated)
		if err != nil {
			return errors.WithStack(err)
		}

		err = db.Model(&Record{}).
			Where("collection = ? AND id = ?", s.collection, int64(id)).
			Update("data", data).Error
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	return updated, nil
}

// DeleteRecord implements port.CollectionStore.
func (s *CollectionStore[T]) DeleteRecord(ctx context.Context, id model.ID) (T, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var deleted T

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		row, err := s.findRow(db, id)
		if err != nil {
			return errors.WithStack(err)
		}

		deleted, err = s.decode(row)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := db.Delete(&Record{}, "collection = ? AND id = ?", s.collection, int64(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		var zero T
		return zero, errors.WithStack(err)
	}

	return deleted, nil
}

// ImportRecords implements port.CollectionStore.
func (s *CollectionStore[T]) ImportRecords(ctx context.Context, records ...T) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := s.withRetry(ctx, func(ctx context.Context, db *gorm.DB) error {
		sequence, err := s.getSequence(db)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, r := range records {
			if r.GetID() <= 0 {
				return errors.Errorf("could not import record without identifier")
			}

			sequence.LastPosition++
			sequence.LastID = max(sequence.LastID, int64(r.GetID()))

			if err := s.insert(db, r, sequence.LastPosition); err != nil {
				return errors.Wrapf(err, "could not import record '%d'", r.GetID())
			}
		}

		if err := db.Save(sequence).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.LOCKED, sqlite3.BUSY)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *CollectionStore[T]) getSequence(db *gorm.DB) (*Sequence, error) {
	sequence := &Sequence{Collection: s.collection}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(sequence).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := db.First(sequence, "collection = ?", s.collection).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return sequence, nil
}

func (s *CollectionStore[T]) insert(db *gorm.DB, record T, position int64) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.WithStack(err)
	}

	row := &Record{
		Collection: s.collection,
		ID:         int64(record.GetID()),
		Position:   position,
		Data:       data,
	}

	if err := db.Create(row).Error; err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *CollectionStore[T]) findRow(db *gorm.DB, id model.ID) (*Record, error) {
	var row Record

	if err := db.First(&row, "collection = ? AND id = ?", s.collection, int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &row, nil
}

func (s *CollectionStore[T]) decode(row *Record) (T, error) {
	record := s.newRecord()

	if err := json.Unmarshal(row.Data, record); err != nil {
		var zero T
		return zero, errors.Wrapf(err, "could not decode record '%d' of collection '%s'", row.ID, row.Collection)
	}

	return record, nil
}

func (s *CollectionStore[T]) withRetry(ctx context.Context, fn func(ctx context.Context, db *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := 500 * time.Millisecond
	maxRetries := 10
	retries := 0

	for {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := fn(ctx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++
				time.Sleep(backoff)
				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

// NewCollectionStore returns a store keeping the records of the named
// collection. newRecord allocates an empty record to decode into.
func NewCollectionStore[T model.Record[T]](db *gorm.DB, collection string, newRecord func() T) *CollectionStore[T] {
	return &CollectionStore[T]{
		collection:  collection,
		newRecord:   newRecord,
		getDatabase: createGetDatabase(db),
	}
}

var _ port.CollectionStore[*model.Feedback] = &CollectionStore[*model.Feedback]{}

func createGetDatabase(db *gorm.DB) func(ctx context.Context) (*gorm.DB, error) {
	var (
		migrateOnce sync.Once
		migrateErr  error
	)

	return func(ctx context.Context) (*gorm.DB, error) {
		migrateOnce.Do(func() {
			models := []any{
				&Record{},
				&Sequence{},
			}

			if err := db.AutoMigrate(models...); err != nil {
				migrateErr = errors.WithStack(err)
				return
			}
		})
		if migrateErr != nil {
			return nil, errors.WithStack(migrateErr)
		}

		return db, nil
	}
}
