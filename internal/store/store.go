// Package store persists intake records in the pacientes table.
//
// Every operation runs its statements against the shared pool and commits
// before returning; nothing is held open across calls.
package store

import (
	"context"

	"intake-backend/internal/models"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the record store.
type Store struct {
	db         *gorm.DB
	log        *logrus.Entry
	migrations []Migration
}

// New returns a store on db. Call Initialize before use.
func New(db *gorm.DB, log *logrus.Entry) *Store {
	return &Store{db: db, log: log, migrations: Migrations}
}

// Columns returns the live column names of the table, in table order.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	types, err := s.db.WithContext(ctx).Migrator().ColumnTypes(&models.PatientRecord{})
	if err != nil {
		return nil, errors.Wrap(err, "inspect columns")
	}
	cols := make([]string, 0, len(types))
	for _, t := range types {
		cols = append(cols, t.Name())
	}
	return cols, nil
}

func (s *Store) liveColumns(ctx context.Context) (map[string]bool, error) {
	cols, err := s.Columns(ctx)
	if err != nil {
		return nil, err
	}
	live := make(map[string]bool, len(cols))
	for _, c := range cols {
		live[c] = true
	}
	return live, nil
}

// Insert stores the payload keys that match live columns and returns the new id.
func (s *Store) Insert(ctx context.Context, payload models.Payload) (uint, error) {
	return s.InsertWithDefaults(ctx, payload, nil)
}

// InsertWithDefaults is Insert with fallback values for keys the payload does
// not carry. Defaults do not count towards the usable fields of the payload,
// so a payload of unknown keys is rejected even when defaults match columns.
func (s *Store) InsertWithDefaults(ctx context.Context, payload, defaults models.Payload) (uint, error) {
	live, err := s.liveColumns(ctx)
	if err != nil {
		return 0, err
	}

	rec, cols, err := models.Narrow(payload, live)
	if err != nil {
		return 0, errors.Wrap(ErrInvalidValue, err.Error())
	}
	if len(cols) == 0 {
		return 0, ErrNoValidFields
	}

	if len(defaults) > 0 {
		merged := make(models.Payload, len(payload)+len(defaults))
		for k, v := range defaults {
			merged[k] = v
		}
		for k, v := range payload {
			merged[k] = v
		}
		if rec, cols, err = models.Narrow(merged, live); err != nil {
			return 0, errors.Wrap(ErrInvalidValue, err.Error())
		}
	}

	if err := s.db.WithContext(ctx).Select(cols).Create(rec).Error; err != nil {
		return 0, errors.Wrap(err, "insert patient")
	}
	s.log.WithFields(logrus.Fields{"id": rec.ID, "columns": len(cols)}).Debug("inserted patient")
	return rec.ID, nil
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order(clause.OrderByColumn{Column: clause.Column{Name: models.ColTimestamp}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: models.ColID}})
}

// ListSummary returns the summary projection of every record, newest first.
func (s *Store) ListSummary(ctx context.Context) ([]models.PatientSummary, error) {
	live, err := s.liveColumns(ctx)
	if err != nil {
		return nil, err
	}
	var cols []string
	for _, c := range models.SummaryColumns {
		if live[c] {
			cols = append(cols, c)
		}
	}

	summaries := []models.PatientSummary{}
	q := s.db.WithContext(ctx).Model(&models.PatientRecord{}).Select(cols)
	if err := newestFirst(q).Find(&summaries).Error; err != nil {
		return nil, errors.Wrap(err, "list patients")
	}
	return summaries, nil
}

// Get returns the record with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id uint) (*models.PatientRecord, error) {
	var rec models.PatientRecord
	err := s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: models.ColID}, Value: id}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get patient %d", id)
	}
	return &rec, nil
}

// Delete removes the record with id, or returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: models.ColID}, Value: id}).Delete(&models.PatientRecord{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete patient %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFavorite sets the favorite flag of the record with id.
func (s *Store) SetFavorite(ctx context.Context, id uint, favorite bool) error {
	live, err := s.liveColumns(ctx)
	if err != nil {
		return err
	}
	if !live[models.ColFavorite] {
		return ErrColumnUnavailable
	}

	value := 0
	if favorite {
		value = 1
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		byID := clause.Eq{Column: clause.Column{Name: models.ColID}, Value: id}

		var count int64
		if err := tx.Model(&models.PatientRecord{}).Where(byID).Count(&count).Error; err != nil {
			return errors.Wrapf(err, "check patient %d", id)
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Model(&models.PatientRecord{}).Where(byID).Update(models.ColFavorite, value).Error; err != nil {
			return errors.Wrapf(err, "update favorite of patient %d", id)
		}
		return nil
	})
}

// ExportAll returns every record with all columns, newest first.
func (s *Store) ExportAll(ctx context.Context) ([]models.PatientRecord, error) {
	records := []models.PatientRecord{}
	if err := newestFirst(s.db.WithContext(ctx)).Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "export patients")
	}
	return records, nil
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.PatientRecord{}).Count(&n).Error; err != nil {
		return 0, errors.Wrap(err, "count patients")
	}
	return n, nil
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errors.Wrap(err, "database handle")
	}
	return errors.Wrap(sqlDB.PingContext(ctx), "ping database")
}
