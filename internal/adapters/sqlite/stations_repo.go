package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

type StationsRepository struct {
	db *sql.DB
}

func NewStationsRepository(db *sql.DB) *StationsRepository {
	return &StationsRepository{db: db}
}

func (r *StationsRepository) Get(ctx context.Context) (domain.PersistedRecord, error) {
	var b []byte
	var updatedAt string
	err := r.db.QueryRowContext(ctx, `SELECT selections_json, updated_at FROM station_selection WHERE record_key = ?`, domain.RecordKey).Scan(&b, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PersistedRecord{}, ports.ErrNotFound
		}
		return domain.PersistedRecord{}, err
	}
	rec := domain.PersistedRecord{RecordKey: domain.RecordKey}
	if err := json.Unmarshal(b, &rec.Selections); err != nil {
		return domain.PersistedRecord{}, fmt.Errorf("decode station selection: %w", err)
	}
	if rec.Selections == nil {
		rec.Selections = []domain.StationSelection{}
	}
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return rec, nil
}

func (r *StationsRepository) Replace(ctx context.Context, selections []domain.StationSelection) (domain.PersistedRecord, error) {
	if selections == nil {
		selections = []domain.StationSelection{}
	}
	b, err := json.Marshal(selections)
	if err != nil {
		return domain.PersistedRecord{}, err
	}
	now := time.Now().UTC()
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM station_selection WHERE record_key = ?`, domain.RecordKey); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO station_selection(record_key, selections_json, updated_at)
			VALUES(?, ?, ?)
		`, domain.RecordKey, b, now.Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return domain.PersistedRecord{}, err
	}
	return r.Get(ctx)
}
