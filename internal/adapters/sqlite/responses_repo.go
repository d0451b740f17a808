package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Guilhem-Bonnet/metro-cards/internal/domain"
	"github.com/Guilhem-Bonnet/metro-cards/internal/ports"
)

// ResponsesRepository est le cache durable des réponses amont.
// stored_at est en nanosecondes Unix pour des comparaisons d'âge exactes.
type ResponsesRepository struct {
	db *sql.DB
}

func NewResponsesRepository(db *sql.DB) *ResponsesRepository {
	return &ResponsesRepository{db: db}
}

func (r *ResponsesRepository) Get(ctx context.Context, requestKey string) (domain.CachedResponse, error) {
	out := domain.CachedResponse{RequestKey: requestKey}
	var storedAt int64
	err := r.db.QueryRowContext(ctx, `SELECT body, stored_at FROM schedule_responses WHERE request_key = ?`, requestKey).Scan(&out.Body, &storedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CachedResponse{}, ports.ErrNotFound
		}
		return domain.CachedResponse{}, err
	}
	out.StoredAt = time.Unix(0, storedAt).UTC()
	return out, nil
}

func (r *ResponsesRepository) Put(ctx context.Context, resp domain.CachedResponse) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_responses(request_key, body, stored_at)
		VALUES(?, ?, ?)
		ON CONFLICT(request_key) DO UPDATE SET body = excluded.body, stored_at = excluded.stored_at
	`, resp.RequestKey, resp.Body, resp.StoredAt.UnixNano())
	return err
}

func (r *ResponsesRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_responses WHERE stored_at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
