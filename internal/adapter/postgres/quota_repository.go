package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wabridge/internal/core/domain"
)

// QuotaRepository implements the daily message ledger over a counters
// table keyed by (sender, calendar date).
type QuotaRepository struct {
	pool *pgxpool.Pool
}

// NewQuotaRepository returns a new repository instance.
func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

// Used reads the counter, defaulting to zero when no record exists.
func (r *QuotaRepository) Used(ctx context.Context, userPhoneID, day string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT message_count FROM daily_message_count WHERE user_phone_id = $1 AND date = $2`,
		userPhoneID, day).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Reserve adds n to the counter in a single conditional statement that
// never pushes it past limit. A zero-row result means the cap would be
// breached and is reported as *domain.QuotaExceededError.
func (r *QuotaRepository) Reserve(ctx context.Context, userPhoneID, day string, n, limit int) error {
	tag, err := r.pool.Exec(ctx, `INSERT INTO daily_message_count (user_phone_id, date, message_count)
SELECT $1, $2, $3::int WHERE $3::int <= $4::int
ON CONFLICT (user_phone_id, date) DO UPDATE
SET message_count = daily_message_count.message_count + EXCLUDED.message_count
WHERE daily_message_count.message_count + EXCLUDED.message_count <= $4::int`,
		userPhoneID, day, n, limit)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		used, err := r.Used(ctx, userPhoneID, day)
		if err != nil {
			return err
		}
		return &domain.QuotaExceededError{Limit: limit, Remaining: limit - used}
	}
	return nil
}

// Release returns the unsent remainder of a reservation.
func (r *QuotaRepository) Release(ctx context.Context, userPhoneID, day string, n int) error {
	if n <= 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `UPDATE daily_message_count
SET message_count = greatest(message_count - $3, 0)
WHERE user_phone_id = $1 AND date = $2`,
		userPhoneID, day, n)
	return err
}
