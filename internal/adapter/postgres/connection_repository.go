package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wabridge/internal/core/domain"
)

// ConnectionRepository implements port.ConnectionRepository using pgxpool.
type ConnectionRepository struct {
	pool *pgxpool.Pool
}

// NewConnectionRepository returns a new repository instance.
func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{pool: pool}
}

func (r *ConnectionRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Connection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_phone_id FROM connections WHERE user_phone_id = $1`, userPhoneID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Connection, error) {
		var c domain.Connection
		err := row.Scan(&c.ID, &c.UserPhoneID)
		return c, err
	})
}

// Delete evicts a connection the transport reported gone.
func (r *ConnectionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM connections WHERE id = $1`, id)
	return err
}
