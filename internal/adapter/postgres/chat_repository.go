package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"wabridge/internal/core/domain"
)

// ChatRepository implements port.ChatRepository using pgxpool.
type ChatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository returns a new repository instance.
func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

func (r *ChatRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Chat, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_phone_id, thread_id, client_phone, client_name, created_at
FROM chats WHERE user_phone_id = $1 ORDER BY created_at DESC`, userPhoneID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Chat, error) {
		var (
			c         domain.Chat
			createdAt int64
		)
		err := row.Scan(&c.UserPhoneID, &c.ThreadID, &c.ClientPhone, &c.ClientName, &createdAt)
		c.CreatedAt = time.UnixMilli(createdAt)
		return c, err
	})
}

// FindByClientPhone returns nil without error when no chat matches; one
// sender has at most one chat per client number.
func (r *ChatRepository) FindByClientPhone(ctx context.Context, userPhoneID, clientPhone string) (*domain.Chat, error) {
	var (
		c         domain.Chat
		createdAt int64
	)
	err := r.pool.QueryRow(ctx, `SELECT user_phone_id, thread_id, client_phone, client_name, created_at
FROM chats WHERE user_phone_id = $1 AND client_phone = $2`, userPhoneID, clientPhone).
		Scan(&c.UserPhoneID, &c.ThreadID, &c.ClientPhone, &c.ClientName, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt = time.UnixMilli(createdAt)
	return &c, nil
}

func (r *ChatRepository) SetClientName(ctx context.Context, userPhoneID, threadID, name string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE chats SET client_name = $3 WHERE user_phone_id = $1 AND thread_id = $2`,
		userPhoneID, threadID, name)
	return err
}

func (r *ChatRepository) ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `SELECT chat_id, sender, body, timestamp
FROM chat_messages WHERE chat_id = $1 ORDER BY timestamp`, chatID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ChatMessage, error) {
		var (
			m  domain.ChatMessage
			ts int64
		)
		err := row.Scan(&m.ChatID, &m.Sender, &m.Body, &ts)
		m.Timestamp = time.UnixMilli(ts)
		return m, err
	})
}
