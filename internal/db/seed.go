package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo chats, messages and connections for local development.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	sender := "demo-phone-id"
	now := time.Now()

	for i := 1; i <= 5; i++ {
		threadID := fmt.Sprintf("thread-%d", i)
		clientPhone := fmt.Sprintf("+3460000000%d", i)
		clientName := fmt.Sprintf("Client %d", i)
		createdAt := now.AddDate(0, 0, -i).UnixMilli()
		_, err := db.Exec(ctx, `INSERT INTO chats
    (user_phone_id, thread_id, client_phone, client_name, created_at)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`,
			sender, threadID, clientPhone, clientName, createdAt)
		if err != nil {
			return err
		}

		// a short back-and-forth per chat
		for j := 0; j < 4+r.Intn(4); j++ {
			who := clientPhone
			if j%2 == 1 {
				who = sender
			}
			body := fmt.Sprintf("Message %d in %s", j+1, threadID)
			ts := createdAt + int64(j)*60_000
			_, err = db.Exec(ctx, `INSERT INTO chat_messages (chat_id, sender, body, timestamp)
VALUES ($1,$2,$3,$4)`, threadID, who, body, ts)
			if err != nil {
				return err
			}
		}
	}

	for i := 0; i < 3; i++ {
		_, err := db.Exec(ctx, `INSERT INTO connections (id, user_phone_id)
VALUES ($1,$2) ON CONFLICT DO NOTHING`, uuid.NewString(), sender)
		if err != nil {
			return err
		}
	}
	return nil
}
