package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// Fanout delivers events to every live connection of a sender. Deliveries
// run concurrently and independently: one failing connection never blocks
// the others, and a connection the transport reports gone is evicted from
// the registry instead of surfacing an error.
type Fanout struct {
	connections port.ConnectionRepository
	pusher      port.ConnectionPusher
	logger      *slog.Logger
}

// NewFanout creates the fan-out with its collaborators injected.
func NewFanout(connections port.ConnectionRepository, pusher port.ConnectionPusher, logger *slog.Logger) *Fanout {
	return &Fanout{connections: connections, pusher: pusher, logger: logger}
}

// Broadcast sends the event to all connections registered for the sender.
// Delivery is best effort; only a registry read failure is returned.
func (f *Fanout) Broadcast(ctx context.Context, userPhoneID string, event domain.Event) error {
	conns, err := f.connections.ListBySender(ctx, userPhoneID)
	if err != nil {
		return fmt.Errorf("list connections: %w", err)
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.pusher.Push(ctx, conn, payload)
			switch {
			case errors.Is(err, domain.ErrConnectionGone):
				f.logger.Info("evicting stale connection", slog.String("connection", conn.ID))
				if err := f.connections.Delete(ctx, conn.ID); err != nil {
					f.logger.Error("connection eviction failed",
						slog.String("connection", conn.ID), slog.Any("error", err))
				}
			case err != nil:
				f.logger.Error("push failed",
					slog.String("connection", conn.ID), slog.Any("error", err))
			}
		}()
	}
	wg.Wait()
	return nil
}
