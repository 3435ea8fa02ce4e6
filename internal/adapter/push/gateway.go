// Package push delivers fan-out payloads to individual client connections
// through the connection registry's management endpoint.
package push

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"wabridge/internal/config/configs"
	"wabridge/internal/core/domain"
)

// Gateway posts event payloads to the registry endpoint. It implements
// port.ConnectionPusher. A 410 from the registry means the connection no
// longer exists and is reported as domain.ErrConnectionGone.
type Gateway struct {
	httpClient *http.Client
	endpoint   string
}

// NewGateway builds a push gateway from configuration.
func NewGateway(cfg configs.Push) *Gateway {
	return &Gateway{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
	}
}

// Push delivers one payload to one connection.
func (g *Gateway) Push(ctx context.Context, conn domain.Connection, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/connections/%s", g.endpoint, conn.ID), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone:
		return domain.ErrConnectionGone
	case resp.StatusCode >= 300:
		return fmt.Errorf("push to %s: status %d", conn.ID, resp.StatusCode)
	}
	return nil
}
