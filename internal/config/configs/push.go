package configs

import "time"

// Push configures the gateway used to fan events out to live client
// connections.
type Push struct {
	// Endpoint is the base URL of the connection push service.
	Endpoint string `env:"ENDPOINT" envDefault:"http://localhost:8081"`
	// Timeout bounds each push call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}
