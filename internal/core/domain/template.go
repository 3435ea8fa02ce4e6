package domain

import "encoding/json"

// Template describes a message template registered with the WhatsApp
// Business account. The transport owns templates; this service references
// them by name and language only.
type Template struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     string          `json:"status"`
	Language   string          `json:"language"`
	Components json.RawMessage `json:"components,omitempty"`
}
