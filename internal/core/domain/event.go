package domain

// Event is the payload fanned out to every live connection of a sender.
// It is delivered verbatim as JSON.
type Event struct {
	ID        string            `json:"eventId"`
	Type      string            `json:"type"`
	Sender    string            `json:"sender"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp int64             `json:"timestamp"`
}
