package domain

import "time"

// Chat is one conversation between a sender endpoint and a client number.
type Chat struct {
	UserPhoneID string
	ThreadID    string
	ClientPhone string
	ClientName  string
	CreatedAt   time.Time
}

// ChatMessage is a single message inside a chat thread.
type ChatMessage struct {
	ChatID    string
	Sender    string
	Body      string
	Timestamp time.Time
}

// Connection is a live client connection registered for push delivery.
// The registry owns the record; this service only reads it and evicts it
// when the transport reports it gone.
type Connection struct {
	ID          string
	UserPhoneID string
}
