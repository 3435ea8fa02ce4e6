package port

import (
	"context"

	"wabridge/internal/core/domain"
)

// ChatRepository reads chats and updates client display names.
// FindByClientPhone returns nil without error when no chat matches.
type ChatRepository interface {
	ListBySender(ctx context.Context, userPhoneID string) ([]domain.Chat, error)
	FindByClientPhone(ctx context.Context, userPhoneID, clientPhone string) (*domain.Chat, error)
	SetClientName(ctx context.Context, userPhoneID, threadID, name string) error
	ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error)
}

// ConnectionRepository reads and evicts live push connections. The
// registry owns the records; eviction is the only write this service does.
type ConnectionRepository interface {
	ListBySender(ctx context.Context, userPhoneID string) ([]domain.Connection, error)
	Delete(ctx context.Context, id string) error
}
