package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// ChatService serves chat reads and the client-rename workflow. It
// implements port.ChatUseCase.
type ChatService struct {
	chats  port.ChatRepository
	fanout *Fanout
	logger *slog.Logger
}

// NewChatService creates the service with its collaborators injected.
func NewChatService(chats port.ChatRepository, fanout *Fanout, logger *slog.Logger) *ChatService {
	return &ChatService{chats: chats, fanout: fanout, logger: logger}
}

func (s *ChatService) ListChats(ctx context.Context, userPhoneID string) ([]domain.Chat, error) {
	return s.chats.ListBySender(ctx, userPhoneID)
}

func (s *ChatService) ListMessages(ctx context.Context, threadID string) ([]domain.ChatMessage, error) {
	return s.chats.ListMessages(ctx, threadID)
}

// RenameClient updates the display name of the chat identified by the
// client's phone number, then notifies the sender's live connections.
func (s *ChatService) RenameClient(ctx context.Context, userPhoneID, clientPhone, name string) error {
	chat, err := s.chats.FindByClientPhone(ctx, userPhoneID, clientPhone)
	if err != nil {
		return fmt.Errorf("find chat: %w", err)
	}
	if chat == nil {
		return domain.ErrChatNotFound
	}
	if err = s.chats.SetClientName(ctx, userPhoneID, chat.ThreadID, name); err != nil {
		return fmt.Errorf("update client name: %w", err)
	}

	event := domain.Event{
		ID:     uuid.NewString(),
		Type:   "client_renamed",
		Sender: userPhoneID,
		Data: map[string]string{
			"clientPhone": clientPhone,
			"name":        name,
		},
		Timestamp: time.Now().UnixMilli(),
	}
	return s.fanout.Broadcast(ctx, userPhoneID, event)
}
