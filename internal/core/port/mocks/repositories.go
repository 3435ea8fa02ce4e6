// Package mocks holds hand-written testify doubles for the port
// interfaces, used by the usecase and handler tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wabridge/internal/core/domain"
)

// MockCampaignRepository is a testify double for port.CampaignRepository.
type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Save(ctx context.Context, c domain.Campaign) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCampaignRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Campaign, error) {
	args := m.Called(ctx, userPhoneID)
	var campaigns []domain.Campaign
	if v := args.Get(0); v != nil {
		campaigns = v.([]domain.Campaign)
	}
	return campaigns, args.Error(1)
}

// MockQuotaRepository is a testify double for port.QuotaRepository.
type MockQuotaRepository struct {
	mock.Mock
}

func (m *MockQuotaRepository) Used(ctx context.Context, userPhoneID, day string) (int, error) {
	args := m.Called(ctx, userPhoneID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockQuotaRepository) Reserve(ctx context.Context, userPhoneID, day string, n, limit int) error {
	args := m.Called(ctx, userPhoneID, day, n, limit)
	return args.Error(0)
}

func (m *MockQuotaRepository) Release(ctx context.Context, userPhoneID, day string, n int) error {
	args := m.Called(ctx, userPhoneID, day, n)
	return args.Error(0)
}

// MockChatRepository is a testify double for port.ChatRepository.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Chat, error) {
	args := m.Called(ctx, userPhoneID)
	var chats []domain.Chat
	if v := args.Get(0); v != nil {
		chats = v.([]domain.Chat)
	}
	return chats, args.Error(1)
}

func (m *MockChatRepository) FindByClientPhone(ctx context.Context, userPhoneID, clientPhone string) (*domain.Chat, error) {
	args := m.Called(ctx, userPhoneID, clientPhone)
	var chat *domain.Chat
	if v := args.Get(0); v != nil {
		chat = v.(*domain.Chat)
	}
	return chat, args.Error(1)
}

func (m *MockChatRepository) SetClientName(ctx context.Context, userPhoneID, threadID, name string) error {
	args := m.Called(ctx, userPhoneID, threadID, name)
	return args.Error(0)
}

func (m *MockChatRepository) ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, chatID)
	var messages []domain.ChatMessage
	if v := args.Get(0); v != nil {
		messages = v.([]domain.ChatMessage)
	}
	return messages, args.Error(1)
}

// MockConnectionRepository is a testify double for port.ConnectionRepository.
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) ListBySender(ctx context.Context, userPhoneID string) ([]domain.Connection, error) {
	args := m.Called(ctx, userPhoneID)
	var conns []domain.Connection
	if v := args.Get(0); v != nil {
		conns = v.([]domain.Connection)
	}
	return conns, args.Error(1)
}

func (m *MockConnectionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
