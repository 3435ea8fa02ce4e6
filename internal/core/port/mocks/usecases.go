package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// MockCampaignUseCase is a testify double for port.CampaignUseCase.
type MockCampaignUseCase struct {
	mock.Mock
}

func (m *MockCampaignUseCase) Send(ctx context.Context, req port.SendCampaignRequest) (*port.SendCampaignResult, error) {
	args := m.Called(ctx, req)
	var result *port.SendCampaignResult
	if v := args.Get(0); v != nil {
		result = v.(*port.SendCampaignResult)
	}
	return result, args.Error(1)
}

func (m *MockCampaignUseCase) List(ctx context.Context, userPhoneID string) ([]domain.Campaign, int, error) {
	args := m.Called(ctx, userPhoneID)
	var campaigns []domain.Campaign
	if v := args.Get(0); v != nil {
		campaigns = v.([]domain.Campaign)
	}
	return campaigns, args.Int(1), args.Error(2)
}

func (m *MockCampaignUseCase) Templates(ctx context.Context) ([]domain.Template, error) {
	args := m.Called(ctx)
	var templates []domain.Template
	if v := args.Get(0); v != nil {
		templates = v.([]domain.Template)
	}
	return templates, args.Error(1)
}

// MockChatUseCase is a testify double for port.ChatUseCase.
type MockChatUseCase struct {
	mock.Mock
}

func (m *MockChatUseCase) ListChats(ctx context.Context, userPhoneID string) ([]domain.Chat, error) {
	args := m.Called(ctx, userPhoneID)
	var chats []domain.Chat
	if v := args.Get(0); v != nil {
		chats = v.([]domain.Chat)
	}
	return chats, args.Error(1)
}

func (m *MockChatUseCase) ListMessages(ctx context.Context, threadID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, threadID)
	var messages []domain.ChatMessage
	if v := args.Get(0); v != nil {
		messages = v.([]domain.ChatMessage)
	}
	return messages, args.Error(1)
}

func (m *MockChatUseCase) RenameClient(ctx context.Context, userPhoneID, clientPhone, name string) error {
	args := m.Called(ctx, userPhoneID, clientPhone, name)
	return args.Error(0)
}
