package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"wabridge/internal/core/domain"
	"wabridge/internal/core/port"
)

// MockMessagingGateway is a testify double for port.MessagingGateway.
type MockMessagingGateway struct {
	mock.Mock
}

func (m *MockMessagingGateway) SendTemplate(ctx context.Context, msg port.TemplateMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockMessagingGateway) UploadMedia(ctx context.Context, userPhoneID string, img domain.InlineImage) (string, error) {
	args := m.Called(ctx, userPhoneID, img)
	return args.String(0), args.Error(1)
}

func (m *MockMessagingGateway) ListTemplates(ctx context.Context) ([]domain.Template, error) {
	args := m.Called(ctx)
	var templates []domain.Template
	if v := args.Get(0); v != nil {
		templates = v.([]domain.Template)
	}
	return templates, args.Error(1)
}

// MockConnectionPusher is a testify double for port.ConnectionPusher.
type MockConnectionPusher struct {
	mock.Mock
}

func (m *MockConnectionPusher) Push(ctx context.Context, conn domain.Connection, payload []byte) error {
	args := m.Called(ctx, conn, payload)
	return args.Error(0)
}
