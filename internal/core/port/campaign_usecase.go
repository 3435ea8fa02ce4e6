package port

import (
	"context"

	"wabridge/internal/core/domain"
)

// CampaignUseCase defines the campaign operations exposed to the HTTP
// layer. This is the primary port into the application domain. Mock
// implementations exist for testing.
type CampaignUseCase interface {
	// Send runs the full campaign workflow: validation, quota enforcement,
	// number normalization, optional media upload, batched dispatch and
	// persistence. Per-recipient failures are reported inside the result,
	// not as an error; an error means the whole run aborted or the record
	// could not be persisted.
	Send(ctx context.Context, req SendCampaignRequest) (*SendCampaignResult, error)

	// List returns the sender's campaigns, newest first, together with the
	// remaining daily quota.
	List(ctx context.Context, userPhoneID string) ([]domain.Campaign, int, error)

	// Templates returns the templates registered with the business account.
	Templates(ctx context.Context) ([]domain.Template, error)
}

// SendCampaignRequest carries the input of one campaign send. The sender
// identity comes from the authenticated request, not the body.
type SendCampaignRequest struct {
	UserPhoneID  string
	TemplateID   string
	TemplateName string
	CampaignName string
	Numbers      []string
	Variables    map[string]string
	Image        *domain.InlineImage
	LanguageCode string
}

// FailedSend pairs a recipient with the transport error it hit.
type FailedSend struct {
	Number string `json:"number"`
	Error  string `json:"error"`
}

// SendCampaignResult reports the settled outcome of a campaign send.
type SendCampaignResult struct {
	CampaignID string
	Successful []string
	Failed     []FailedSend
}

// ChatUseCase exposes chat reads and the client-rename workflow.
type ChatUseCase interface {
	ListChats(ctx context.Context, userPhoneID string) ([]domain.Chat, error)
	ListMessages(ctx context.Context, threadID string) ([]domain.ChatMessage, error)

	// RenameClient updates the display name of a chat client and fans the
	// change out to the sender's live connections.
	RenameClient(ctx context.Context, userPhoneID, clientPhone, name string) error
}
