package port

import (
	"context"

	"wabridge/internal/core/domain"
)

// TemplateMessage is one templated send to one canonical recipient.
// Variables are named slots of the form "varN"; the transport binds body
// parameters positionally, ordered by the trailing integer.
type TemplateMessage struct {
	To           string
	TemplateName string
	UserPhoneID  string
	Variables    map[string]string
	MediaID      string
	LanguageCode string
}

// MessagingGateway is the outbound port to the WhatsApp Graph API.
type MessagingGateway interface {
	// SendTemplate submits one template message. Transport-reported errors
	// come back as *domain.DispatchError. No retries are performed.
	SendTemplate(ctx context.Context, msg TemplateMessage) error

	// UploadMedia uploads an inline image and returns the opaque media id
	// usable in a template header.
	UploadMedia(ctx context.Context, userPhoneID string, img domain.InlineImage) (string, error)

	// ListTemplates returns the business account's registered templates.
	ListTemplates(ctx context.Context) ([]domain.Template, error)
}

// ConnectionPusher delivers an event payload to one live connection.
// domain.ErrConnectionGone reports a defunct target that must be evicted;
// any other error concerns that one delivery only.
type ConnectionPusher interface {
	Push(ctx context.Context, conn domain.Connection, payload []byte) error
}
