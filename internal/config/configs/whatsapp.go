package configs

import "time"

// WhatsApp holds credentials and endpoints for the Graph API messaging
// client. Token and BusinessAccountID have no sane defaults and must be
// provided.
type WhatsApp struct {
	// Token is the Graph API bearer token used for every outbound call.
	Token string `env:"TOKEN,required"`
	// BusinessAccountID identifies the WhatsApp business account that owns
	// the message templates.
	BusinessAccountID string `env:"BUSINESS_ACCOUNT_ID,required"`
	// BaseURL is the Graph API root. Override it to pin an API version or
	// to point the client at a stub in tests.
	BaseURL string `env:"BASE_URL" envDefault:"https://graph.facebook.com/v21.0"`
	// Timeout bounds each outbound HTTP call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}
