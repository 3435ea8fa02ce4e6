package domain

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// Campaign is the persisted outcome of one campaign send. It is written
// exactly once per orchestration run and never mutated afterwards. Only
// the recipients that were actually sent to are retained.
type Campaign struct {
	UserPhoneID  string
	CampaignID   string
	CampaignName string
	TemplateUsed string
	NumbersSent  []string
	CreatedAt    time.Time
}

// InlineImage is an image payload attached to a campaign request. It is
// uploaded to the messaging transport before any message goes out.
type InlineImage struct {
	Data     []byte
	Filename string
	MimeType string
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewCampaignID returns a collision-resistant id combining the current
// unix-millisecond timestamp in base 36 with six random base-36 characters.
func NewCampaignID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return ts + "-" + string(suffix)
}

// QuotaDay formats t as the calendar-date key of the daily quota ledger.
func QuotaDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
