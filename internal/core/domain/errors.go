package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoValidRecipients is returned when normalization drops every
	// recipient of a campaign. No side effects have happened at that point.
	ErrNoValidRecipients = errors.New("no valid recipients after normalization")

	// ErrChatNotFound reports a lookup for a chat that does not exist.
	ErrChatNotFound = errors.New("chat not found")

	// ErrConnectionGone marks a push target the transport reports as
	// defunct. The fan-out evicts the connection instead of surfacing this.
	ErrConnectionGone = errors.New("connection gone")
)

// BadRequestError reports a missing or malformed request field.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string { return "bad request: " + e.Reason }

// QuotaExceededError reports that a send would breach the daily cap.
type QuotaExceededError struct {
	Limit     int
	Remaining int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily message limit of %d reached, %d remaining", e.Limit, e.Remaining)
}

// MediaUploadError aborts a campaign before any message is sent: no quota
// is consumed and no record is persisted.
type MediaUploadError struct {
	Err error
}

func (e *MediaUploadError) Error() string { return "media upload failed: " + e.Err.Error() }

func (e *MediaUploadError) Unwrap() error { return e.Err }

// DispatchError is a per-recipient transport failure. It is collected into
// the campaign result, never fatal for the run.
type DispatchError struct {
	Recipient string
	Message   string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s failed: %s", e.Recipient, e.Message)
}
