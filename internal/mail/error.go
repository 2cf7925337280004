package mail

import "errors"

var (
	// -- Validation & Input --
	ErrRecipientRequired = errors.New("recipient is required")
	ErrInvalidRecipient  = errors.New("invalid recipient address")

	// -- Configuration --
	ErrNotConfigured = errors.New("mail relay is not configured")

	// -- External Service --
	ErrSendFailed = errors.New("failed to send email")
)
