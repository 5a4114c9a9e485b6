package messaging

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means no SMS provider credentials were supplied.
	ErrNotConfigured = errors.New("messaging: sms provider not configured")
	// ErrInvalidRecipient means the number is not in +<digits> form.
	ErrInvalidRecipient = errors.New("messaging: recipient must be in international format starting with +")
	// ErrEmptyMessage means the message body is blank.
	ErrEmptyMessage = errors.New("messaging: message is required")
	// ErrNoRecipients means a bulk send was requested with no numbers.
	ErrNoRecipients = errors.New("messaging: at least one recipient is required")
)

// ProviderError carries the provider's own failure detail. StatusCode is 0
// when the request never produced an HTTP response.
type ProviderError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s send failed: %s", e.Provider, e.Detail)
	}
	return fmt.Sprintf("%s send failed: status %d: %s", e.Provider, e.StatusCode, e.Detail)
}

// IsInputError reports whether err is a caller mistake rather than a
// configuration or delivery failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidRecipient) || errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrNoRecipients)
}
