package messaging

import (
	"fmt"
	"strings"
)

// NormalizeRecipient strips formatting from a phone number, keeping digits and
// a single leading +. Numbers without the + marker are rejected rather than
// guessed at, so a local number is never routed to the wrong country.
func NormalizeRecipient(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(value))
	for i, r := range value {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	normalized := b.String()
	if !strings.HasPrefix(normalized, "+") || len(normalized) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidRecipient, raw)
	}
	return normalized, nil
}
