package messaging

import (
	"errors"
	"testing"
)

func TestNormalizeRecipient(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+15555550100", "+15555550100", false},
		{" +1 (555) 555-0100 ", "+15555550100", false},
		{"+91 98765-43210", "+919876543210", false},
		{"++44 20 7946 0958", "+442079460958", false},
		{"15555550100", "", true},
		{"bad-number", "", true},
		{"+", "", true},
		{"", "", true},
		{"555+1234", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeRecipient(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRecipient) {
					t.Fatalf("expected ErrInvalidRecipient, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
