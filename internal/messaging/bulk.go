package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
)

// Bulk summary status labels. A run where nothing succeeded is still reported
// as partial-success; callers must check Sent.
const (
	BulkStatusSuccess        = "success"
	BulkStatusPartialSuccess = "partial-success"
)

// Recipients decodes from either a JSON string or an array of strings.
type Recipients []string

func (r *Recipients) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*r = Recipients{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("messaging: recipients must be a string or an array of strings")
	}
	*r = many
	return nil
}

// Summary aggregates a bulk send.
type Summary struct {
	Status  string   `json:"status"`
	Sent    int      `json:"sent"`
	Total   int      `json:"total"`
	Results []Result `json:"results"`
}

// Dispatcher sends one message to many recipients, one at a time.
type Dispatcher struct {
	svc *Service
}

func NewDispatcher(svc *Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// SendBulk normalizes and sends to each recipient in order. A malformed number
// is recorded as a normalization error and never sent; one recipient's
// failure never stops the rest.
func (d *Dispatcher) SendBulk(ctx context.Context, to Recipients, message string) (Summary, error) {
	if !d.svc.Configured() {
		return Summary{}, ErrNotConfigured
	}
	if len(to) == 0 {
		return Summary{}, ErrNoRecipients
	}
	if strings.TrimSpace(message) == "" {
		return Summary{}, ErrEmptyMessage
	}

	summary := Summary{
		Total:   len(to),
		Results: make([]Result, 0, len(to)),
	}
	for _, raw := range to {
		normalized, err := NormalizeRecipient(raw)
		if err != nil {
			d.svc.observe("invalid")
			summary.Results = append(summary.Results, Result{
				To:        strings.TrimSpace(raw),
				Status:    StatusError,
				Error:     "invalid phone number format; must start with + and country code",
				ErrorType: "normalization",
				Kind:      OutcomeInvalidRecipient,
			})
			continue
		}
		result := d.svc.deliver(ctx, normalized, message)
		if result.Succeeded() {
			summary.Sent++
		}
		summary.Results = append(summary.Results, result)
	}

	summary.Status = BulkStatusPartialSuccess
	if summary.Sent == summary.Total {
		summary.Status = BulkStatusSuccess
	}
	d.svc.logger.Info("bulk sms finished", "provider", d.svc.provider, "sent", summary.Sent, "total", summary.Total)
	return summary, nil
}
