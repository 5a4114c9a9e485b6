package messaging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

const (
	// SMSProviderAuto tries Twilio first, then Telnyx.
	SMSProviderAuto = "auto"
	// SMSProviderTwilio forces the Twilio sender when credentials exist.
	SMSProviderTwilio = "twilio"
	// SMSProviderTelnyx forces the Telnyx sender when credentials exist.
	SMSProviderTelnyx = "telnyx"
)

// Sender delivers one SMS and returns the provider-assigned message id.
type Sender interface {
	Name() string
	Send(ctx context.Context, to, body string) (string, error)
}

// ProviderSelectionConfig captures the credentials required to build a sender.
type ProviderSelectionConfig struct {
	Preference       string
	Timeout          time.Duration
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TelnyxAPIKey     string
	TelnyxProfileID  string
	TelnyxFromNumber string
	TwilioBaseURL    string
	TelnyxBaseURL    string
}

// BuildSender instantiates a Sender based on the preferred provider.
// It returns the sender, the provider that was selected, and a reason when no
// provider could be initialized.
func BuildSender(cfg ProviderSelectionConfig, logger *logging.Logger) (Sender, string, string) {
	if logger == nil {
		logger = logging.Default()
	}
	preference := strings.ToLower(strings.TrimSpace(cfg.Preference))
	if preference == "" {
		preference = SMSProviderAuto
	}

	missing := map[string]string{}
	var twilioSender, telnyxSender Sender

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		twilioSender = NewTwilioSender(TwilioConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			From:       cfg.TwilioFromNumber,
			BaseURL:    cfg.TwilioBaseURL,
			Timeout:    cfg.Timeout,
			Logger:     logger,
		})
	} else {
		var reasons []string
		if cfg.TwilioAccountSID == "" {
			reasons = append(reasons, "TWILIO_ACCOUNT_SID missing")
		}
		if cfg.TwilioAuthToken == "" {
			reasons = append(reasons, "TWILIO_AUTH_TOKEN missing")
		}
		if cfg.TwilioFromNumber == "" {
			reasons = append(reasons, "TWILIO_FROM_NUMBER missing")
		}
		missing[SMSProviderTwilio] = strings.Join(reasons, ", ")
	}

	if cfg.TelnyxAPIKey != "" && (cfg.TelnyxFromNumber != "" || cfg.TelnyxProfileID != "") {
		telnyxSender = NewTelnyxSender(TelnyxConfig{
			APIKey:             cfg.TelnyxAPIKey,
			MessagingProfileID: cfg.TelnyxProfileID,
			From:               cfg.TelnyxFromNumber,
			BaseURL:            cfg.TelnyxBaseURL,
			Timeout:            cfg.Timeout,
			Logger:             logger,
		})
	} else {
		var reasons []string
		if cfg.TelnyxAPIKey == "" {
			reasons = append(reasons, "TELNYX_API_KEY missing")
		}
		if cfg.TelnyxFromNumber == "" && cfg.TelnyxProfileID == "" {
			reasons = append(reasons, "TELNYX_FROM_NUMBER or TELNYX_MESSAGING_PROFILE_ID missing")
		}
		missing[SMSProviderTelnyx] = strings.Join(reasons, ", ")
	}

	switch preference {
	case SMSProviderTwilio:
		if twilioSender != nil {
			return twilioSender, SMSProviderTwilio, ""
		}
		return nil, "", fmt.Sprintf("%s: %s", SMSProviderTwilio, missing[SMSProviderTwilio])
	case SMSProviderTelnyx:
		if telnyxSender != nil {
			return telnyxSender, SMSProviderTelnyx, ""
		}
		return nil, "", fmt.Sprintf("%s: %s", SMSProviderTelnyx, missing[SMSProviderTelnyx])
	case SMSProviderAuto:
	default:
		return nil, "", fmt.Sprintf("unknown SMS_PROVIDER %q", preference)
	}

	if twilioSender != nil {
		return twilioSender, SMSProviderTwilio, ""
	}
	if telnyxSender != nil {
		return telnyxSender, SMSProviderTelnyx, ""
	}
	return nil, "", fmt.Sprintf("%s: %s; %s: %s",
		SMSProviderTwilio, missing[SMSProviderTwilio],
		SMSProviderTelnyx, missing[SMSProviderTelnyx])
}
