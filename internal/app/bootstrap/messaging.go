package bootstrap

import (
	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/internal/messaging"
	"github.com/wolfman30/eventpulse-api/internal/observability/metrics"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

// BuildSMSService selects an SMS provider from config. The returned service is
// never nil; when no provider could be built it reports why via Reason.
func BuildSMSService(cfg *appconfig.Config, logger *logging.Logger, m *metrics.Metrics) *messaging.Service {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg == nil {
		return messaging.NewService(nil, "", "missing config", logger, m)
	}

	selection := messaging.ProviderSelectionConfig{
		Preference:       cfg.SMSProvider,
		Timeout:          cfg.SMSTimeout,
		TwilioAccountSID: cfg.TwilioAccountSID,
		TwilioAuthToken:  cfg.TwilioAuthToken,
		TwilioFromNumber: cfg.TwilioFromNumber,
		TelnyxAPIKey:     cfg.TelnyxAPIKey,
		TelnyxProfileID:  cfg.TelnyxMessagingProfileID,
		TelnyxFromNumber: cfg.TelnyxFromNumber,
	}
	sender, provider, reason := messaging.BuildSender(selection, logger)
	if sender == nil {
		logger.Warn("sms disabled", "reason", reason)
	} else {
		logger.Info("sms provider enabled", "provider", provider)
	}
	return messaging.NewService(sender, provider, reason, logger, m)
}
