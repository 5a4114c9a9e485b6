package bootstrap

import (
	"strings"
	"testing"

	appconfig "github.com/wolfman30/eventpulse-api/internal/config"
	"github.com/wolfman30/eventpulse-api/internal/messaging"
	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

func TestBuildSMSServiceUnconfigured(t *testing.T) {
	svc := BuildSMSService(&appconfig.Config{SMSProvider: "auto"}, logging.Discard(), nil)
	if svc.Configured() {
		t.Fatalf("expected unconfigured service")
	}
	if !strings.Contains(svc.Reason(), "TWILIO_ACCOUNT_SID missing") {
		t.Fatalf("expected reason to name missing credentials, got %q", svc.Reason())
	}
}

func TestBuildSMSServiceNilConfig(t *testing.T) {
	svc := BuildSMSService(nil, logging.Discard(), nil)
	if svc == nil || svc.Configured() {
		t.Fatalf("expected non-nil unconfigured service")
	}
}

func TestBuildSMSServiceSelectsProvider(t *testing.T) {
	cfg := &appconfig.Config{
		SMSProvider:              "auto",
		TelnyxAPIKey:             "key",
		TelnyxMessagingProfileID: "profile",
	}
	svc := BuildSMSService(cfg, logging.Discard(), nil)
	if !svc.Configured() {
		t.Fatalf("expected configured service, reason %q", svc.Reason())
	}
	if svc.Provider() != messaging.SMSProviderTelnyx {
		t.Fatalf("expected telnyx, got %q", svc.Provider())
	}

	cfg.TwilioAccountSID = "AC1"
	cfg.TwilioAuthToken = "tok"
	cfg.TwilioFromNumber = "+15555550100"
	svc = BuildSMSService(cfg, logging.Discard(), nil)
	if svc.Provider() != messaging.SMSProviderTwilio {
		t.Fatalf("expected twilio preferred in auto mode, got %q", svc.Provider())
	}
}
