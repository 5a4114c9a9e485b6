package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/eventpulse-api/pkg/logging"
)

func TestServiceUnconfigured(t *testing.T) {
	svc := NewService(nil, "", "twilio: TWILIO_ACCOUNT_SID missing", logging.Discard(), nil)
	assert.False(t, svc.Configured())
	assert.Empty(t, svc.Provider())
	assert.Equal(t, "twilio: TWILIO_ACCOUNT_SID missing", svc.Reason())

	_, err := svc.SendOne(context.Background(), "+15555550100", "hi")
	require.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, IsInputError(err))

	var nilSvc *Service
	assert.False(t, nilSvc.Configured())
	assert.NotEmpty(t, nilSvc.Reason())
}

func TestServiceDefaultReason(t *testing.T) {
	svc := NewService(nil, "", "", nil, nil)
	assert.Equal(t, "no SMS providers configured", svc.Reason())
}

func TestSendOneValidation(t *testing.T) {
	sender := &fakeSender{}
	svc := NewService(sender, "", "", logging.Discard(), nil)
	assert.Equal(t, "fake", svc.Provider())

	_, err := svc.SendOne(context.Background(), "15555550100", "hi")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
	assert.True(t, IsInputError(err))

	_, err = svc.SendOne(context.Background(), "+", "hi")
	assert.ErrorIs(t, err, ErrInvalidRecipient)

	_, err = svc.SendOne(context.Background(), "+15555550100", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	assert.Empty(t, sender.sent, "validation failures must not reach the provider")
}

func TestSendOneSuccess(t *testing.T) {
	sender := &fakeSender{}
	obs := &recordingObserver{}
	svc := NewService(sender, "twilio", "", logging.Discard(), obs)

	res, err := svc.SendOne(context.Background(), " +1 555 555 0100", "hello")
	require.NoError(t, err)
	assert.Equal(t, Result{To: "+15555550100", Status: StatusSuccess, MessageID: "SM001", Kind: OutcomeDelivered}, res)
	assert.Equal(t, []string{"+15555550100"}, sender.sent)
	assert.Equal(t, []string{"twilio:sent"}, obs.events)
}

func TestSendOneDeliveryFailure(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{
		"+15555550100": &ProviderError{Provider: "twilio", StatusCode: 400, Detail: "code 21211: The 'To' number is not a valid phone number."},
	}}
	obs := &recordingObserver{}
	svc := NewService(sender, "twilio", "", logging.Discard(), obs)

	res, err := svc.SendOne(context.Background(), "+15555550100", "hello")
	require.NoError(t, err)
	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, OutcomeDeliveryFailed, res.Kind)
	assert.Equal(t, "delivery", res.ErrorType)
	assert.Equal(t, "code 21211: The 'To' number is not a valid phone number.", res.Error)
	assert.False(t, res.Succeeded())
	assert.Equal(t, []string{"twilio:failed"}, obs.events)
}

func TestSendOnePlainErrorDetail(t *testing.T) {
	sender := &fakeSender{failFor: map[string]error{"+15555550100": errors.New("dial tcp: timeout")}}
	svc := NewService(sender, "", "", logging.Discard(), nil)

	res, err := svc.SendOne(context.Background(), "+15555550100", "hello")
	require.NoError(t, err)
	assert.Equal(t, "dial tcp: timeout", res.Error)
}
