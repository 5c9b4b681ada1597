package mailx

import (
	"context"
	"testing"

	"github.com/Abraxas-365/mailer/pkg/errx"
	"github.com/Abraxas-365/mailer/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(factory *fakeFactory, records map[kernel.UserID]*UserSettings) *Service {
	return NewService(NewResolver(&memFinder{records: records}, testDefaults), NewBuilder(factory))
}

func TestSendOneValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     SendRequest
		wantMsg string
	}{
		{"missing to", SendRequest{Subject: "Hi", Text: "body"}, "Recipient email (to) is required"},
		{"blank to list", SendRequest{To: AddressList{" "}, Subject: "Hi", Text: "body"}, "Recipient email (to) is required"},
		{"missing subject", SendRequest{To: AddressList{"a@x.test"}, Text: "body"}, "Subject is required"},
		{"missing content", SendRequest{To: AddressList{"a@x.test"}, Subject: "Hi"}, "Email content (text or html) is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			_, err := newTestService(factory, nil).SendOne(context.Background(), tt.req)

			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, 400, e.HTTPStatus)
			assert.Equal(t, tt.wantMsg, e.Message)
			assert.Empty(t, factory.built, "no transport is built for invalid input")
		})
	}
}

func TestSendOneUsesDefaults(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestService(factory, nil)

	receipt, err := svc.SendOne(context.Background(), SendRequest{
		To:      AddressList{"a@x.test", "b@x.test"},
		Cc:      AddressList{"c@x.test"},
		Subject: "Hello",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.MessageID)

	require.Len(t, factory.built, 1)
	transport := factory.built[0]
	assert.Equal(t, ImplicitTLS, transport.settings.Mode)
	require.Len(t, transport.sent, 1)
	env := transport.sent[0]
	assert.Equal(t, testDefaults.Username, env.From)
	assert.Equal(t, []string{"a@x.test", "b@x.test"}, env.To)
	assert.Equal(t, []string{"c@x.test"}, env.Cc)
	assert.Nil(t, env.Bcc)
}

func TestSendOneDeliversThroughAlternate(t *testing.T) {
	factory := newFakeFactory()
	factory.verifyErrs[StartTLS] = errWrongVersion
	svc := newTestService(factory, map[kernel.UserID]*UserSettings{
		"u1": {Host: "smtp.user.test", Port: 587, Username: "me@user.test", Password: "pw"},
	})

	_, err := svc.SendOne(context.Background(), SendRequest{
		To: AddressList{"a@x.test"}, Subject: "Hello", Text: "hi", UserID: "u1",
	})
	require.NoError(t, err)

	require.Len(t, factory.built, 2)
	assert.Empty(t, factory.built[0].sent, "the failed handle is never used for delivery")
	require.Len(t, factory.built[1].sent, 1)
	assert.Equal(t, ImplicitTLS, factory.built[1].settings.Mode)
	assert.Equal(t, "me@user.test", factory.built[1].sent[0].From)
}

func TestSendOneClassifiesDeliveryFailure(t *testing.T) {
	factory := newFakeFactory()
	factory.sendErrs["a@x.test"] = errBadAuth

	_, err := newTestService(factory, nil).SendOne(context.Background(), SendRequest{
		To: AddressList{"a@x.test"}, Subject: "Hello", Text: "hi",
	})
	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, ErrAuthentication.Code, e.Code)
	assert.Equal(t, "SMTP authentication failed. Please check your username and password.", e.Message)
}

func TestSendBulkIsolatesFailures(t *testing.T) {
	factory := newFakeFactory()
	factory.sendErrs["bad@x.test"] = errMailbox
	svc := newTestService(factory, nil)

	result, err := svc.SendBulk(context.Background(), BulkRequest{
		Recipients: []string{"bad@x.test", "good@x.test"},
		Subject:    "News",
		Text:       "hello",
	})
	require.NoError(t, err)

	require.Len(t, result.Results, 2)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "bad@x.test", result.Results[0].Recipient)
	assert.False(t, result.Results[0].Success)
	assert.Equal(t, errMailbox.Error(), result.Results[0].Error)
	assert.Equal(t, "good@x.test", result.Results[1].Recipient)
	assert.True(t, result.Results[1].Success)
	assert.NotEmpty(t, result.Results[1].MessageID)

	assert.Len(t, result.Succeeded(), 1)
	assert.Len(t, result.Failures(), 1)

	require.Len(t, factory.built, 1)
	assert.Zero(t, factory.built[0].verifyCalls)
	assert.Equal(t, []string{"good@x.test"}, factory.built[0].sent[0].To)
}

func TestSendBulkValidation(t *testing.T) {
	factory := newFakeFactory()
	_, err := newTestService(factory, nil).SendBulk(context.Background(), BulkRequest{Subject: "x", Text: "y"})

	var e *errx.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "Recipients array is required and must not be empty", e.Message)
	assert.Empty(t, factory.built)
}

func TestVerifyReport(t *testing.T) {
	factory := newFakeFactory()
	factory.verifyErrs[ImplicitTLS] = errWrongVersion
	svc := newTestService(factory, map[kernel.UserID]*UserSettings{
		"u1": {Host: "smtp.user.test", Port: 465, Username: "me@user.test"},
	})

	report, err := svc.Verify(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, report.FromUserSettings)
	assert.True(t, report.UsedFallback)
	assert.Equal(t, Plain, report.Mode)
}
