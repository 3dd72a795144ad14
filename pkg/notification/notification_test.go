package notification_test

import (
	"encoding/base64"
	"testing"

	santhaihttp "github.com/muthuvel/santhai/pkg/http"
	"github.com/muthuvel/santhai/pkg/notification"
	"github.com/muthuvel/santhai/pkg/testkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockOutgoing installs a MockTransport that answers outgoing calls whose URL
// starts with matchURL. Restores the real transport when the test ends.
func mockOutgoing(t *testing.T, matchURL string, status int, body string) *testkit.MockTransport {
	t.Helper()

	sc := &testkit.Scenario{
		Name:           t.Name(),
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{{
			Method:   "httprequest",
			IsMock:   true,
			MatchURL: matchURL,
			ReturnData: testkit.MockReturnData{
				StatusCode: status,
				Body:       base64.StdEncoding.EncodeToString([]byte(body)),
			},
		}},
	}

	mt := testkit.NewMockTransport(sc)
	santhaihttp.DefaultClient.Transport = mt
	t.Cleanup(santhaihttp.ResetTransport)
	return mt
}

func TestSendWhatsApp(t *testing.T) {
	mt := mockOutgoing(t, "https://api.twilio.com/", 201, `{"sid":"SM1"}`)

	notification.SetTwilio(notification.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		From:       "+914412345678",
	})

	err := notification.SendWhatsApp(notification.WhatsAppData{
		To:   "+919812345678",
		Body: "Order SAN202608310001 confirmed",
	})
	require.NoError(t, err)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestSendWhatsAppRejectedByTwilio(t *testing.T) {
	mockOutgoing(t, "https://api.twilio.com/", 401, `{"message":"authenticate"}`)

	notification.SetTwilio(notification.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "bad-token",
		From:       "+914412345678",
	})

	err := notification.SendWhatsApp(notification.WhatsAppData{To: "+919812345678", Body: "hi"})
	assert.ErrorContains(t, err, "twilio returned HTTP 401")
}

func TestSendWhatsAppUnconfigured(t *testing.T) {
	notification.SetTwilio(notification.TwilioConfig{})

	err := notification.SendWhatsApp(notification.WhatsAppData{To: "+919812345678", Body: "hi"})
	assert.ErrorContains(t, err, "credentials not configured")

	notification.SetTwilio(notification.TwilioConfig{AccountSID: "AC1", AuthToken: "t", From: "+91"})
	err = notification.SendWhatsApp(notification.WhatsAppData{Body: "hi"})
	assert.ErrorContains(t, err, "recipient is empty")
}

type stockAlert struct {
	url string
}

func (n *stockAlert) Via() []string { return []string{"webhook"} }

func (n *stockAlert) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL:     n.url,
		Payload: map[string]interface{}{"event": "stock.low", "sku": "SANVE0003"},
	}
}

func TestSendWebhookChannel(t *testing.T) {
	mt := mockOutgoing(t, "https://hooks.example.com/", 200, `{"ok":true}`)

	errs := notification.Send("", &stockAlert{url: "https://hooks.example.com/stock"})
	assert.Empty(t, errs)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestSendUnknownChannel(t *testing.T) {
	errs := notification.Send("someone@example.com", badChannel{})
	require.Len(t, errs, 1)
	assert.ErrorContains(t, errs[0], "unknown channel")
}

type badChannel struct{}

func (badChannel) Via() []string { return []string{"pigeon"} }
