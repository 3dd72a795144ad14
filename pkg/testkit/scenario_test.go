package testkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/muthuvel/santhai/pkg/testkit"
)

// testHandler powers the self-tests. App-level suites pass the real
// kernel handler instead.
var testHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/health" {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
		return
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"not found"}`)) //nolint:errcheck
})

func TestRunHealthCheck(t *testing.T) {
	testkit.Run(t, testHandler, "fixtures/health_check.json")
}

func TestLoadScenarioWithMockSteps(t *testing.T) {
	mailer := testkit.NewFuncMocker("sendmail")
	mailer.Mock().On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
	testkit.RegisterMocker("sendmail", mailer)

	s, err := testkit.LoadScenario("fixtures/resend_confirmation.json")
	if err != nil {
		t.Fatalf("load scenario: %v", err)
	}
	testkit.DumpScenario(s)

	assert.Equal(t, "Resend order confirmation - Twilio + email", s.Name)
	assert.Equal(t, "POST", s.RequestMethod)
	assert.Equal(t, 200, s.ExpectedCode)
	assert.True(t, s.IsMockRequired)
	assert.Len(t, s.NetUtilMockStep, 2)

	httpStep := s.NetUtilMockStep[0]
	assert.Equal(t, "httprequest", httpStep.Method)
	assert.True(t, httpStep.IsMock)
	assert.Equal(t, "https://api.twilio.com/2010-04-01/", httpStep.MatchURL)
	assert.NotEmpty(t, httpStep.ReturnData.Body)

	mailStep := s.NetUtilMockStep[1]
	assert.Equal(t, "sendmail", mailStep.Method)
	assert.True(t, mailStep.IsMock)
}

func TestMockTransportURLMatching(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "twilio match",
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:   "httprequest",
				IsMock:   true,
				MatchURL: "https://api.twilio.com/",
				ReturnData: testkit.MockReturnData{
					StatusCode: 201,
					Body:       "eyJzaWQiOiJTTTEifQ==",
				},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodPost, "https://api.twilio.com/2010-04-01/Accounts/AC1/Messages.json", nil)
	resp, err := mt.RoundTrip(req)

	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Empty(t, mt.AssertAllCalled())
}

func TestMockTransportUnmatchedCallFails(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "unmatched mock",
		IsMockRequired: true,
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:     "httprequest",
				IsMock:     true,
				MatchURL:   "https://api.twilio.com/",
				ReturnData: testkit.MockReturnData{StatusCode: 200},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodGet, "https://elsewhere.example.com/api", nil)
	_, err := mt.RoundTrip(req)

	assert.Error(t, err)
}

func TestAssertJSONBodyIgnoresOrder(t *testing.T) {
	s := &testkit.Scenario{Name: "json assert", ExpectedCode: 200}

	expected := []byte(`{"sku":"SANVE0001","price":40}`)
	actual := []byte(`{"price":  40, "sku": "SANVE0001"}`)
	testkit.AssertJSONBody(t, s, expected, actual)
}
