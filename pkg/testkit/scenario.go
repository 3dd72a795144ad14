// Package testkit drives REST API tests from JSON scenario files.
//
// Each scenario describes the request to fire, the expected status and
// body, and the outgoing calls to intercept (Twilio, webhooks, mail).
// A fixtures directory pairs each scenario with its body files:
//
//	fixtures/
//	  place_order.json        scenario
//	  place_order_req.json    request body
//	  place_order_res.json    expected response body
//
//	func TestAPI(t *testing.T) {
//	    handler := kernel.NewHTTPKernel().Handler()
//	    testkit.RunDir(t, handler, "fixtures")
//	}
package testkit

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario is one REST API test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestFileName string            `json:"requestFileName"` // request body file, relative to the scenario dir
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ResponseFileName   string `json:"responseFileName"`
	ExpectedCode       int    `json:"expectedCode"`
	ExpectedStatusCode int    `json:"expectedStatusCode"` // accepted alias for expectedCode

	// Behaviour flags
	IsDbMocked             bool `json:"isDbMocked"`
	IsMockRequired         bool `json:"isMockRequired"` // fail when an outgoing call has no matching mock
	IsConfigChangeRequired bool `json:"isConfigChangeRequired"`

	// Mock steps, matched in definition order.
	NetUtilMockStep []MockStep `json:"netUtilMockStep"`

	// resolved at load time
	dir string
}

// MockStep describes one intercepted outgoing call.
//
// Built-in methods: "httprequest" (pkg/http calls), "sendmail",
// "whatsapp". Any other string dispatches to a registered FuncMocker.
type MockStep struct {
	Method string `json:"method"`

	// IsMock true intercepts the call and returns returnData. False
	// documents a real dependency the scenario intentionally hits.
	IsMock bool `json:"isMock"`

	// MatchURL prefix-matches the outgoing URL for "httprequest" steps.
	// Empty matches any URL.
	MatchURL string `json:"matchUrl"`

	ReturnData MockReturnData `json:"returnData"`
}

// MockReturnData is the synthetic response for a mock step.
type MockReturnData struct {
	// StatusCode for "httprequest" mocks. Defaults to 200.
	StatusCode int `json:"statusCode"`

	// Body is base64-encoded; the runner decodes it before use.
	Body string `json:"body"`
}

// decodeBody accepts both padded and raw base64, since fixture files
// come from different editors.
func (rd MockReturnData) decodeBody() ([]byte, error) {
	if rd.Body == "" {
		return nil, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(rd.Body)
	if err == nil {
		return decoded, nil
	}
	return base64.RawStdEncoding.DecodeString(rd.Body)
}

// LoadScenario reads and validates one scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.normalize(false); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// LoadScenarioArray reads a file holding an array of scenarios, the
// shape the suite runner uses. Method and URL may be omitted per item
// because the suite entry injects them.
func LoadScenarioArray(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve scenario array path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read scenario array %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse scenario array %q: %w", abs, err)
	}

	dir := filepath.Dir(abs)
	for _, s := range scenarios {
		s.dir = dir
		if err := s.normalize(true); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario array item: %w", err)
		}
	}

	return scenarios, nil
}

// normalize fills defaults and checks required fields. Array items get
// looser rules: the suite injects the method and URL, and a missing
// expected code means 200.
func (s *Scenario) normalize(fromArray bool) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" && !fromArray {
		return fmt.Errorf("requestUrl is required")
	}

	if s.ExpectedCode == 0 {
		switch {
		case s.ExpectedStatusCode != 0:
			s.ExpectedCode = s.ExpectedStatusCode
		case fromArray:
			s.ExpectedCode = 200
		default:
			return fmt.Errorf("expectedCode is required")
		}
	}

	if s.RequestMethod == "" && !fromArray {
		s.RequestMethod = "GET"
	}

	for i, step := range s.NetUtilMockStep {
		if step.Method == "" {
			return fmt.Errorf("scenario %q: netUtilMockStep[%d].method is required", s.Name, i)
		}
	}
	return nil
}

// RequestBodyPath resolves RequestFileName against the scenario's
// directory. Empty when no request body is configured.
func (s *Scenario) RequestBodyPath() string {
	return s.resolve(s.RequestFileName)
}

// ResponseBodyPath resolves ResponseFileName the same way.
func (s *Scenario) ResponseBodyPath() string {
	return s.resolve(s.ResponseFileName)
}

func (s *Scenario) resolve(name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}
