package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func TestSuiteRunner(t *testing.T) {
	masterConfig := []ConfigEntry{
		{
			ServiceName:       "CartQuote",
			FilePath:          "cart_api",
			ScenariosFileName: "quote_scenarios.json",
			ServiceURL:        "/api/cart/quote",
			HTTPMethodType:    "POST",
			WorkflowService:   "HandleQuote",
		},
	}

	scenarios := []Scenario{
		{
			Name:             "QuoteEchoesTotals",
			Description:      "The quote endpoint returns the computed totals",
			RequestMethod:    "POST",
			RequestURL:       "/api/cart/quote",
			ExpectedCode:     200,
			RequestFileName:  "req.json",
			ResponseFileName: "res.json",
		},
	}

	dir := t.TempDir()
	masterPath := filepath.Join(dir, "test_scenarios.json")

	masterData, _ := json.Marshal(masterConfig)
	_ = os.WriteFile(masterPath, masterData, 0644)

	apiDir := filepath.Join(dir, "cart_api")
	_ = os.MkdirAll(apiDir, 0755)

	scenarioData, _ := json.Marshal(scenarios)
	_ = os.WriteFile(filepath.Join(apiDir, "quote_scenarios.json"), scenarioData, 0644)

	reqData := []byte(`{"subtotal": 280}`)
	resData := []byte(`{"subtotal": 280, "delivery": 50, "total": 330}`)
	_ = os.WriteFile(filepath.Join(apiDir, "req.json"), reqData, 0644)
	_ = os.WriteFile(filepath.Join(apiDir, "res.json"), resData, 0644)

	handlers := map[string]http.HandlerFunc{
		"HandleQuote": func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"subtotal": 280, "delivery": 50, "total": 330}`))
		},
	}

	// Errors inside RunSuite surface through t; a clean run is the pass.
	RunSuite(t, masterPath, handlers)
}
