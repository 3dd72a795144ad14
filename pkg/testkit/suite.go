package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muthuvel/santhai/pkg/router"
)

// ConfigEntry is one API group in the master test_scenarios.json: the
// route to mount, the handler to mount there, and the scenario file
// that exercises it.
type ConfigEntry struct {
	ServiceName       string `json:"serviceName"`
	FilePath          string `json:"filePath"`
	ScenariosFileName string `json:"scenariosFileName"`
	ServiceURL        string `json:"serviceUrl"`
	HTTPMethodType    string `json:"httpMethodType"`
	WorkflowService   string `json:"workflowService"` // key into the handlers map
}

// RunSuite runs every entry of a master config file as a subtest,
// mounting the named handler on a fresh router so entries stay
// isolated from each other.
func RunSuite(t *testing.T, masterConfigPath string, handlers map[string]http.HandlerFunc) {
	t.Helper()

	absMasterPath, err := filepath.Abs(masterConfigPath)
	if err != nil {
		t.Fatalf("testkit: resolve master config path %q: %v", masterConfigPath, err)
	}

	data, err := os.ReadFile(absMasterPath)
	if err != nil {
		t.Fatalf("testkit: read master config %q: %v", absMasterPath, err)
	}

	var entries []ConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("testkit: parse master config %q: %v", absMasterPath, err)
	}

	baseDir := filepath.Dir(absMasterPath)

	for _, entry := range entries {
		t.Run(entry.ServiceName, func(t *testing.T) {
			handlerFunc, ok := handlers[entry.WorkflowService]
			if !ok {
				t.Fatalf("testkit: handler %q not found in provided map", entry.WorkflowService)
			}

			url := entry.ServiceURL
			if url != "" && url[0] != '/' {
				url = "/" + url
			}
			r := mountEntry(entry, url, handlerFunc)

			// FilePath resolves against the master config first, then
			// against the test working directory.
			scenarioPath := filepath.Join(baseDir, entry.FilePath, entry.ScenariosFileName)
			if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
				scenarioPath = filepath.Join(entry.FilePath, entry.ScenariosFileName)
			}

			scenarios, err := LoadScenarioArray(scenarioPath)
			if err != nil {
				t.Fatalf("testkit: load scenario array %q: %v", scenarioPath, err)
			}

			for _, s := range scenarios {
				// Items may omit routing; the suite entry supplies it.
				if s.RequestURL == "" {
					s.RequestURL = url
				}
				if s.RequestMethod == "" {
					s.RequestMethod = entry.HTTPMethodType
				}

				t.Run(s.Name, func(t *testing.T) {
					runScenario(t, r.Handler(), s)
				})
			}
		})
	}
}

func mountEntry(entry ConfigEntry, url string, h http.HandlerFunc) *router.Router {
	r := router.New()
	switch strings.ToUpper(entry.HTTPMethodType) {
	case "POST":
		r.Post(url, entry.WorkflowService, h)
	case "PUT":
		r.Put(url, entry.WorkflowService, h)
	case "PATCH":
		r.Patch(url, entry.WorkflowService, h)
	case "DELETE":
		r.Delete(url, entry.WorkflowService, h)
	default:
		r.Get(url, entry.WorkflowService, h)
	}
	return r
}
