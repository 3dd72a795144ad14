package testkit

import (
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"
)

// FuncMocker wraps a testify/mock.Mock so the runner can activate and
// verify non-HTTP side effects (email sends, WhatsApp messages) declared
// in scenario files.
//
// Register custom mockers from a test package init():
//
//	testkit.RegisterMocker("invoice", testkit.NewFuncMocker("invoice"))
type FuncMocker interface {
	// Intercept is called when a mock step for this method is active.
	// rawBody is the base64-decoded ReturnData.Body from the scenario.
	Intercept(rawBody []byte) error

	// Reset clears call history between scenarios.
	Reset()

	// WasCalled returns the number of Intercept calls since the last Reset.
	WasCalled() int

	// Mock exposes the embedded testify mock for custom On/Return chains.
	Mock() *mock.Mock
}

// GenericFuncMocker is the default testify-backed FuncMocker.
type GenericFuncMocker struct {
	m      mock.Mock
	method string
	mu     sync.Mutex
	calls  int
}

// NewFuncMocker returns a mocker for the named method, pre-configured to
// accept any call and return nil.
func NewFuncMocker(method string) *GenericFuncMocker {
	gm := &GenericFuncMocker{method: method}
	gm.arm()
	return gm
}

func (gm *GenericFuncMocker) arm() {
	gm.m.On("Intercept", mock.AnythingOfType("[]uint8")).Return(nil)
}

func (gm *GenericFuncMocker) Intercept(rawBody []byte) error {
	gm.mu.Lock()
	gm.calls++
	gm.mu.Unlock()

	args := gm.m.Called(rawBody)
	if args.Get(0) == nil {
		return nil
	}
	return args.Error(0)
}

func (gm *GenericFuncMocker) Reset() {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	gm.calls = 0
	gm.m.Calls = nil
	gm.arm()
}

func (gm *GenericFuncMocker) WasCalled() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.calls
}

func (gm *GenericFuncMocker) Mock() *mock.Mock { return &gm.m }

var (
	mockerMu = sync.RWMutex{}
	// The channels the notifier can exercise ship with default mockers.
	mockerRegistry = map[string]FuncMocker{
		"sendmail": NewFuncMocker("sendmail"),
		"whatsapp": NewFuncMocker("whatsapp"),
	}
)

// RegisterMocker registers a FuncMocker for the given method name.
func RegisterMocker(method string, m FuncMocker) {
	mockerMu.Lock()
	defer mockerMu.Unlock()
	mockerRegistry[method] = m
}

// GetMocker returns the registered FuncMocker, or nil. Tests use it to
// set expectations or inspect calls:
//
//	m := testkit.GetMocker("sendmail")
//	m.Mock().AssertNumberOfCalls(t, "Intercept", 1)
func GetMocker(method string) FuncMocker {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	return mockerRegistry[method]
}

func resetAllMockers() {
	mockerMu.RLock()
	defer mockerMu.RUnlock()
	for _, m := range mockerRegistry {
		m.Reset()
	}
}

// ActivateFuncMocks triggers every non-HTTP mock step in the scenario.
func ActivateFuncMocks(s *Scenario) error {
	for i, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock {
			continue
		}

		m := GetMocker(step.Method)
		if m == nil {
			if s.IsMockRequired {
				return fmt.Errorf("testkit: no mocker registered for %q (step %d)", step.Method, i)
			}
			continue
		}

		raw, err := step.ReturnData.decodeBody()
		if err != nil {
			return fmt.Errorf("testkit: step %d base64 decode: %w", i, err)
		}
		if err := m.Intercept(raw); err != nil {
			return fmt.Errorf("testkit: step %d mock intercept failed: %w", i, err)
		}
	}
	return nil
}

// AssertFuncMocksCalled verifies every isMock=true non-HTTP step fired.
func AssertFuncMocksCalled(s *Scenario) []error {
	var errs []error
	seen := map[string]bool{}
	for _, step := range s.NetUtilMockStep {
		if step.Method == "httprequest" || !step.IsMock || seen[step.Method] {
			continue
		}
		seen[step.Method] = true

		m := GetMocker(step.Method)
		if m == nil {
			continue
		}
		if m.WasCalled() == 0 {
			errs = append(errs, fmt.Errorf(
				"mock %q registered but never called during scenario %q",
				step.Method, s.Name,
			))
		}
	}
	return errs
}
