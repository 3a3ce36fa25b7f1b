package provider

import (
	"context"
	"strings"
	"sync"
)

// MockProvider is a deterministic in-memory provider for tests and dry runs.
// Unknown text is echoed back unchanged, which the resolver reports as NotFound.
type MockProvider struct {
	mu           sync.Mutex
	translations map[string]string
	failures     map[string]error
	err          error
	calls        int
	last         *TranslateRequest
}

// NewMockProvider creates a mock seeded with a few common menu words in both directions.
func NewMockProvider() *MockProvider {
	m := &MockProvider{
		translations: make(map[string]string),
		failures:     make(map[string]error),
	}
	for en, ar := range map[string]string{
		"chicken": "دجاج",
		"beef":    "لحم بقري",
		"rice":    "أرز",
		"tea":     "شاي",
		"coffee":  "قهوة",
		"burger":  "برجر",
		"salad":   "سلطة",
		"juice":   "عصير",
	} {
		m.translations[en] = ar
		m.translations[ar] = en
	}
	return m
}

// Add registers a translation for text.
func (m *MockProvider) Add(text, translation string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations[text] = translation
	return m
}

// FailOn makes every request for text return err.
func (m *MockProvider) FailOn(text string, err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[text] = err
	return m
}

// FailAll makes every request return err. Pass nil to clear.
func (m *MockProvider) FailAll(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Translate looks the text up in the dictionary.
func (m *MockProvider) Translate(ctx context.Context, req TranslateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	r := req
	m.last = &r

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	if err, ok := m.failures[req.Text]; ok {
		return "", err
	}
	if out, ok := m.translations[req.Text]; ok {
		return out, nil
	}
	if out, ok := m.translations[strings.ToLower(req.Text)]; ok {
		return out, nil
	}
	return req.Text, nil
}

// CallCount returns the number of Translate calls.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastRequest returns the most recent request, or nil.
func (m *MockProvider) LastRequest() *TranslateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Reset clears the call counter and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = 0
	m.last = nil
}

var _ Provider = (*MockProvider)(nil)
