package provider

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a deterministic provider for tests and the mock
// operation mode. Unknown inputs come back as a marked placeholder so the
// output is recognizable without any network access.
type MockProvider struct {
	mu           sync.Mutex
	translations map[string]string // source text -> translation
	callCount    int
	err          error
}

// NewMockProvider creates a mock provider with a few canned translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		translations: map[string]string{
			"Basmati Rice 5kg": "बासमती चावल 5 किलो",
			"Sunflower Oil 1L": "सूरजमुखी तेल 1 लीटर",
			"Groceries":        "किराना",
		},
	}
}

// Translate returns a canned translation when one exists, otherwise a
// placeholder of the form "[lang] text".
func (m *MockProvider) Translate(_ context.Context, text, _, targetLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	if m.err != nil {
		return "", m.err
	}
	if translation, ok := m.translations[text]; ok {
		return translation, nil
	}
	return fmt.Sprintf("[%s] %s", targetLang, text), nil
}

// SetTranslation registers a canned translation.
func (m *MockProvider) SetTranslation(source, translated string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.translations[source] = translated
}

// Fail makes every subsequent call return err. Pass nil to recover.
func (m *MockProvider) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// CallCount returns the number of Translate calls seen so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and any injected failure.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.err = nil
}

// Verify MockProvider implements Provider
var _ Provider = (*MockProvider)(nil)
