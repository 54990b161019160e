package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err short-circuits the reply; a
// StopReason of StopMaxTokens simulates truncation.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string
	Err        error
}

// MockJSON scripts a reply whose content is v encoded as JSON.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b}
}

// MockProvider replays scripted replies in order and keeps every request
// in Calls. Once the script runs out it reports the provider unavailable,
// which is also how the "mock" provider behaves when configured for real.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

// NewMockProvider scripts the given replies.
func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{}, false
	}
	r := m.script[0]
	m.script = m.script[1:]
	return r, true
}

// Generate returns the next scripted reply, run through the same
// truncation and schema checks as a real provider.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	r, ok := m.next(req)
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case r.Err != nil:
		return nil, r.Err
	}

	resp := &Response{Content: r.Content, Usage: r.Usage, Model: m.ModelID(), StopReason: r.StopReason}
	if resp.StopReason == "" {
		resp.StopReason = StopEnd
	}
	return finish(req, resp)
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

// CallCount is the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Pending is the number of scripted replies not yet consumed.
func (m *MockProvider) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.script)
}
