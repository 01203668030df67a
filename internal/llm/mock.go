package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replies with canned responses in FIFO order and records
// every request. An empty queue yields ErrProviderUnavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	calls     []Request
}

// NewMockProvider creates a MockProvider with queued responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Name() string    { return ProviderMock }
func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	if err := validateResponse(req.Schema, next.Content); err != nil {
		return nil, err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: StopEnd}, nil
}

// Enqueue appends responses to the queue.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

// Calls returns a copy of the recorded requests.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
