package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestMockProvider_FIFO(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`1`)})
	m.Enqueue(MockResponse{Content: json.RawMessage(`2`)})

	for _, want := range []string{"1", "2"} {
		resp, err := m.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatal(err)
		}
		if string(resp.Content) != want {
			t.Errorf("content = %s, want %s", resp.Content, want)
		}
	}

	_, err := m.Generate(context.Background(), Request{})
	var unavailable *ErrProviderUnavailable
	if !errors.As(err, &unavailable) {
		t.Errorf("empty queue err = %v", err)
	}
	if len(m.Calls()) != 3 {
		t.Errorf("calls = %d, want 3", len(m.Calls()))
	}
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	m := NewMockProvider(MockResponse{Content: json.RawMessage(`{"stars":1}`)})
	_, err := m.Generate(context.Background(), Request{Schema: testSchema})
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestNew_Mock(t *testing.T) {
	p, err := New(context.Background(), Config{Provider: ProviderMock, Retry: DefaultRetry()}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
	if n, ok := p.(Named); !ok || n.Name() != ProviderMock {
		t.Errorf("provider name not exposed through the decorators")
	}
}

func TestNew_NotConfigured(t *testing.T) {
	if _, err := New(context.Background(), Config{}, nil, nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	if c == nil {
		t.Fatal("expected price for gpt-4o-mini")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("cost = %v, want 0.75", got)
	}
	if LookupCost("abacus-1") != nil {
		t.Error("unknown model should have no price")
	}
}
