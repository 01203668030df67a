package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidboard/internal/screen"
)

type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
}

func (s *stubScreen) Refresh() tea.Cmd {
	s.refreshed++
	return nil
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
	if s1.refreshed != 1 {
		t.Errorf("expected the uncovered screen to refresh once, got %d", s1.refreshed)
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestPopToRoot(t *testing.T) {
	root := &stubScreen{title: "home"}
	r := New(root)
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "quiz"}})
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "summary"}})

	r.Update(PopToRootMsg{})

	if r.Depth() != 1 || r.Active() != root {
		t.Fatalf("depth = %d, active = %q", r.Depth(), r.Active().Title())
	}
	if root.refreshed != 1 {
		t.Errorf("refreshed = %d, want 1", root.refreshed)
	}
	if cmd := r.PopToRoot(); cmd != nil {
		t.Error("PopToRoot at the root should be a no-op")
	}
}

func TestHelpersEmitMessages(t *testing.T) {
	s := &stubScreen{title: "x"}
	if msg, ok := Push(s)().(PushScreenMsg); !ok || msg.Screen != s {
		t.Errorf("Push() = %#v", msg)
	}
	if msg, ok := Replace(s)().(ReplaceScreenMsg); !ok || msg.Screen != s {
		t.Errorf("Replace() = %#v", msg)
	}
	if _, ok := Pop().(PopScreenMsg); !ok {
		t.Error("Pop() did not emit PopScreenMsg")
	}
}
