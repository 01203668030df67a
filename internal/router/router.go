// Package router keeps the stack of screens.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidboard/internal/screen"
)

// PushScreenMsg pushes Screen on top of the stack.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg removes the top screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen for Screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg removes every screen above the first.
type PopToRootMsg struct{}

// Push sends a PushScreenMsg.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushScreenMsg{Screen: s} }
}

// Pop sends a PopScreenMsg.
func Pop() tea.Msg { return PopScreenMsg{} }

// Replace sends a ReplaceScreenMsg.
func Replace(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return ReplaceScreenMsg{Screen: s} }
}

// Router manages a stack of screens. The stack never becomes empty.
type Router struct {
	stack []screen.Screen
}

// New creates a Router with initial at the bottom.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

// Push adds s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop removes the top screen unless it is the last one.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.refresh()
}

// Replace swaps the top screen for s and returns its Init command.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot drops every screen above the first.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:1]
	return r.refresh()
}

// Refresher is implemented by screens that reload when they become active
// again.
type Refresher interface {
	Refresh() tea.Cmd
}

func (r *Router) refresh() tea.Cmd {
	if rf, ok := r.Active().(Refresher); ok {
		return rf.Refresh()
	}
	return nil
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of stacked screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
