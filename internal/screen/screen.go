// Package screen defines the contract between the router and the screens
// it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kidboard/internal/ui/layout"
)

// Screen is one full-frame view of the app.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves instead
// of being popped.
type BackHandler interface {
	HandlesBack() bool
}
