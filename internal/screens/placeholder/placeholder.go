// Package placeholder is shown for activities without a playable screen.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// PlaceholderScreen shows the start notice of an activity.
type PlaceholderScreen struct {
	title  string
	notice string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen. An empty notice shows a generic message.
func New(title, notice string) *PlaceholderScreen {
	return &PlaceholderScreen{title: title, notice: notice}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	notice := p.notice
	if notice == "" {
		notice = "Let's go!"
	}
	body := theme.Title.Render(notice) + "\n\n" +
		theme.Hint.Render("More to explore here soon.\nPress Esc to go back.")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(body)
}

func (p *PlaceholderScreen) Title() string { return p.title }
