package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Update moves the selection and runs the selected action on enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter", "space":
		if m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m *Menu) move(step int) {
	for i := m.Selected + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// View renders the menu, one item per line.
func (m Menu) View() string {
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		if item.Hint != "" {
			label += "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(item.Hint)
		}
		switch {
		case item.Disabled:
			lines[i] = theme.Locked.Render("    " + item.Label)
		case i == m.Selected:
			lines[i] = theme.Selected.Render("  ▸ " + label)
		default:
			lines[i] = theme.Unselected.Render("    " + label)
		}
	}
	return strings.Join(lines, "\n")
}
