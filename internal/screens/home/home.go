// Package home is the root screen: the learner's dashboard.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/activities"
	"github.com/abhisek/kidboard/internal/dashboard"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/screens/history"
	"github.com/abhisek/kidboard/internal/screens/placeholder"
	"github.com/abhisek/kidboard/internal/screens/quiz"
	"github.com/abhisek/kidboard/internal/screens/trophies"
	"github.com/abhisek/kidboard/internal/screens/wardrobe"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

const updateCheckTimeout = 3 * time.Second

// cardsMinHeight is the content height needed for full activity cards.
const cardsMinHeight = 40

type updateAvailableMsg struct{ version string }

// HomeScreen shows the overview and the main menu.
type HomeScreen struct {
	env      *screens.Env
	overview dashboard.Overview
	menu     components.Menu
	latest   string
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
	_ router.Refresher       = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(env *screens.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.reload()
	return h
}

// reload rebuilds the overview and menu, keeping the selection.
func (h *HomeScreen) reload() {
	h.overview = h.env.Dashboard.Overview()
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.items())
	if selected < len(h.menu.Items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for _, a := range h.overview.Activities {
		items = append(items, components.MenuItem{
			Label:    a.Title,
			Action:   h.openActivity(a),
			Disabled: a.Kind == activities.KindMath && h.env.Questions == nil,
		})
	}
	return append(items,
		components.MenuItem{
			Label: "Achievements",
			Hint:  fmt.Sprintf("%d/%d", h.overview.Unlocked, h.overview.Total),
			Action: func() tea.Cmd {
				return router.Push(trophies.New(h.env))
			},
		},
		components.MenuItem{
			Label: "My Avatar",
			Action: func() tea.Cmd {
				return router.Push(wardrobe.New(h.env))
			},
		},
		components.MenuItem{
			Label: "History",
			Action: func() tea.Cmd {
				return router.Push(history.New(h.env.Events))
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)
}

func (h *HomeScreen) openActivity(a activities.Activity) func() tea.Cmd {
	return func() tea.Cmd {
		if a.Kind == activities.KindMath {
			return router.Push(quiz.New(h.env))
		}
		notice, err := h.env.Dashboard.Activities.Start(a.ID)
		if err != nil {
			return nil
		}
		return router.Push(placeholder.New(a.Title, notice))
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	check := h.env.LatestVersion
	if check == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateCheckTimeout)
		defer cancel()
		if v, ok := check(ctx); ok {
			return updateAvailableMsg{version: v}
		}
		return nil
	}
}

// Refresh reloads the overview after a pushed screen is popped.
func (h *HomeScreen) Refresh() tea.Cmd {
	h.reload()
	return nil
}

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(updateAvailableMsg); ok {
		h.latest = m.version
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes header and footer; add them back for the compact test
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Title.Render(titleCompact)),
		renderGreeting(h.overview, cw, compact),
		renderStatsBar(h.overview, cw, compact),
	}

	n := len(h.overview.Activities)
	if !compact && height >= cardsMinHeight {
		for i, a := range h.overview.Activities {
			sections = append(sections, renderActivity(a, i == h.menu.Selected, cw))
		}
	} else {
		lines := make([]string, n)
		for i, a := range h.overview.Activities {
			lines[i] = renderActivityLine(a, i == h.menu.Selected)
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	rest := components.Menu{Items: h.menu.Items[n:], Selected: h.menu.Selected - n}
	sections = append(sections, rest.View())

	if h.latest != "" {
		sections = append(sections, renderUpdateNote(h.latest, cw))
	}

	return renderCabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
