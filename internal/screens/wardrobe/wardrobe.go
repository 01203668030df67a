// Package wardrobe is the avatar builder screen.
package wardrobe

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/avatar"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// WardrobeScreen lets the learner pick one option per category.
type WardrobeScreen struct {
	env      *screens.Env
	catalog  avatar.Catalog
	current  avatar.Avatar
	category int
	notice   string
	failed   bool
}

var (
	_ screen.Screen          = (*WardrobeScreen)(nil)
	_ screen.KeyHintProvider = (*WardrobeScreen)(nil)
)

// New starts from the saved avatar, or an empty one.
func New(env *screens.Env) *WardrobeScreen {
	catalog := env.Catalog
	if catalog == nil {
		catalog = avatar.DefaultCatalog()
	}
	current, err := avatar.Decode(catalog, env.Dashboard.Profile().Avatar)
	if err != nil {
		current = avatar.Avatar{}
	}
	return &WardrobeScreen{env: env, catalog: catalog, current: current}
}

func (s *WardrobeScreen) Init() tea.Cmd { return nil }

func (s *WardrobeScreen) Title() string { return "My Avatar" }

func (s *WardrobeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Part"},
		{Key: "←→", Description: "Style"},
		{Key: "R", Description: "Surprise me"},
		{Key: "S", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

// Avatar returns the avatar being edited.
func (s *WardrobeScreen) Avatar() avatar.Avatar { return s.current }

func (s *WardrobeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	cats := avatar.Categories()
	switch kmsg.String() {
	case "up", "k":
		s.category = (s.category + len(cats) - 1) % len(cats)
	case "down", "j":
		s.category = (s.category + 1) % len(cats)
	case "left", "h":
		s.cycle(cats[s.category], -1)
	case "right", "l":
		s.cycle(cats[s.category], 1)
	case "r":
		if s.env.Rand != nil {
			s.current = avatar.Random(s.env.Rand, s.catalog)
			s.notice, s.failed = "", false
		}
	case "s", "enter":
		s.save()
	}
	return s, nil
}

func (s *WardrobeScreen) cycle(cat avatar.Category, step int) {
	opts := s.catalog.InCategory(cat)
	if len(opts) == 0 {
		return
	}
	idx := -1
	for i, o := range opts {
		if o.ID == s.current[cat] {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && step < 0:
		idx = len(opts) - 1
	case idx < 0:
		idx = 0
	default:
		idx = (idx + step + len(opts)) % len(opts)
	}
	s.current.Select(opts[idx])
	s.notice, s.failed = "", false
}

func (s *WardrobeScreen) save() {
	if missing := s.current.Missing(); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, c := range missing {
			names[i] = strings.ToLower(c.DisplayName())
		}
		s.notice, s.failed = "Pick a "+strings.Join(names, ", ")+" first!", true
		return
	}
	if err := s.env.Dashboard.SaveAvatar(context.Background(), s.current); err != nil {
		s.notice, s.failed = "Could not save: "+err.Error(), true
		return
	}
	s.notice, s.failed = "Avatar saved! Looking great! ✨", false
}

func (s *WardrobeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var lines []string

	for i, cat := range avatar.Categories() {
		choice := "—"
		if id, ok := s.current[cat]; ok {
			if opt, found := s.catalog.Find(id); found {
				choice = opt.Alt
			}
		}
		label := fmt.Sprintf("%-12s ‹ %s ›", cat.DisplayName(), choice)
		if i == s.category {
			lines = append(lines, theme.Selected.Render("▸ "+label))
		} else {
			lines = append(lines, theme.Unselected.Render("  "+label))
		}
	}

	if code, err := s.current.Encode(); err == nil {
		lines = append(lines, "", theme.Hint.Render("code: "+code))
	}
	if s.notice != "" {
		style := theme.Correct
		if s.failed {
			style = theme.Incorrect
		}
		lines = append(lines, "", style.Render(s.notice))
	}

	card := components.Card(lipgloss.JoinVertical(lipgloss.Left, lines...), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
