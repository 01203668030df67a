// Package trophies is the achievements shelf screen.
package trophies

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/achievements"
	"github.com/abhisek/kidboard/internal/activities"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/screens/summary"
	"github.com/abhisek/kidboard/internal/store"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// Filter narrows the shelf.
type Filter int

const (
	FilterAll Filter = iota
	FilterUnlocked
	FilterLocked
)

func (f Filter) String() string {
	switch f {
	case FilterUnlocked:
		return "Unlocked"
	case FilterLocked:
		return "Locked"
	default:
		return "All"
	}
}

type unlockTimesMsg struct {
	times map[string]time.Time
}

// AchievementsScreen lists the catalog with unlock state.
type AchievementsScreen struct {
	env      *screens.Env
	board    []achievements.BoardEntry
	unlocked map[string]time.Time
	filter   Filter
	selected int
}

var (
	_ screen.Screen          = (*AchievementsScreen)(nil)
	_ screen.KeyHintProvider = (*AchievementsScreen)(nil)
)

// New creates the screen from the dashboard's current board.
func New(env *screens.Env) *AchievementsScreen {
	return &AchievementsScreen{
		env:      env,
		board:    env.Dashboard.Achievements.Board(),
		unlocked: make(map[string]time.Time),
	}
}

// Init loads unlock dates from history when it is enabled.
func (s *AchievementsScreen) Init() tea.Cmd {
	if s.env.Events == nil {
		return nil
	}
	events := s.env.Events
	return func() tea.Msg {
		records, err := events.QueryAchievementEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			return unlockTimesMsg{}
		}
		times := make(map[string]time.Time, len(records))
		for _, r := range records {
			times[r.AchievementID] = r.Timestamp
		}
		return unlockTimesMsg{times: times}
	}
}

func (s *AchievementsScreen) Title() string { return "Achievements" }

func (s *AchievementsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter: " + s.filter.String()},
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

// Visible returns the entries shown under the current filter.
func (s *AchievementsScreen) Visible() []achievements.BoardEntry {
	var out []achievements.BoardEntry
	for _, e := range s.board {
		switch {
		case s.filter == FilterUnlocked && !e.Unlocked:
		case s.filter == FilterLocked && e.Unlocked:
		default:
			out = append(out, e)
		}
	}
	return out
}

func (s *AchievementsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case unlockTimesMsg:
		for id, t := range msg.times {
			s.unlocked[id] = t
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			s.filter = (s.filter + 1) % 3
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.Visible())-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *AchievementsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	n, total := s.env.Dashboard.Achievements.Count()

	var lines []string
	lines = append(lines,
		theme.Title.Render(fmt.Sprintf("🏆 %d of %d unlocked", n, total)),
		components.NewProgressBar("", float64(n)/float64(max(total, 1)), true, cw).View(),
		"")

	visible := s.Visible()
	if len(visible) == 0 {
		lines = append(lines, theme.Hint.Render("Nothing here yet. Keep playing!"))
	}
	for i, e := range visible {
		lines = append(lines, s.renderEntry(e, i == s.selected))
	}

	if s.selected < len(visible) {
		e := visible[s.selected]
		detail := e.Achievement.Description
		if t, ok := s.unlocked[e.Achievement.ID]; ok && e.Unlocked {
			detail += "\nUnlocked " + t.Local().Format("Jan 02, 2006")
		}
		lines = append(lines, "", components.Card(theme.Body.Render(detail), cw))
	}

	if next := s.env.Dashboard.Activities.NextMissions(activities.DefaultMissions()); len(next) > 0 {
		lines = append(lines, "", theme.Subtitle.Render("Next missions"))
		for _, m := range next {
			lines = append(lines, renderMission(m))
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderMission(m activities.Mission) string {
	name := lipgloss.NewStyle().Foreground(theme.Hex(m.Kind.Color())).Render(m.Kind.Emoji() + " " + m.Title)
	return "  " + name + "  " + theme.Points.Render(fmt.Sprintf("+%d", m.Points)) +
		"  " + theme.Hint.Render(string(m.Difficulty))
}

func (s *AchievementsScreen) renderEntry(e achievements.BoardEntry, selected bool) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	a := e.Achievement
	if !e.Unlocked {
		return theme.Locked.Render(prefix + "🔒 " + a.Title)
	}

	style := lipgloss.NewStyle().Foreground(summary.RarityColor(a.Rarity))
	if selected {
		style = style.Bold(true)
	}
	rarity := lipgloss.NewStyle().Foreground(theme.TextDim).Render(strings.ToLower(a.Rarity.DisplayName()))
	return style.Render(prefix+a.Icon.Glyph()+" "+a.Title) + "  " + rarity
}
