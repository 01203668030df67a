// Package history shows recent point changes and quiz accuracy.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/store"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// PageSize is how many point events are loaded.
const PageSize = 50

type historyLoadedMsg struct {
	Events []store.PointsEventRecord
	Stats  store.AnswerStatsRecord
	Err    error
}

// HistoryScreen lists point events, newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	events    []store.PointsEventRecord
	stats     store.AnswerStatsRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a HistoryScreen. A nil repo shows that history is off.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.eventRepo == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()

		events, err := s.eventRepo.QueryPointsEvents(ctx, store.QueryOpts{Limit: PageSize})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := s.eventRepo.AnswerStats(ctx)
		if err != nil {
			return historyLoadedMsg{Events: events}
		}
		return historyLoadedMsg{Events: events, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.stats = msg.Stats
		}
		s.loaded = true

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case s.eventRepo == nil:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  History is off. Run with --persist to keep it.")
	case s.errMsg != "":
		return center.Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	case len(s.events) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No points yet. Go play!")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.stats.Attempts > 0 {
		b.WriteString(center.Foreground(theme.Secondary).Render(fmt.Sprintf(
			"%d answers  %d correct  %.0f%% accuracy",
			s.stats.Attempts, s.stats.Correct, s.stats.Accuracy()*100)))
		b.WriteString("\n\n")
	}

	for i, ev := range s.events {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %+d  %s",
			prefix, ev.Timestamp.Format("Jan 02 15:04"), ev.Amount, ev.Reason)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := fmt.Sprintf("    total %d  level %d  #%d", ev.PointsAfter, ev.LevelAfter, ev.Sequence)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}
