// Package welcome is the splash screen. On first run it also asks for the
// learner's name.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidboard/internal/profile"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/ui/components"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

const mascotArt = `  ╭───────────╮
  │  ┌─────┐  │
  │  │ ◉ ◉ │  │
  │  │  ◡  │  │
  │  ├─────┤  │
  │  │ ✎ ★ │  │
  │  └─────┘  │
  ╰───────────╯`

var sparkleFrames = []string{"★", "✦"}

type tickMsg time.Time

// WelcomeScreen plays a short splash animation, then replaces itself with
// the screen produced by homeFactory.
type WelcomeScreen struct {
	homeFactory func() screen.Screen
	setName     func(string) error

	input   components.TextInput
	nameErr string

	still        bool
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

// Option configures a WelcomeScreen.
type Option func(*WelcomeScreen)

// WithoutAnimation skips the splash animation. The screen moves straight
// on, or straight to the name prompt when one is asked.
func WithoutAnimation() Option {
	return func(w *WelcomeScreen) {
		w.still = true
		w.elapsed = totalDur
	}
}

var (
	_ screen.Screen      = (*WelcomeScreen)(nil)
	_ screen.BackHandler = (*WelcomeScreen)(nil)
)

// New creates a WelcomeScreen. When setName is non-nil the learner types a
// name before moving on, and setName stores it.
func New(homeFactory func() screen.Screen, setName func(string) error, opts ...Option) *WelcomeScreen {
	w := &WelcomeScreen{
		homeFactory: homeFactory,
		setName:     setName,
		input:       components.NewTextInput("your name", profile.MaxUsernameLen),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) HandlesBack() bool { return true }

func (w *WelcomeScreen) Init() tea.Cmd {
	if !w.still {
		return tick()
	}
	if !w.asksName() {
		return w.transition()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) asksName() bool { return w.setName != nil }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// A key during the animation skips to its end.
		if w.elapsed < totalDur {
			w.elapsed = totalDur
			if !w.asksName() {
				return w, w.transition()
			}
			return w, nil
		}
		if !w.asksName() {
			return w, w.transition()
		}
		if msg.String() == "enter" {
			return w, w.submitName()
		}
		var cmd tea.Cmd
		w.input, cmd = w.input.Update(msg)
		w.nameErr = ""
		return w, cmd
	}

	return w, nil
}

func (w *WelcomeScreen) submitName() tea.Cmd {
	if err := w.setName(w.input.Value()); err != nil {
		w.nameErr = fmt.Sprintf("Please type a name up to %d letters.", profile.MaxUsernameLen)
		return nil
	}
	return w.transition()
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.homeFactory())
}

func (w *WelcomeScreen) View(width, height int) string {
	rendered := lipgloss.NewStyle().Foreground(theme.Primary).Render(mascotArt)

	if w.elapsed >= phase1End {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s1 := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		s2 := lipgloss.NewStyle().Foreground(theme.Secondary).Render(sparkle)

		lines := strings.Split(rendered, "\n")
		for _, i := range []int{0, 3, 6} {
			if i < len(lines) {
				lines[i] = s1 + "  " + lines[i] + "  " + s2
				s1, s2 = s2, s1
			}
		}
		rendered = strings.Join(lines, "\n")
	}

	sections := []string{rendered}

	if w.elapsed >= phase2End {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Let's learn and play!"),
		)
	}

	if w.elapsed >= totalDur && w.asksName() {
		sections = append(sections, "", theme.Subtitle.Render("What's your name?"), w.input.View())
		if w.nameErr != "" {
			sections = append(sections, theme.Incorrect.Render(w.nameErr))
		}
	} else if w.elapsed >= phase2End {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
