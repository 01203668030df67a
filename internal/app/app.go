// Package app is the root Bubble Tea model of the TUI.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/kidboard/internal/profile"
	"github.com/abhisek/kidboard/internal/router"
	"github.com/abhisek/kidboard/internal/screen"
	"github.com/abhisek/kidboard/internal/screens"
	"github.com/abhisek/kidboard/internal/screens/home"
	"github.com/abhisek/kidboard/internal/screens/quiz"
	"github.com/abhisek/kidboard/internal/screens/welcome"
	"github.com/abhisek/kidboard/internal/ui/layout"
	"github.com/abhisek/kidboard/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	Env *screens.Env

	// FirstRun shows the name prompt after the splash.
	FirstRun bool

	// SkipSplash opens the home screen directly.
	SkipSplash bool

	// StartInQuiz pushes a quiz on top of the home screen at startup.
	StartInQuiz bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env         *screens.Env
	router      *router.Router
	startInQuiz bool
	width       int
	height      int
}

// newAppModel builds the initial screen stack.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	homeFactory := func() screen.Screen { return home.New(env) }

	var splash []welcome.Option
	if !env.Dashboard.Profile().Settings.Animations {
		splash = append(splash, welcome.WithoutAnimation())
	}

	var root screen.Screen
	switch {
	case opts.SkipSplash || opts.StartInQuiz:
		root = homeFactory()
	case opts.FirstRun:
		root = welcome.New(homeFactory, env.Dashboard.SetUsername, splash...)
	default:
		root = welcome.New(homeFactory, nil, splash...)
	}

	return AppModel{
		env:         env,
		router:      router.New(root),
		startInQuiz: opts.StartInQuiz && env.Questions != nil,
	}
}

func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Active().Init()}
	if m.startInQuiz {
		cmds = append(cmds, router.Push(quiz.New(m.env)))
	}
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if bh, ok := m.router.Active().(screen.BackHandler); ok && bh.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	o := m.env.Dashboard.Overview()
	return layout.HeaderInfo{Name: o.Username, Points: o.State.Points, Level: o.State.Level}
}

func (m AppModel) footerHints() []layout.KeyHint {
	if kp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the whole frame, or nothing before the first size message.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.router.Active().Title(), m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// themeMode maps the learner's settings to a palette.
func themeMode(s profile.Settings) theme.Mode {
	return theme.Mode{Dark: s.DarkMode, HighContrast: s.HighContrast}
}

// Run starts the TUI and blocks until the learner quits.
func Run(opts Options) error {
	logger := opts.Env.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	settings := opts.Env.Dashboard.Profile().Settings
	theme.Apply(themeMode(settings))

	logger.Debug("starting tui",
		zap.Bool("first_run", opts.FirstRun),
		zap.Bool("start_in_quiz", opts.StartInQuiz),
		zap.Bool("dark", settings.DarkMode),
		zap.Bool("high_contrast", settings.HighContrast),
		zap.Bool("animations", settings.Animations))

	if _, err := tea.NewProgram(newAppModel(opts)).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
