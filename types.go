package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type model struct {
	width  int
	height int

	config *Config
	app    *App
	fx     *fxEngine
	sched  *teaScheduler
	layout *termLayout

	focus       int
	focusScreen Screen
	help        bool
	framing     bool

	errorMessage   string
	successMessage string
	now            func() time.Time
}

type frameMsg time.Time

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func newModel(config *Config, rnd func() float64, now func() time.Time) model {
	sched := newTeaScheduler()
	layout := &termLayout{cfg: config}
	layout.resize(80, 24)
	fx := newFxEngine(sched, now, rnd, layout.Viewport)
	app := NewApp(config, fx, sched, layout, rnd)
	layout.app = app

	return model{
		width:       80,
		height:      24,
		config:      config,
		app:         app,
		fx:          fx,
		sched:       sched,
		layout:      layout,
		focusScreen: app.Screen(),
		now:         now,
	}
}

// flush hands queued timers to the program and keeps the frame loop
// running while anything is animating.
func (m *model) flush() tea.Cmd {
	cmds := []tea.Cmd{m.sched.drain()}
	if m.fx.Animating() && !m.framing {
		m.framing = true
		cmds = append(cmds, frameCmd())
	}
	return tea.Batch(cmds...)
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}
