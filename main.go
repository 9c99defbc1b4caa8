package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	envCfg, envErr := loadEnv()
	closeLog := setupLogging(envCfg.LogFile)

	config, cfgErr := loadConfig(envCfg)
	if err := errors.Join(envErr, cfgErr); err != nil {
		log.Printf("startup: %v", err)
	}

	rng := newRand(envCfg.Seed)
	m := newModel(config, rng.Float64, time.Now)
	if err := errors.Join(envErr, cfgErr); err != nil {
		m.errorMessage = err.Error()
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if config.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)
	_, err := p.Run()
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, "bemine:", err)
		os.Exit(1)
	}
}

// setupLogging sends the standard logger to path, or nowhere so nothing
// ever lands on the alt screen.
func setupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	f, err := tea.LogToFile(path, "bemine")
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	return func() { f.Close() }
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.resize(msg.Width, msg.Height)
		return m, nil

	case timerMsg:
		m.sched.fire(msg.id)

	case frameMsg:
		m.framing = false
		m.fx.Tick(time.Time(msg))

	case tea.MouseMsg:
		if msg.Type != tea.MouseLeft || m.help {
			return m, nil
		}
		if w, ok := m.layout.compute().HitAt(msg.X, msg.Y); ok {
			m.clearMessages()
			m.activate(w)
		}

	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "esc", "q", "?":
				m.help = false
			case "ctrl+c":
				return m, tea.Quit
			}
			return m, nil
		}
		if cmd := m.handleKey(msg.String()); cmd != nil {
			return m, cmd
		}
	}

	m.syncFocus()
	return m, m.flush()
}

// handleKey applies a key press. It only returns a command to quit.
func (m *model) handleKey(key string) tea.Cmd {
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "?":
		m.help = true
		return nil
	}

	m.clearMessages()
	switch key {
	case "tab", "right", "l", "down", "j":
		m.moveFocus(1)
	case "shift+tab", "left", "h", "up", "k":
		m.moveFocus(-1)
	case "enter", " ":
		if w, ok := m.focusedWidget(); ok {
			m.activate(w)
		}
	case "y":
		m.app.Interact(ControlAccept, 0)
	case "n":
		m.app.Interact(ControlDecline, 0)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.app.Interact(ControlBox, int(key[0]-'1'))
	case "r":
		m.app.Interact(ControlRestart, 0)
	case "c":
		if err := writeClipboardText(m.keepsakeText()); err != nil {
			m.errorMessage = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.successMessage = "Copied to clipboard"
		}
	case "S":
		m.export(".png", m.exportKeepsakePNG)
	case "T":
		m.export(".txt", m.exportVisualTXT)
	}
	return nil
}

func (m *model) activate(w widget) {
	m.app.Interact(w.control, w.index)
}

func (m *model) export(ext string, write func(string) error) {
	path, err := m.config.GetSavePath(timestampedName("bemine", ext, m.now()))
	if err == nil {
		err = write(path)
	}
	if err != nil {
		log.Printf("export %s: %v", ext, err)
		m.errorMessage = err.Error()
		return
	}
	log.Printf("exported %s", path)
	m.successMessage = "Saved " + path
}
