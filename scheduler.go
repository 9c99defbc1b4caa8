package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler runs fn once after d on the UI loop. Callbacks never run
// concurrently with each other or with input handling.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type timerMsg struct {
	id int
}

// teaScheduler turns delayed callbacks into tea.Tick commands. The model
// drains the queued commands after every Update and fires the callback when
// the matching timerMsg comes back through the loop.
type teaScheduler struct {
	nextID  int
	pending map[int]func()
	cmds    []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{pending: make(map[int]func())}
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	s.nextID++
	id := s.nextID
	s.pending[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
}

func (s *teaScheduler) fire(id int) {
	fn, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	fn()
}

func (s *teaScheduler) drain() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}
