package main

func (m *model) focusedWidget() (widget, bool) {
	l := m.layout.compute()
	if len(l.widgets) == 0 {
		return widget{}, false
	}
	return l.widgets[clampInt(m.focus, 0, len(l.widgets)-1)], true
}

func (m *model) moveFocus(delta int) {
	n := len(m.layout.compute().widgets)
	if n == 0 {
		m.focus = 0
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

// syncFocus puts focus back on the first control whenever the screen
// changes underneath it.
func (m *model) syncFocus() {
	if s := m.app.Screen(); s != m.focusScreen {
		m.focusScreen = s
		m.focus = 0
	}
}
