package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	title, text, caption, faint  int
	button, focused, accept      int
	decline, converted, particle int
	glow                         [4]int
}

func newPalette(c *Canvas) palette {
	return palette{
		title:     c.Style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))),
		text:      c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("252"))),
		caption:   c.Style(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250"))),
		faint:     c.Style(lipgloss.NewStyle().Faint(true)),
		button:    c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("212"))),
		focused:   c.Style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226"))),
		accept:    c.Style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("204"))),
		decline:   c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("245"))),
		converted: c.Style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))),
		particle:  c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("219"))),
		glow: [4]int{
			c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))),
			c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("175"))),
			c.Style(lipgloss.NewStyle().Foreground(lipgloss.Color("211"))),
			c.Style(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))),
		},
	}
}

var jitter = []int{0, -1, 1, -1, 1, 0}

// effectOffset turns the effect on el into a cell offset and a border.
func (m model) effectOffset(el Element, b border) (dx, dy int, out border, eff Effect) {
	out = b
	eff, p, ok := m.fx.EffectOn(el)
	if !ok {
		return 0, 0, out, ""
	}
	switch eff {
	case EffectShake, EffectWiggle:
		dx = jitter[min(int(p*float64(len(jitter))), len(jitter)-1)]
	case EffectBounce:
		if p > 0.2 && p < 0.6 {
			dy = -1
		}
		out = borderHeavy
	case EffectGrow:
		out = borderHeavy
	case EffectPop:
		out = borderDouble
	case EffectSlideUp:
		dy = int(math.Round((1 - p) * 2))
	}
	return dx, dy, out, eff
}

func offset(r cellRect, dx, dy int) cellRect {
	r.X += dx
	r.Y += dy
	return r
}

func (m model) drawButton(c *Canvas, w widget, focused bool, style int, pal palette) {
	dx, dy, b, _ := m.effectOffset(w.el, borderNormal)
	if focused {
		style = pal.focused
		b = borderHeavy
	}
	r := offset(w.rect, dx, dy)
	c.DrawBox(r, b, style)
	c.DrawCentered(cellRect{X: r.X + 1, W: r.W - 2}, r.Y+r.H/2, w.label, style)
}

func (m model) drawGiftBox(c *Canvas, w widget, box RevealBox, focused bool, pal palette) {
	if box.Revealed {
		dx, dy, _, _ := m.effectOffset(boxReveal(w.index), borderNormal)
		r := offset(w.rect, dx, dy)
		style := pal.button
		if focused {
			style = pal.focused
		}
		c.DrawBox(r, borderNormal, style)
		inner := cellRect{X: r.X + 1, W: r.W - 2}
		c.DrawCentered(inner, r.Y+1, box.Gift.Glyph, 0)
		c.DrawCentered(inner, r.Y+2, box.Gift.Title, pal.title)
		for i, line := range wrapText(box.Gift.Caption, r.W-4) {
			if r.Y+4+i >= r.Y+r.H-1 {
				break
			}
			c.DrawCentered(inner, r.Y+4+i, line, pal.caption)
		}
		return
	}

	dx, dy, b, eff := m.effectOffset(boxWrapper(w.index), borderNormal)
	r := offset(w.rect, dx, dy)
	style := pal.glow[min(int(box.Glow/maxGlow*3+0.5), 3)]
	if focused {
		style = pal.focused
		if b == borderNormal {
			b = borderHeavy
		}
	}
	c.DrawBox(r, b, style)

	// Glow halo grows with each interaction
	if halo := int(box.GlowRadius() / cellWidth / 2); halo > 0 && eff != EffectPop {
		ring := cellRect{X: r.X - halo, Y: r.Y, W: r.W + 2*halo, H: r.H}
		for x := ring.X; x < r.X; x++ {
			c.DrawText(x, r.Y+r.H/2, "·", style)
		}
		for x := r.X + r.W; x < ring.X+ring.W; x++ {
			c.DrawText(x, r.Y+r.H/2, "·", style)
		}
	}

	inner := cellRect{X: r.X + 1, W: r.W - 2}
	glyph := "🎁"
	if eff == EffectPop {
		glyph = "💥"
	}
	c.DrawCentered(inner, r.Y+r.H/2-1, glyph, 0)
	progress := strings.Repeat("●", box.Interactions) +
		strings.Repeat("○", max(0, m.config.Tuning.ClicksToOpen-box.Interactions))
	c.DrawCentered(inner, r.Y+r.H/2+1, progress, style)
}

func (m model) drawParticles(c *Canvas, container Element, style int) {
	for _, p := range m.fx.Particles(container) {
		x := int(p.X / cellWidth)
		y := int(p.Y / cellHeight)
		if c.inBounds(x, y) {
			c.DrawText(x, y, p.Glyph, style)
		}
	}
}

// renderScene draws the active screen onto a fresh canvas.
func (m model) renderScene(l sceneLayout) *Canvas {
	c := NewCanvas(l.cols, l.rows)
	pal := newPalette(c)
	focused, hasFocus := m.focusedWidget()

	if l.screen == ScreenCelebration {
		m.drawParticles(c, elementHearts, pal.particle)
	}

	// Screen entry slides the title down into place
	titleDY := 0
	if eff, p, ok := m.fx.EffectOn(screenElement(l.screen)); ok && eff == EffectScreenIn {
		titleDY = int(math.Round((1 - p) * -2))
	}
	title := offset(l.title, 0, titleDY)

	switch l.screen {
	case ScreenIntro:
		c.DrawCentered(title, title.Y, m.config.Title, pal.title)
	case ScreenQuestion:
		c.DrawCentered(title, title.Y, m.config.Question, pal.title)
	case ScreenReveal:
		c.DrawCentered(title, title.Y, m.config.RevealPrompt, pal.text)
	case ScreenCelebration:
		c.DrawCentered(title, title.Y, m.config.Celebration, pal.title)
		if n := len(m.openedGifts()); n > 0 {
			c.DrawCentered(title, title.Y+2, fmt.Sprintf("%d gifts unwrapped", n), pal.caption)
		}
	}

	boxes := m.app.Boxes()
	evasive := m.app.Evasive()
	for _, w := range l.widgets {
		isFocused := hasFocus && focused.el == w.el
		switch w.control {
		case ControlBox:
			if w.index < len(boxes) {
				m.drawGiftBox(c, w, boxes[w.index], isFocused, pal)
			}
		case ControlAccept:
			m.drawButton(c, w, isFocused, pal.accept, pal)
		case ControlDecline:
			style := pal.decline
			if evasive.Converted {
				style = pal.converted
			}
			m.drawButton(c, w, isFocused, style, pal)
		default:
			m.drawButton(c, w, isFocused, pal.button, pal)
		}
	}

	m.drawParticles(c, elementSparkles, pal.particle)

	if eff, _, ok := m.fx.EffectOn(screenElement(l.screen)); ok && eff == EffectScreenOut {
		c.Restyle(cellRect{W: l.cols, H: l.rows}, pal.faint)
	}
	return c
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	c := m.renderScene(m.layout.compute())
	return strings.Join(c.Render(), "\n") + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	status := fmt.Sprintf("Screen: %s", m.app.Screen())
	switch m.app.Screen() {
	case ScreenQuestion:
		ev := m.app.Evasive()
		if ev.Converted {
			status += " | The answer is yes"
		} else {
			status += fmt.Sprintf(" | No: %d/%d", ev.DecoyInteractions, m.config.Tuning.MaxNoClicks)
		}
	case ScreenReveal:
		status += fmt.Sprintf(" | Opened: %d/%d", len(m.openedGifts()), len(m.app.Boxes()))
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) openedGifts() []Gift {
	var gifts []Gift
	for _, b := range m.app.Boxes() {
		if b.Opened {
			gifts = append(gifts, b.Gift)
		}
	}
	return gifts
}

func (m model) helpView() string {
	helpLines := []string{
		"bemine Help",
		"===========",
		"",
		"Mouse:",
		"------",
		"  Click            Press the button or gift under the pointer",
		"",
		"Keyboard:",
		"---------",
		"  Tab/→/l/↓/j      Focus next control",
		"  Shift+Tab/←/h/↑/k Focus previous control",
		"  Enter/Space      Press the focused control",
		"  y                Yes",
		"  n                No (good luck)",
		"  1-9              Tap gift box N",
		"  r                Start over (last screen)",
		"",
		"Keepsakes:",
		"----------",
		"  c                Copy the message and unwrapped gifts to the clipboard",
		"  S                Save a PNG card of the unwrapped gifts",
		"  T                Save the current screen as text",
		"",
		"General:",
		"  ?/Esc            Close this help screen",
		"  q/Ctrl+C         Quit",
	}

	visible := max(1, m.height-1)
	if len(helpLines) > visible {
		helpLines = helpLines[:visible]
	}
	return strings.Join(helpLines, "\n") + "\nHelp | Esc to close"
}
