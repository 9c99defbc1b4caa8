package main

import (
	"math"
)

// widget is an interactive element placed on the current screen.
type widget struct {
	el      Element
	control Control
	index   int
	rect    cellRect
	label   string
}

type sceneLayout struct {
	screen  Screen
	cols    int
	rows    int
	title   cellRect
	widgets []widget
}

func (l sceneLayout) find(el Element) (widget, bool) {
	for _, w := range l.widgets {
		if w.el == el {
			return w, true
		}
	}
	return widget{}, false
}

// HitAt returns the topmost widget under the cell (x, y).
func (l sceneLayout) HitAt(x, y int) (widget, bool) {
	for i := len(l.widgets) - 1; i >= 0; i-- {
		if l.widgets[i].rect.contains(x, y) {
			return l.widgets[i], true
		}
	}
	return widget{}, false
}

const (
	buttonGap   = 4
	boxBaseW    = 20
	boxBaseH    = 7
	boxRevealH  = 9
	maxBoxSlotW = 32
)

// buttonRect sizes a button for label at scale, centred on (cx, cy).
func buttonRect(label string, scale float64, cx, cy int) cellRect {
	lw := displayWidth(label)
	w := max(lw+2, int(math.Round(float64(lw+4)*scale)))
	h := max(3, 2*int(math.Round((3*scale-1)/2))+1)
	return cellRect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

func scaleAround(r cellRect, scale float64) cellRect {
	w := int(math.Round(float64(r.W) * scale))
	h := int(math.Round(float64(r.H) * scale))
	return cellRect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

func clampRect(r cellRect, cols, rows int) cellRect {
	r.X = clampInt(r.X, 0, max(0, cols-r.W))
	r.Y = clampInt(r.Y, 0, max(0, rows-r.H))
	return r
}

// computeLayout places every widget of the session's screen on a cols×rows
// content area.
func computeLayout(cfg *Config, s Session, cols, rows int) sceneLayout {
	l := sceneLayout{screen: s.Screen, cols: cols, rows: rows}

	switch s.Screen {
	case ScreenIntro:
		l.title = cellRect{X: 0, Y: rows / 3, W: cols, H: 1}
		l.widgets = append(l.widgets, widget{
			el:      elementContinue,
			control: ControlContinue,
			label:   cfg.ContinueLabel,
			rect:    clampRect(buttonRect(cfg.ContinueLabel, 1, cols/2, rows/2+1), cols, rows),
		})

	case ScreenQuestion:
		l.title = cellRect{X: 0, Y: rows / 3, W: cols, H: 1}
		row := rows/3 + 4

		acceptBase := buttonRect(cfg.AcceptLabel, 1, 0, row)
		declineLabel := cfg.DeclineLabel
		if s.Evasive.Converted {
			declineLabel = cfg.ConvertedLabel
		}
		declineBase := buttonRect(declineLabel, 1, 0, row)

		startX := (cols - (acceptBase.W + buttonGap + declineBase.W)) / 2
		acceptCenter := startX + acceptBase.W/2
		accept := clampRect(buttonRect(cfg.AcceptLabel, s.Evasive.TargetScale, acceptCenter, row), cols, rows)

		var decline cellRect
		if s.Evasive.Positioned {
			decline = buttonRect(declineLabel, s.Evasive.DecoyScale, 0, 0)
			decline.X = int(math.Round(s.Evasive.DecoyPos.X / cellWidth))
			decline.Y = int(math.Round(s.Evasive.DecoyPos.Y / cellHeight))
		} else {
			declineCenter := startX + acceptBase.W + buttonGap + declineBase.W/2
			decline = buttonRect(declineLabel, s.Evasive.DecoyScale, declineCenter, row)
		}
		decline = clampRect(decline, cols, rows)

		l.widgets = append(l.widgets,
			widget{el: elementAccept, control: ControlAccept, label: cfg.AcceptLabel, rect: accept},
			widget{el: elementDecline, control: ControlDecline, label: declineLabel, rect: decline},
		)

	case ScreenReveal:
		l.title = cellRect{X: 0, Y: max(1, rows/6), W: cols, H: 1}
		n := len(s.Boxes)
		if n == 0 {
			break
		}
		slotW := min(maxBoxSlotW, cols/n)
		startX := (cols - slotW*n) / 2
		top := rows/2 - boxBaseH/2
		for i, box := range s.Boxes {
			slot := cellRect{X: startX + i*slotW, Y: top, W: slotW, H: boxBaseH}
			var r cellRect
			if box.Revealed {
				r = cellRect{X: slot.X + 1, Y: top - 1, W: slotW - 2, H: boxRevealH}
			} else {
				base := cellRect{X: slot.X + (slotW-min(slotW-2, boxBaseW))/2, Y: top, W: min(slotW-2, boxBaseW), H: boxBaseH}
				r = scaleAround(base, box.Scale)
			}
			l.widgets = append(l.widgets, widget{
				el:      boxElement(i),
				control: ControlBox,
				index:   i,
				label:   box.Gift.Title,
				rect:    clampRect(r, cols, rows),
			})
		}

	case ScreenCelebration:
		l.title = cellRect{X: 0, Y: rows / 3, W: cols, H: 1}
		l.widgets = append(l.widgets, widget{
			el:      elementRestart,
			control: ControlRestart,
			label:   cfg.RestartLabel,
			rect:    clampRect(buttonRect(cfg.RestartLabel, 1, cols/2, rows*2/3), cols, rows),
		})
	}

	return l
}

// termLayout answers geometry questions for the controllers using the
// current terminal size and session.
type termLayout struct {
	cfg  *Config
	app  *App
	cols int
	rows int
}

func (t *termLayout) resize(width, height int) {
	t.cols = max(1, width)
	// Last row is the status line
	t.rows = max(1, height-1)
}

func (t *termLayout) compute() sceneLayout {
	return computeLayout(t.cfg, t.app.Snapshot(), t.cols, t.rows)
}

func (t *termLayout) Viewport() (float64, float64) {
	return float64(t.cols) * cellWidth, float64(t.rows) * cellHeight
}

func (t *termLayout) Bounds(el Element) Rect {
	if w, ok := t.compute().find(el); ok {
		return w.rect.pixels()
	}
	return Rect{}
}
