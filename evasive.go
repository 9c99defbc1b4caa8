package main

import (
	"log"
	"math"
	"time"
)

// Point and Rect are in virtual pixels.
type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Layout reports where things currently sit on screen.
type Layout interface {
	Viewport() (w, h float64)
	Bounds(el Element) Rect
}

type EvasiveTuning struct {
	Threshold      int
	TargetGrowth   float64
	DecoyShrink    float64
	DecoyMinScale  float64
	Padding        float64
	AvoidMargin    float64
	GrowDuration   time.Duration
	WiggleDuration time.Duration
	BounceDuration time.Duration
}

// EvasiveState is the value the renderer reads to size and place the
// accept and decline buttons.
type EvasiveState struct {
	DecoyInteractions int
	TargetScale       float64
	DecoyScale        float64
	Converted         bool
	Positioned        bool
	DecoyPos          Point
}

func freshEvasiveState() EvasiveState {
	return EvasiveState{TargetScale: 1, DecoyScale: 1}
}

// EvasiveButton runs the decline button that dodges the pointer, grows the
// accept button, and eventually gives up and becomes an accept button too.
type EvasiveButton struct {
	state    EvasiveState
	tuning   EvasiveTuning
	fx       Effects
	layout   Layout
	rand     func() float64
	onAccept func()
}

func NewEvasiveButton(tuning EvasiveTuning, fx Effects, layout Layout, rnd func() float64, onAccept func()) *EvasiveButton {
	return &EvasiveButton{
		state:    freshEvasiveState(),
		tuning:   tuning,
		fx:       fx,
		layout:   layout,
		rand:     rnd,
		onAccept: onAccept,
	}
}

func (b *EvasiveButton) State() EvasiveState {
	return b.state
}

func (b *EvasiveButton) InteractTarget() {
	if b.onAccept != nil {
		b.onAccept()
	}
}

func (b *EvasiveButton) InteractDecoy() {
	if b.state.Converted {
		b.InteractTarget()
		return
	}

	b.state.DecoyInteractions++
	if b.state.DecoyInteractions >= b.tuning.Threshold {
		b.convert()
		return
	}

	b.state.TargetScale += b.tuning.TargetGrowth
	b.fx.PlayOnce(elementAccept, EffectGrow, b.tuning.GrowDuration, nil)

	// Bounds are taken before the new decoy scale lands, the same frame
	// the pointer saw.
	decoy := b.layout.Bounds(elementDecline)
	b.state.DecoyScale = math.Max(b.tuning.DecoyMinScale, b.state.DecoyScale-b.tuning.DecoyShrink)

	w, h := b.layout.Viewport()
	target := b.layout.Bounds(elementAccept)
	b.state.DecoyPos = PlaceDecoy(decoy, target, w, h, b.tuning.Padding, b.tuning.AvoidMargin, b.rand)
	b.state.Positioned = true

	b.fx.PlayOnce(elementDecline, EffectWiggle, b.tuning.WiggleDuration, nil)
}

func (b *EvasiveButton) convert() {
	b.state.Converted = true
	log.Printf("decline button converted after %d interactions", b.state.DecoyInteractions)
	b.fx.PlayOnce(elementDecline, EffectBounce, b.tuning.BounceDuration, nil)
}

func (b *EvasiveButton) Reset() {
	b.state = freshEvasiveState()
}

// PlaceDecoy picks a random spot for the decoy inside the viewport, pushed
// horizontally clear of the target's margin if the draw lands too close.
// The push is a single pass; a narrow viewport can leave some overlap.
func PlaceDecoy(decoy, target Rect, viewW, viewH, padding, margin float64, rnd func() float64) Point {
	maxX := viewW - decoy.W - padding
	maxY := viewH - decoy.H - padding
	// Viewport smaller than the decoy: pin to the padding corner
	if maxX < padding {
		maxX = padding
	}
	if maxY < padding {
		maxY = padding
	}

	x := padding + rnd()*(maxX-padding)
	y := padding + rnd()*(maxY-padding)

	overlaps := x < target.Right()+margin &&
		x+decoy.W > target.Left()-margin &&
		y < target.Bottom()+margin &&
		y+decoy.H > target.Top()-margin

	if overlaps {
		if x < target.Left() {
			x = math.Max(padding, target.Left()-decoy.W-margin)
		} else {
			x = math.Min(maxX, target.Right()+margin)
		}
	}

	return Point{X: clampFloat(x, padding, maxX), Y: clampFloat(y, padding, maxY)}
}
