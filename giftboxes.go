package main

import (
	"log"
	"math"
	"time"
)

type GiftTuning struct {
	ClicksToOpen    int
	BaseScale       float64
	ScaleIncrement  float64
	CompletionDelay time.Duration
	ShakeDuration   time.Duration
	PopDuration     time.Duration
	SlideDuration   time.Duration
}

// RevealBox is the state of one gift box.
type RevealBox struct {
	Index        int
	Interactions int
	Opened       bool
	// Revealed flips once the pop finishes and the gift content is shown.
	Revealed bool
	Scale    float64
	Glow     float64
	Gift     Gift
}

// GlowRadius is the pixel radius of the progress glow.
func (b RevealBox) GlowRadius() float64 {
	if b.Interactions == 0 {
		return 0
	}
	return 20 + float64(b.Interactions)*8
}

type GiftBoxes struct {
	boxes  []RevealBox
	tuning GiftTuning
	fx     Effects
	sched  Scheduler
	layout Layout

	// OnAllOpened runs once per reset cycle, CompletionDelay after the
	// last box is revealed.
	OnAllOpened func()

	completionQueued bool
	cycle            int
}

func NewGiftBoxes(tuning GiftTuning, fx Effects, sched Scheduler, layout Layout) *GiftBoxes {
	return &GiftBoxes{tuning: tuning, fx: fx, sched: sched, layout: layout}
}

func (g *GiftBoxes) Init(gifts []Gift) {
	g.boxes = make([]RevealBox, len(gifts))
	for i, gift := range gifts {
		g.boxes[i] = RevealBox{Index: i, Scale: g.tuning.BaseScale, Gift: gift}
	}
	g.completionQueued = false
	g.cycle++
}

func (g *GiftBoxes) Len() int { return len(g.boxes) }

// Boxes returns a copy of every box's state.
func (g *GiftBoxes) Boxes() []RevealBox {
	out := make([]RevealBox, len(g.boxes))
	copy(out, g.boxes)
	return out
}

func (g *GiftBoxes) Box(i int) (RevealBox, bool) {
	if i < 0 || i >= len(g.boxes) {
		return RevealBox{}, false
	}
	return g.boxes[i], true
}

func (g *GiftBoxes) Interact(i int) {
	if i < 0 || i >= len(g.boxes) {
		return
	}
	box := &g.boxes[i]
	if box.Opened {
		return
	}

	box.Interactions++
	box.Scale = g.tuning.BaseScale + g.tuning.ScaleIncrement*float64(box.Interactions)
	g.fx.PlayOnce(boxWrapper(i), EffectShake, g.tuning.ShakeDuration, nil)
	box.Glow = math.Min(float64(box.Interactions)/float64(g.tuning.ClicksToOpen)*maxGlow, maxGlow)

	if box.Interactions >= g.tuning.ClicksToOpen {
		g.open(i)
	}
}

func (g *GiftBoxes) open(i int) {
	g.boxes[i].Opened = true
	log.Printf("gift box %d opened", i)

	cycle := g.cycle
	g.fx.PlayOnce(boxWrapper(i), EffectPop, g.tuning.PopDuration, func() {
		if cycle != g.cycle {
			return
		}
		box := &g.boxes[i]
		box.Revealed = true
		box.Scale = g.tuning.BaseScale
		box.Glow = 0

		g.fx.PlayOnce(boxReveal(i), EffectSlideUp, g.tuning.SlideDuration, nil)

		c := g.layout.Bounds(boxElement(i)).Center()
		g.fx.BurstAt(c.X, c.Y, elementSparkles)

		g.checkAllOpened()
	})
}

func (g *GiftBoxes) AllOpened() bool {
	for _, b := range g.boxes {
		if !b.Opened {
			return false
		}
	}
	return len(g.boxes) > 0
}

func (g *GiftBoxes) checkAllOpened() {
	if !g.AllOpened() || g.completionQueued || g.OnAllOpened == nil {
		return
	}
	g.completionQueued = true

	cycle := g.cycle
	g.sched.After(g.tuning.CompletionDelay, func() {
		if cycle != g.cycle {
			return
		}
		g.OnAllOpened()
	})
}

// Reset closes every box and invalidates completions still in flight.
func (g *GiftBoxes) Reset() {
	for i := range g.boxes {
		g.boxes[i] = RevealBox{Index: i, Scale: g.tuning.BaseScale, Gift: g.boxes[i].Gift}
	}
	g.completionQueued = false
	g.cycle++
}
