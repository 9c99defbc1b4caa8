package main

import (
	"fmt"
	"time"
)

type Screen int

const (
	ScreenIntro Screen = iota
	ScreenQuestion
	ScreenReveal
	ScreenCelebration
	numScreens
)

func (s Screen) String() string {
	switch s {
	case ScreenIntro:
		return "intro"
	case ScreenQuestion:
		return "question"
	case ScreenReveal:
		return "reveal"
	case ScreenCelebration:
		return "celebration"
	default:
		return fmt.Sprintf("screen(%d)", int(s))
	}
}

func (s Screen) valid() bool {
	return s >= ScreenIntro && s < numScreens
}

// Control is an interaction source exposed to the presentation layer.
type Control int

const (
	ControlContinue Control = iota
	ControlAccept
	ControlDecline
	ControlBox
	ControlRestart
)

type Effect string

const (
	EffectShake     Effect = "shake"
	EffectPop       Effect = "pop"
	EffectSlideUp   Effect = "slide-up"
	EffectGrow      Effect = "grow"
	EffectWiggle    Effect = "wiggle"
	EffectBounce    Effect = "bounce"
	EffectScreenIn  Effect = "screen-in"
	EffectScreenOut Effect = "screen-out"
)

// Element names something the effects layer can animate.
type Element string

const (
	elementContinue Element = "continue"
	elementAccept   Element = "accept"
	elementDecline  Element = "decline"
	elementRestart  Element = "restart"
	elementHearts   Element = "hearts"
	elementSparkles Element = "sparkles"
)

func screenElement(s Screen) Element { return Element("screen:" + s.String()) }
func boxElement(i int) Element       { return Element(fmt.Sprintf("box:%d", i)) }
func boxWrapper(i int) Element       { return Element(fmt.Sprintf("box:%d:wrapper", i)) }
func boxReveal(i int) Element        { return Element(fmt.Sprintf("box:%d:reveal", i)) }

// Virtual pixel size of one terminal cell. Geometry is computed in pixels
// and mapped onto cells for drawing.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const (
	fallbackSlack     = 100 * time.Millisecond
	frameInterval     = 50 * time.Millisecond
	screenExitDelay   = 400 * time.Millisecond
	screenEnterSettle = 500 * time.Millisecond
	acceptDelay       = 300 * time.Millisecond
	acceptBounce      = 500 * time.Millisecond

	heartInterval     = 400 * time.Millisecond
	heartBurstCount   = 5
	heartBurstSpacing = 200 * time.Millisecond

	burstCount      = 6
	burstTransition = 500 * time.Millisecond
	burstLifetime   = 600 * time.Millisecond

	maxGlow = 0.8
)

var (
	heartGlyphs   = []string{"💖", "💕", "💗", "💓", "❤", "💘"}
	sparkleGlyphs = []string{"✨", "⭐", "💫", "🌟"}
)
