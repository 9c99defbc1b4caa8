package main

import (
	"log"
	"time"
)

type flowPhase int

const (
	phaseIdle flowPhase = iota
	phaseExiting
	phaseEntering
)

// ScreenFlow moves between screens one transition at a time. Requests that
// arrive mid-transition are parked in a single slot and the latest wins.
type ScreenFlow struct {
	fx    Effects
	sched Scheduler

	exitDelay   time.Duration
	enterSettle time.Duration

	active   Screen
	phase    flowPhase
	leaving  Screen
	entering Screen
	queued   Screen
	hasQueue bool
	// gen invalidates swaps and settles scheduled before a Reset.
	gen int

	onEnter map[Screen]func()
	onExit  map[Screen]func()
}

func NewScreenFlow(fx Effects, sched Scheduler, initial Screen) *ScreenFlow {
	return &ScreenFlow{
		fx:          fx,
		sched:       sched,
		exitDelay:   screenExitDelay,
		enterSettle: screenEnterSettle,
		active:      initial,
		onEnter:     make(map[Screen]func()),
		onExit:      make(map[Screen]func()),
	}
}

// OnEnter registers fn to run each time s becomes active.
func (f *ScreenFlow) OnEnter(s Screen, fn func()) { f.onEnter[s] = fn }

// OnExit registers fn to run each time s stops being active.
func (f *ScreenFlow) OnExit(s Screen, fn func()) { f.onExit[s] = fn }

func (f *ScreenFlow) Active() Screen { return f.active }

func (f *ScreenFlow) Transitioning() bool { return f.phase != phaseIdle }

// Leaving reports the screen currently playing its exit effect.
func (f *ScreenFlow) Leaving() (Screen, bool) {
	return f.leaving, f.phase == phaseExiting
}

// Entering reports the screen currently playing its entry effect.
func (f *ScreenFlow) Entering() (Screen, bool) {
	return f.entering, f.phase == phaseEntering
}

func (f *ScreenFlow) TransitionTo(s Screen) {
	if !s.valid() {
		return
	}
	if f.phase != phaseIdle {
		if s == f.active {
			return
		}
		f.queued = s
		f.hasQueue = true
		return
	}
	if s == f.active {
		return
	}

	from := f.active
	f.phase = phaseExiting
	f.leaving = from
	log.Printf("screen transition %s -> %s", from, s)

	gen := f.gen
	f.fx.PlayOnce(screenElement(from), EffectScreenOut, f.exitDelay, nil)
	f.sched.After(f.exitDelay, func() {
		if gen == f.gen {
			f.swap(from, s)
		}
	})
}

// Reset abandons the transition in flight and any queued request, then
// moves to s. An exit that was already running never reaches its target.
func (f *ScreenFlow) Reset(s Screen) {
	f.gen++
	f.phase = phaseIdle
	f.hasQueue = false
	f.TransitionTo(s)
}

func (f *ScreenFlow) swap(from, to Screen) {
	if fn := f.onExit[from]; fn != nil {
		fn()
	}
	f.active = to
	f.phase = phaseEntering
	f.entering = to
	if fn := f.onEnter[to]; fn != nil {
		fn()
	}

	gen := f.gen
	f.fx.PlayOnce(screenElement(to), EffectScreenIn, f.enterSettle, nil)
	f.sched.After(f.enterSettle, func() {
		if gen == f.gen {
			f.settle()
		}
	})
}

func (f *ScreenFlow) settle() {
	f.phase = phaseIdle
	if !f.hasQueue {
		return
	}
	next := f.queued
	f.hasQueue = false
	f.TransitionTo(next)
}
