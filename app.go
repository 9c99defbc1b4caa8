package main

import (
	"log"
)

// Session is everything that changes while someone clicks through the
// screens. Restart brings it back to what a fresh App reports.
type Session struct {
	Screen      Screen
	Boxes       []RevealBox
	Evasive     EvasiveState
	Celebrating bool
}

// App wires the screen flow, the decline button and the gift boxes
// together and owns the session.
type App struct {
	cfg   *Config
	fx    Effects
	sched Scheduler

	flow    *ScreenFlow
	boxes   *GiftBoxes
	evasive *EvasiveButton

	celebration RepeatHandle
}

func NewApp(cfg *Config, fx Effects, sched Scheduler, layout Layout, rnd func() float64) *App {
	a := &App{cfg: cfg, fx: fx, sched: sched}

	a.flow = NewScreenFlow(fx, sched, ScreenIntro)
	a.flow.OnEnter(ScreenCelebration, a.startCelebration)
	a.flow.OnExit(ScreenCelebration, a.stopCelebration)

	a.evasive = NewEvasiveButton(cfg.evasiveTuning(), fx, layout, rnd, a.acceptFlow)

	a.boxes = NewGiftBoxes(cfg.giftTuning(), fx, sched, layout)
	a.boxes.Init(cfg.Gifts)
	a.boxes.OnAllOpened = func() { a.flow.TransitionTo(ScreenCelebration) }

	return a
}

func (a *App) Screen() Screen { return a.flow.Active() }

func (a *App) Flow() *ScreenFlow { return a.flow }

func (a *App) Evasive() EvasiveState { return a.evasive.State() }

func (a *App) Boxes() []RevealBox { return a.boxes.Boxes() }

func (a *App) Celebrating() bool { return a.celebration != 0 }

func (a *App) Snapshot() Session {
	return Session{
		Screen:      a.flow.Active(),
		Boxes:       a.boxes.Boxes(),
		Evasive:     a.evasive.State(),
		Celebrating: a.Celebrating(),
	}
}

// controlScreen is the screen on which each control is visible.
var controlScreen = map[Control]Screen{
	ControlContinue: ScreenIntro,
	ControlAccept:   ScreenQuestion,
	ControlDecline:  ScreenQuestion,
	ControlBox:      ScreenReveal,
	ControlRestart:  ScreenCelebration,
}

// Interact is the single entry point for user input. Controls that are not
// on the active screen are ignored.
func (a *App) Interact(c Control, index int) {
	s, ok := controlScreen[c]
	if !ok || s != a.flow.Active() {
		return
	}

	switch c {
	case ControlContinue:
		a.flow.TransitionTo(ScreenQuestion)
	case ControlAccept:
		a.evasive.InteractTarget()
	case ControlDecline:
		a.evasive.InteractDecoy()
	case ControlBox:
		a.boxes.Interact(index)
	case ControlRestart:
		a.Restart()
	}
}

func (a *App) acceptFlow() {
	a.fx.PlayOnce(elementAccept, EffectBounce, acceptBounce, nil)
	a.sched.After(acceptDelay, func() { a.flow.TransitionTo(ScreenReveal) })
}

func (a *App) startCelebration() {
	a.stopCelebration()
	a.celebration = a.fx.StartRepeating(elementHearts, heartInterval)
}

func (a *App) stopCelebration() {
	if a.celebration == 0 {
		return
	}
	a.fx.StopRepeating(a.celebration)
	a.celebration = 0
}

// Restart stops the celebration before touching any state so a stale
// heart spawner never runs against the cleared screen.
func (a *App) Restart() {
	log.Printf("restart from %s", a.flow.Active())
	a.stopCelebration()
	a.fx.Clear(elementHearts)
	a.fx.Clear(elementSparkles)

	a.evasive.Reset()
	a.boxes.Reset()

	a.flow.Reset(ScreenIntro)
}
