package main

import (
	"reflect"
	"testing"
	"time"
)

func newTestApp() (*App, *manualClock, *recordingEffects) {
	clock := &manualClock{}
	fx := newRecordingEffects(clock)
	layout := &fixedLayout{
		w: 1000,
		h: 800,
		rects: map[Element]Rect{
			elementAccept:  {X: 400, Y: 380, W: 80, H: 48},
			elementDecline: {X: 520, Y: 380, W: 144, H: 48},
			boxElement(0):  {X: 100, Y: 300, W: 160, H: 112},
			boxElement(1):  {X: 400, Y: 300, W: 160, H: 112},
			boxElement(2):  {X: 700, Y: 300, W: 160, H: 112},
		},
	}
	app := NewApp(defaultConfig(), fx, clock, layout, cycleRand(0.2, 0.8))
	return app, clock, fx
}

func openAllBoxes(app *App) {
	for i := range app.Boxes() {
		for j := 0; j < app.cfg.Tuning.ClicksToOpen; j++ {
			app.Interact(ControlBox, i)
		}
	}
}

func TestFullFlow(t *testing.T) {
	app, clock, fx := newTestApp()

	app.Interact(ControlContinue, 0)
	clock.Advance(time.Second)
	if app.Screen() != ScreenQuestion {
		t.Fatalf("Screen() = %s, expected question", app.Screen())
	}

	app.Interact(ControlAccept, 0)
	if got := fx.count(elementAccept, EffectBounce); got != 1 {
		t.Errorf("accept bounce effects = %d, expected 1", got)
	}
	clock.Advance(299 * time.Millisecond)
	if app.Flow().Transitioning() {
		t.Error("transition started before the accept delay")
	}
	clock.Advance(2 * time.Second)
	if app.Screen() != ScreenReveal {
		t.Fatalf("Screen() = %s, expected reveal", app.Screen())
	}

	openAllBoxes(app)
	// pop 400ms + completion 2000ms + exit 400ms
	clock.Advance(2799 * time.Millisecond)
	if app.Screen() != ScreenReveal {
		t.Fatalf("Screen() = %s before the completion delay ran out", app.Screen())
	}
	clock.Advance(time.Millisecond)
	if app.Screen() != ScreenCelebration {
		t.Fatalf("Screen() = %s, expected celebration", app.Screen())
	}
	if len(fx.started) != 1 || !app.Celebrating() {
		t.Errorf("celebrations started = %d, expected 1", len(fx.started))
	}
	if len(fx.bursts) != 3 {
		t.Errorf("bursts = %d, expected one per box", len(fx.bursts))
	}

	clock.Advance(10 * time.Second)
	if len(fx.started) != 1 {
		t.Errorf("celebrations started = %d after settling, expected 1", len(fx.started))
	}
}

func TestDeclineUntilConverted(t *testing.T) {
	app, clock, _ := newTestApp()
	app.Interact(ControlContinue, 0)
	clock.Advance(time.Second)

	for i := 0; i < app.cfg.Tuning.MaxNoClicks; i++ {
		app.Interact(ControlDecline, 0)
	}
	clock.Advance(time.Second)
	if app.Screen() != ScreenQuestion {
		t.Fatalf("Screen() = %s, conversion must not accept on its own", app.Screen())
	}
	if !app.Evasive().Converted {
		t.Fatal("decline not converted")
	}

	app.Interact(ControlDecline, 0)
	clock.Advance(time.Second)
	if app.Screen() != ScreenReveal {
		t.Errorf("Screen() = %s, expected converted decline to accept", app.Screen())
	}
}

func TestControlsGatedByScreen(t *testing.T) {
	tests := []struct {
		name    string
		control Control
	}{
		{"Accept on intro", ControlAccept},
		{"Decline on intro", ControlDecline},
		{"Box on intro", ControlBox},
		{"Restart on intro", ControlRestart},
		{"Unknown control", Control(99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, clock, fx := newTestApp()
			before := app.Snapshot()
			app.Interact(tt.control, 0)
			clock.Advance(5 * time.Second)
			if !reflect.DeepEqual(app.Snapshot(), before) {
				t.Errorf("Snapshot changed: %+v -> %+v", before, app.Snapshot())
			}
			if len(fx.plays) != 0 {
				t.Errorf("plays = %+v, expected none", fx.plays)
			}
		})
	}
}

func TestRestartMatchesFreshSession(t *testing.T) {
	app, clock, fx := newTestApp()

	app.Interact(ControlContinue, 0)
	clock.Advance(time.Second)
	app.Interact(ControlDecline, 0)
	app.Interact(ControlDecline, 0)
	app.Interact(ControlAccept, 0)
	clock.Advance(2 * time.Second)
	openAllBoxes(app)
	clock.Advance(5 * time.Second)
	if app.Screen() != ScreenCelebration {
		t.Fatalf("Screen() = %s, expected celebration", app.Screen())
	}

	app.Interact(ControlRestart, 0)
	if app.Celebrating() {
		t.Error("celebration still running right after restart")
	}
	if len(fx.stopped) != 1 || fx.stopped[0] != fx.started[0] {
		t.Errorf("stopped %v, expected the started handle %v", fx.stopped, fx.started)
	}
	if len(fx.active) != 0 {
		t.Errorf("active repeaters = %v after restart", fx.active)
	}
	cleared := map[Element]bool{}
	for _, el := range fx.cleared {
		cleared[el] = true
	}
	if !cleared[elementHearts] || !cleared[elementSparkles] {
		t.Errorf("cleared = %v, expected hearts and sparkles", fx.cleared)
	}

	clock.Advance(2 * time.Second)
	fresh, _, _ := newTestApp()
	if got, want := app.Snapshot(), fresh.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot after restart = %+v, expected %+v", got, want)
	}
}

func TestRestartBeforeCompletionDoesNotCelebrate(t *testing.T) {
	app, clock, fx := newTestApp()
	app.Interact(ControlContinue, 0)
	clock.Advance(time.Second)
	app.Interact(ControlAccept, 0)
	clock.Advance(2 * time.Second)

	openAllBoxes(app)
	clock.Advance(time.Second)
	// Restart is not reachable from the reveal screen, so go through the App
	app.Restart()
	clock.Advance(10 * time.Second)

	if app.Screen() != ScreenIntro {
		t.Errorf("Screen() = %s, expected intro", app.Screen())
	}
	if len(fx.started) != 0 {
		t.Errorf("celebrations started = %d, expected none", len(fx.started))
	}
}

func TestRestartDuringCelebrationEntry(t *testing.T) {
	app, clock, fx := newTestApp()
	app.Interact(ControlContinue, 0)
	clock.Advance(time.Second)
	app.Interact(ControlAccept, 0)
	clock.Advance(2 * time.Second)

	openAllBoxes(app)
	// pop 400ms + completion 2000ms, then reveal is exiting toward celebration
	clock.Advance(2500 * time.Millisecond)
	if s, ok := app.Flow().Leaving(); !ok || s != ScreenReveal {
		t.Fatalf("Leaving() = %s, %v; expected reveal exiting", s, ok)
	}

	app.Restart()
	clock.Advance(10 * time.Second)

	if app.Screen() != ScreenIntro {
		t.Errorf("Screen() = %s, expected intro", app.Screen())
	}
	if len(fx.started) != 0 || app.Celebrating() {
		t.Errorf("celebrations started = %d after restart, expected none", len(fx.started))
	}
	if got := fx.count(screenElement(ScreenCelebration), EffectScreenIn); got != 0 {
		t.Errorf("celebration entered %d times", got)
	}
}
