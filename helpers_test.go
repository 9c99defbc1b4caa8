package main

import (
	"time"
)

type pendingTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

// manualClock is a Scheduler driven by Advance.
type manualClock struct {
	now    time.Duration
	seq    int
	timers []pendingTimer
}

func (c *manualClock) After(d time.Duration, fn func()) {
	c.seq++
	c.timers = append(c.timers, pendingTimer{at: c.now + d, seq: c.seq, fn: fn})
}

// Advance runs every timer due within d in time order, including timers
// scheduled by the callbacks themselves.
func (c *manualClock) Advance(d time.Duration) {
	target := c.now + d
	for {
		idx := -1
		for i, t := range c.timers {
			if t.at > target {
				continue
			}
			if idx == -1 || t.at < c.timers[idx].at || (t.at == c.timers[idx].at && t.seq < c.timers[idx].seq) {
				idx = i
			}
		}
		if idx == -1 {
			break
		}
		t := c.timers[idx]
		c.timers = append(c.timers[:idx], c.timers[idx+1:]...)
		c.now = t.at
		t.fn()
	}
	c.now = target
}

func (c *manualClock) Time() time.Time {
	return time.Unix(1700000000, 0).Add(c.now)
}

type playCall struct {
	el     Element
	effect Effect
	d      time.Duration
}

// recordingEffects completes every effect exactly on its duration.
type recordingEffects struct {
	clock   *manualClock
	plays   []playCall
	started []RepeatHandle
	stopped []RepeatHandle
	active  map[RepeatHandle]bool
	next    RepeatHandle
	bursts  []Point
	cleared []Element
}

func newRecordingEffects(clock *manualClock) *recordingEffects {
	return &recordingEffects{clock: clock, active: make(map[RepeatHandle]bool)}
}

func (r *recordingEffects) PlayOnce(el Element, effect Effect, d time.Duration, done func()) {
	r.plays = append(r.plays, playCall{el: el, effect: effect, d: d})
	if done != nil {
		r.clock.After(d, done)
	}
}

func (r *recordingEffects) StartRepeating(container Element, interval time.Duration) RepeatHandle {
	r.next++
	r.active[r.next] = true
	r.started = append(r.started, r.next)
	return r.next
}

func (r *recordingEffects) StopRepeating(h RepeatHandle) {
	delete(r.active, h)
	r.stopped = append(r.stopped, h)
}

func (r *recordingEffects) BurstAt(x, y float64, container Element) {
	r.bursts = append(r.bursts, Point{X: x, Y: y})
}

func (r *recordingEffects) Clear(container Element) {
	r.cleared = append(r.cleared, container)
}

func (r *recordingEffects) count(el Element, effect Effect) int {
	n := 0
	for _, p := range r.plays {
		if p.el == el && p.effect == effect {
			n++
		}
	}
	return n
}

type fixedLayout struct {
	w, h  float64
	rects map[Element]Rect
}

func (l *fixedLayout) Viewport() (float64, float64) { return l.w, l.h }
func (l *fixedLayout) Bounds(el Element) Rect      { return l.rects[el] }

// cycleRand returns the given values in order, forever.
func cycleRand(values ...float64) func() float64 {
	i := 0
	return func() float64 {
		v := values[i%len(values)]
		i++
		return v
	}
}

func approxEqual(a, b float64) bool {
	const eps = 1e-9
	d := a - b
	return d < eps && d > -eps
}
