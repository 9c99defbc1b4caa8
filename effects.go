package main

import (
	"math"
	"sort"
	"time"
)

// RepeatHandle identifies a running repeating effect. The zero value means
// nothing is running.
type RepeatHandle int

// Effects plays transient visuals. Completion callbacks are delivered
// through the Scheduler or the frame loop, never synchronously.
type Effects interface {
	// PlayOnce marks el with effect. done runs exactly once, on natural
	// completion or after d plus a fallback slack, whichever comes first.
	PlayOnce(el Element, effect Effect, d time.Duration, done func())
	StartRepeating(container Element, interval time.Duration) RepeatHandle
	StopRepeating(h RepeatHandle)
	BurstAt(x, y float64, container Element)
	Clear(container Element)
}

type activeEffect struct {
	el       Element
	effect   Effect
	started  time.Time
	duration time.Duration
	done     func()
	seq      int
}

type particle struct {
	container Element
	glyph     string
	x, y      float64 // start position, pixels
	dx, dy    float64 // total travel, pixels
	born      time.Time
	travel    time.Duration
	life      time.Duration
}

// particleView is a particle resolved to a position at a point in time.
type particleView struct {
	Glyph string
	X, Y  float64
}

// fxEngine is the terminal implementation of Effects. The renderer reads
// markers and particles from it; the model advances it once per frame.
type fxEngine struct {
	sched    Scheduler
	now      func() time.Time
	rand     func() float64
	viewport func() (float64, float64)

	markers   map[Element]int
	running   map[int]*activeEffect
	seq       int
	particles []particle

	repeaters  map[RepeatHandle]bool
	nextHandle RepeatHandle
}

func newFxEngine(sched Scheduler, now func() time.Time, rnd func() float64, viewport func() (float64, float64)) *fxEngine {
	return &fxEngine{
		sched:     sched,
		now:       now,
		rand:      rnd,
		viewport:  viewport,
		markers:   make(map[Element]int),
		running:   make(map[int]*activeEffect),
		repeaters: make(map[RepeatHandle]bool),
	}
}

func (e *fxEngine) PlayOnce(el Element, effect Effect, d time.Duration, done func()) {
	e.seq++
	seq := e.seq
	e.running[seq] = &activeEffect{
		el:       el,
		effect:   effect,
		started:  e.now(),
		duration: d,
		done:     done,
		seq:      seq,
	}
	// A newer effect on the same element replaces the marker; the older
	// one still completes through its own fallback.
	e.markers[el] = seq
	e.sched.After(d+fallbackSlack, func() { e.finish(seq) })
}

func (e *fxEngine) finish(seq int) {
	eff, ok := e.running[seq]
	if !ok {
		return
	}
	delete(e.running, seq)
	if e.markers[eff.el] == seq {
		delete(e.markers, eff.el)
	}
	if eff.done != nil {
		eff.done()
	}
}

// Tick completes every effect whose duration has elapsed and drops
// expired particles.
func (e *fxEngine) Tick(now time.Time) {
	var due []int
	for seq, eff := range e.running {
		if now.Sub(eff.started) >= eff.duration {
			due = append(due, seq)
		}
	}
	sort.Ints(due)
	for _, seq := range due {
		e.finish(seq)
	}

	kept := e.particles[:0]
	for _, p := range e.particles {
		if now.Before(p.born.Add(p.life)) {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}

// Animating reports whether the frame loop needs to keep running.
func (e *fxEngine) Animating() bool {
	return len(e.running) > 0 || len(e.particles) > 0
}

// EffectOn returns the effect currently marked on el and its progress in
// [0, 1].
func (e *fxEngine) EffectOn(el Element) (Effect, float64, bool) {
	seq, ok := e.markers[el]
	if !ok {
		return "", 0, false
	}
	eff := e.running[seq]
	if eff == nil {
		return "", 0, false
	}
	if eff.duration <= 0 {
		return eff.effect, 1, true
	}
	progress := float64(e.now().Sub(eff.started)) / float64(eff.duration)
	return eff.effect, math.Min(math.Max(progress, 0), 1), true
}

func (e *fxEngine) StartRepeating(container Element, interval time.Duration) RepeatHandle {
	e.nextHandle++
	h := e.nextHandle
	e.repeaters[h] = true

	// Initial burst so the screen is not empty while the interval warms up
	for i := 0; i < heartBurstCount; i++ {
		e.sched.After(time.Duration(i)*heartBurstSpacing, func() {
			if e.repeaters[h] {
				e.spawnHeart(container)
			}
		})
	}

	var tick func()
	tick = func() {
		if !e.repeaters[h] {
			return
		}
		e.spawnHeart(container)
		e.sched.After(interval, tick)
	}
	e.sched.After(interval, tick)
	return h
}

func (e *fxEngine) StopRepeating(h RepeatHandle) {
	delete(e.repeaters, h)
}

func (e *fxEngine) spawnHeart(container Element) {
	w, h := e.viewport()
	life := time.Duration((3 + e.rand()*3) * float64(time.Second))
	delay := time.Duration(e.rand() * 0.5 * float64(time.Second))
	e.particles = append(e.particles, particle{
		container: container,
		glyph:     heartGlyphs[int(e.rand()*float64(len(heartGlyphs)))%len(heartGlyphs)],
		x:         e.rand() * w,
		y:         h + 50,
		dy:        -(h + 100),
		born:      e.now().Add(delay),
		travel:    life,
		life:      life,
	})
}

func (e *fxEngine) BurstAt(x, y float64, container Element) {
	now := e.now()
	for i := 0; i < burstCount; i++ {
		angle := float64(i) / burstCount * math.Pi * 2
		distance := 50 + e.rand()*30
		e.particles = append(e.particles, particle{
			container: container,
			glyph:     sparkleGlyphs[int(e.rand()*float64(len(sparkleGlyphs)))%len(sparkleGlyphs)],
			x:         x,
			y:         y,
			dx:        math.Cos(angle) * distance,
			dy:        math.Sin(angle) * distance,
			born:      now,
			travel:    burstTransition,
			life:      burstLifetime,
		})
	}
}

func (e *fxEngine) Clear(container Element) {
	kept := e.particles[:0]
	for _, p := range e.particles {
		if p.container != container {
			kept = append(kept, p)
		}
	}
	e.particles = kept
}

// Particles resolves every visible particle in container at the current time.
func (e *fxEngine) Particles(container Element) []particleView {
	now := e.now()
	var views []particleView
	for _, p := range e.particles {
		if p.container != container || now.Before(p.born) {
			continue
		}
		age := now.Sub(p.born)
		if age >= p.life {
			continue
		}
		t := 1.0
		if p.travel > 0 {
			t = math.Min(float64(age)/float64(p.travel), 1)
		}
		views = append(views, particleView{
			Glyph: p.glyph,
			X:     p.x + p.dx*t,
			Y:     p.y + p.dy*t,
		})
	}
	return views
}
