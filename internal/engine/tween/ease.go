package tween

import (
	"time"

	"github.com/Faultbox/ratwalk/pkg/math"
)

type ease struct {
	from, to math.Vec3
	start    time.Time
	duration time.Duration
}

// Eases runs linear, time-bounded position tweens. Each target vector
// has at most one ease; starting another replaces it.
type Eases struct {
	clock  Clock
	active map[*math.Vec3]*ease
}

// NewEases creates an empty ease set.
func NewEases(clock Clock) *Eases {
	return &Eases{
		clock:  clock,
		active: make(map[*math.Vec3]*ease),
	}
}

// Start eases *target to to over duration, beginning now.
func (e *Eases) Start(target *math.Vec3, to math.Vec3, duration time.Duration) {
	e.StartDelayed(target, to, duration, 0)
}

// StartDelayed eases *target to to over duration, beginning after delay.
// The start value is captured immediately.
func (e *Eases) StartDelayed(target *math.Vec3, to math.Vec3, duration, delay time.Duration) {
	e.active[target] = &ease{
		from:     *target,
		to:       to,
		start:    e.clock.Now().Add(delay),
		duration: duration,
	}
}

// Cancel stops any ease on target, leaving it where it is.
func (e *Eases) Cancel(target *math.Vec3) {
	delete(e.active, target)
}

// Active reports whether target is being eased.
func (e *Eases) Active(target *math.Vec3) bool {
	_, ok := e.active[target]
	return ok
}

// Len returns the number of running eases.
func (e *Eases) Len() int {
	return len(e.active)
}

// Tick advances every ease. Finished eases land exactly on their goal.
func (e *Eases) Tick() {
	now := e.clock.Now()
	for target, es := range e.active {
		elapsed := now.Sub(es.start)
		if elapsed < 0 {
			continue
		}
		t := float32(1)
		if es.duration > 0 {
			t = min(float32(elapsed.Seconds()/es.duration.Seconds()), 1)
		}
		*target = es.from.Lerp(es.to, t)
		if t >= 1 {
			delete(e.active, target)
		}
	}
}
