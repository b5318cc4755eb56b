package tween

import (
	"time"

	"github.com/Faultbox/ratwalk/pkg/math"
)

// ArcHeight scales the up axis at the top of the arc.
const ArcHeight = 4

// expireX is the normalized time past landing at which a trajectory is dropped.
const expireX = 1.2

// LimbState reports whether a limb has a trajectory in flight.
type LimbState int

const (
	// LimbFree: no swing in flight, a new one may start.
	LimbFree LimbState = iota
	// LimbActive: a swing is running and further starts are ignored.
	LimbActive
)

// String returns the state name.
func (s LimbState) String() string {
	if s == LimbActive {
		return "active"
	}
	return "free"
}

// Trajectory is a parabolic arc for one limb.
type Trajectory struct {
	Key      int
	Origin   math.Vec3
	Delta    math.Vec3
	Up       math.Vec3
	Start    time.Time
	Duration time.Duration

	target *math.Vec3
}

// PositionAt evaluates the arc after elapsed time.
// x runs from -1 at the start to +1 at Duration; the height factor
// 1-x^2 is zero at both ends, so x=+1 lands exactly on Origin+Delta.
func (tr *Trajectory) PositionAt(elapsed time.Duration) (pos math.Vec3, x float32) {
	x = float32(2*elapsed.Seconds()/tr.Duration.Seconds() - 1)
	h := 1 - x*x
	return tr.Origin.AddScaled(tr.Up, ArcHeight*h).AddScaled(tr.Delta, x), x
}

// ParabolicScheduler runs at most one trajectory per limb key.
type ParabolicScheduler struct {
	clock  Clock
	active map[int]*Trajectory
}

// NewParabolicScheduler creates an empty scheduler.
func NewParabolicScheduler(clock Clock) *ParabolicScheduler {
	return &ParabolicScheduler{
		clock:  clock,
		active: make(map[int]*Trajectory),
	}
}

// Schedule starts an arc that moves *target toward to over duration.
// It returns false, leaving the existing arc untouched, if key is busy.
func (s *ParabolicScheduler) Schedule(key int, target *math.Vec3, to, up math.Vec3, duration time.Duration) bool {
	if _, busy := s.active[key]; busy {
		return false
	}
	if duration <= 0 {
		*target = to
		return true
	}
	s.active[key] = &Trajectory{
		Key:      key,
		Origin:   *target,
		Delta:    to.Sub(*target),
		Up:       up,
		Start:    s.clock.Now(),
		Duration: duration,
		target:   target,
	}
	return true
}

// State returns whether key is busy.
func (s *ParabolicScheduler) State(key int) LimbState {
	if _, ok := s.active[key]; ok {
		return LimbActive
	}
	return LimbFree
}

// Trajectory returns a copy of the active trajectory for key.
func (s *ParabolicScheduler) Trajectory(key int) (Trajectory, bool) {
	tr, ok := s.active[key]
	if !ok {
		return Trajectory{}, false
	}
	return *tr, true
}

// Len returns the number of trajectories in flight.
func (s *ParabolicScheduler) Len() int {
	return len(s.active)
}

// Tick writes every active arc's current position to its target.
// Arcs past 1.2x normalized time are removed and their target left
// on the landing point.
func (s *ParabolicScheduler) Tick() {
	now := s.clock.Now()
	for key, tr := range s.active {
		pos, x := tr.PositionAt(now.Sub(tr.Start))
		if x > expireX {
			*tr.target = tr.Origin.Add(tr.Delta)
			delete(s.active, key)
			continue
		}
		*tr.target = pos
	}
}
