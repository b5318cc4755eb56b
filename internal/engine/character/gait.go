package character

import (
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ratwalk/internal/engine/tween"
	"github.com/Faultbox/ratwalk/internal/logger"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// GaitConfig holds the step geometry and timing.
type GaitConfig struct {
	StepInterval    time.Duration
	HalfWidth       float32
	Height          float32
	StepClearance   float32
	StepLead        float32
	TurnSensitivity float32

	HeadForward      float32
	HeadLift         float32
	FrontFootForward float32
	BackFootForward  float32
	FootLift         float32
	BodyForward      float32
	BodyLift         float32
	TailForward      float32

	// BodyDelay and BodyDuration are fractions of StepInterval.
	BodyDelay    float32
	BodyDuration float32
	// CameraGlide is the camera pivot ease length in step intervals.
	CameraGlide float32

	TailSwayRate      float32
	TailSwayAmplitude float32
}

// DefaultGaitConfig returns the stock rat gait.
func DefaultGaitConfig() GaitConfig {
	return GaitConfig{
		StepInterval:    200 * time.Millisecond,
		HalfWidth:       1.9,
		Height:          4,
		StepClearance:   3,
		StepLead:        17,
		TurnSensitivity: 0.01,

		HeadForward:      8,
		HeadLift:         6,
		FrontFootForward: 2,
		BackFootForward:  -5,
		FootLift:         1,
		BodyForward:      -6,
		BodyLift:         0.5,
		TailForward:      -20,

		BodyDelay:    0.7,
		BodyDuration: 0.3,
		CameraGlide:  4.3,

		TailSwayRate:      0.02,
		TailSwayAmplitude: 0.015,
	}
}

func scaleDuration(d time.Duration, f float32) time.Duration {
	return time.Duration(float64(d) * float64(f))
}

// GaitEngine turns step and turn input into bone targets, trajectories
// and orientation corrections. It is driven from a single goroutine.
type GaitEngine struct {
	cfg    GaitConfig
	rig    *Rig
	clock  tween.Clock
	finder FootholdFinder

	body   *tween.Blender
	camera *tween.Blender
	feet   *tween.ParabolicScheduler
	eases  *tween.Eases

	world math.AxisFrame

	walk      WalkState
	tail      TailState
	tailUntil time.Time
	tailPhase float32

	lastStep  time.Time
	stepCount int
}

// GaitDeps bundles the animation machinery the engine schedules into.
type GaitDeps struct {
	Clock  tween.Clock
	Finder FootholdFinder
	Body   *tween.Blender
	Camera *tween.Blender
	Feet   *tween.ParabolicScheduler
	Eases  *tween.Eases
}

// NewGaitEngine creates an idle engine. The first step is accepted
// immediately; later steps are rate limited by cfg.StepInterval.
func NewGaitEngine(cfg GaitConfig, rig *Rig, deps GaitDeps) *GaitEngine {
	g := &GaitEngine{
		cfg:       cfg,
		rig:       rig,
		clock:     deps.Clock,
		finder:    deps.Finder,
		body:      deps.Body,
		camera:    deps.Camera,
		feet:      deps.Feet,
		eases:     deps.Eases,
		tailPhase: -1,
	}
	g.updateWorldFrame()
	return g
}

// WalkState returns the walk-cycle state.
func (g *GaitEngine) WalkState() WalkState { return g.walk }

// TailState returns the tail sway state, resolving an expired suppression.
func (g *GaitEngine) TailState() TailState {
	g.resolveTail()
	return g.tail
}

// StepCount returns how many step inputs passed the rate limit.
func (g *GaitEngine) StepCount() int { return g.stepCount }

// WorldFrame is the camera-derived frame steps are planned in.
func (g *GaitEngine) WorldFrame() math.AxisFrame { return g.world }

func (g *GaitEngine) updateWorldFrame() {
	g.world = math.FrameFromQuat(g.camera.Target())
}

// OnStepInput handles a forward key press. It returns true when a step was
// taken. Input within StepInterval of the previous accepted input is
// ignored. An accepted input with no foothold still consumes the interval
// and flips the stepping side, but moves nothing.
func (g *GaitEngine) OnStepInput() bool {
	now := g.clock.Now()
	if g.stepCount > 0 && now.Sub(g.lastStep) < g.cfg.StepInterval {
		return false
	}
	g.lastStep = now
	g.stepCount++
	g.updateWorldFrame()

	side := (g.stepCount + 1) % 2
	back, front := side, side+2
	offset := g.cfg.HalfWidth * float32(2*side-1)

	origin := g.rig.Body.Position.
		AddScaled(g.world.Left, offset).
		AddScaled(g.world.Up, g.cfg.Height+g.cfg.StepClearance).
		AddScaled(g.world.Forward, g.cfg.StepLead)

	hold, ok := g.finder.FindFoothold(origin, g.world)
	if !ok {
		logger.Debug("step dropped, no foothold",
			zap.Int("step", g.stepCount),
			zap.String("foot", BoneName(front)))
		return false
	}

	landing := hold.Point.Round()
	g.rig.Bones[front].Normal = hold.Normal
	g.rig.Bones[front].HasNormal = true

	up := g.alignToGround()
	if g.walk == WalkIdle {
		g.alignBodyToCamera()
		g.walk = WalkStepping
	}

	fwd, left := g.world.Forward, g.world.Left
	interval := g.cfg.StepInterval

	head := landing.
		AddScaled(fwd, g.cfg.HeadForward).
		AddScaled(left, -offset).
		AddScaled(up, g.cfg.HeadLift)
	g.eases.Start(&g.rig.Bones[Head].Position, head, interval)

	landing = landing.AddScaled(up, g.cfg.FootLift)

	g.feet.Schedule(front, &g.rig.Bones[front].Position,
		landing.AddScaled(fwd, g.cfg.FrontFootForward), g.world.Up, interval)
	g.feet.Schedule(back, &g.rig.Bones[back].Position,
		landing.AddScaled(fwd, g.cfg.BackFootForward), g.world.Up, interval)

	bodyPos := landing.
		AddScaled(fwd, g.cfg.BodyForward).
		AddScaled(left, -offset).
		AddScaled(up, g.cfg.BodyLift)
	g.eases.StartDelayed(&g.rig.Body.Position, bodyPos,
		scaleDuration(interval, g.cfg.BodyDuration), scaleDuration(interval, g.cfg.BodyDelay))
	g.eases.Start(&g.rig.CameraPivot.Position, bodyPos, scaleDuration(interval, g.cfg.CameraGlide))

	tail := landing.
		Add(up).
		AddScaled(fwd, g.cfg.TailForward).
		AddScaled(left, -2*offset)
	g.eases.Start(&g.rig.Bones[Tail].Position, tail, interval)

	g.tail = TailSuppressed
	g.tailUntil = now.Add(interval)
	g.tailPhase = 0

	logger.Debug("step",
		zap.Int("step", g.stepCount),
		zap.String("foot", BoneName(front)),
		zap.Int("scan_angle", hold.Angle),
		zap.Float32("distance", hold.Distance))
	return true
}

// OnStepReleased ends the walk cycle.
func (g *GaitEngine) OnStepReleased() {
	g.walk = WalkIdle
}

// OnTurnInput turns the camera about its up axis by delta times the turn
// sensitivity. While walking, the body follows.
func (g *GaitEngine) OnTurnInput(delta float32) {
	g.camera.RotateAroundUp(delta * g.cfg.TurnSensitivity)
	g.updateWorldFrame()
	if g.walk == WalkStepping {
		g.alignBodyToCamera()
	}
}

// alignToGround tilts body and camera so their up axis follows the summed
// front-foot normals. It returns the camera up from before the tilt, which
// the step offsets are lifted along.
func (g *GaitEngine) alignToGround() math.Vec3 {
	up := math.FrameFromQuat(g.camera.Target()).Up.Normalize()
	q, ok := math.AlignmentQuat(up, g.rig.FrontNormalSum())
	if ok {
		g.body.ApplyDelta(q)
		g.camera.ApplyDelta(q)
	}
	return up
}

// alignBodyToCamera yaws the body about its own up axis so it faces the
// camera's forward direction.
func (g *GaitEngine) alignBodyToCamera() {
	frame := math.FrameFromQuat(g.body.Target())
	q, ok := math.AlignmentQuatOnPlane(g.world.Forward, frame.Forward, frame.Up)
	if !ok {
		return
	}
	g.body.ApplyDelta(q)
}

func (g *GaitEngine) resolveTail() {
	if g.tail == TailSuppressed && !g.clock.Now().Before(g.tailUntil) {
		g.tail = TailSwaying
	}
}

// UpdateTail applies one frame of idle sway unless a step suppresses it.
func (g *GaitEngine) UpdateTail() {
	g.resolveTail()
	if g.tail != TailSwaying {
		return
	}
	g.tailPhase += g.cfg.TailSwayRate
	sway := g.cfg.TailSwayAmplitude * float32(gomath.Sin(float64(g.tailPhase)))
	bone := &g.rig.Bones[Tail]
	bone.Position = bone.Position.AddScaled(g.world.Left, sway)
}
