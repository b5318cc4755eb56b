// Package game ties the gait engine, camera resolver and IK solving into
// one update per frame.
package game

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ratwalk/internal/config"
	"github.com/Faultbox/ratwalk/internal/engine/camera"
	"github.com/Faultbox/ratwalk/internal/engine/character"
	"github.com/Faultbox/ratwalk/internal/engine/tween"
	"github.com/Faultbox/ratwalk/internal/game/world"
	"github.com/Faultbox/ratwalk/internal/logger"
)

// IKSolver solves one limb chain against the rig's bone targets.
type IKSolver interface {
	Solve(rig *character.Rig)
}

// IKSolverFunc adapts a function to IKSolver.
type IKSolverFunc func(rig *character.Rig)

// Solve calls f.
func (f IKSolverFunc) Solve(rig *character.Rig) { f(rig) }

type stage struct {
	name string
	run  func()
}

// Coordinator owns the rig and everything that animates it.
// Update must be called from a single goroutine.
type Coordinator struct {
	Rig    *character.Rig
	Arena  *world.Arena
	Gait   *character.GaitEngine
	Camera *camera.ObstructionResolver

	clock       tween.Clock
	start       time.Time
	body        *tween.Blender
	cameraBlend *tween.Blender
	feet        *tween.ParabolicScheduler
	eases       *tween.Eases
	solvers     []IKSolver

	stages []stage
	frames int
}

// New wires a rig into arena using cfg. Solvers run once per frame, in order,
// after all bone targets are updated.
func New(cfg *config.Config, arena *world.Arena, clock tween.Clock, solvers ...IKSolver) *Coordinator {
	rig := character.NewRig(cfg.Hero.Start, cfg.Camera.Offset)

	c := &Coordinator{
		Rig:         rig,
		Arena:       arena,
		clock:       clock,
		start:       clock.Now(),
		body:        tween.NewBlender(rig.Body, cfg.Blend.Factor),
		cameraBlend: tween.NewBlender(rig.CameraPivot, cfg.Blend.Factor),
		feet:        tween.NewParabolicScheduler(clock),
		eases:       tween.NewEases(clock),
		solvers:     solvers,
	}

	finder := &character.GridFootholdFinder{
		Grid:   arena.Grid,
		Radius: cfg.Grid.FootholdRadius,
		Cutoff: cfg.Gait.Cutoff,
	}
	c.Gait = character.NewGaitEngine(gaitConfig(cfg), rig, character.GaitDeps{
		Clock:  clock,
		Finder: finder,
		Body:   c.body,
		Camera: c.cameraBlend,
		Feet:   c.feet,
		Eases:  c.eases,
	})
	c.Camera = camera.NewObstructionResolver(cameraConfig(cfg), arena.Grid, c.eases, rig.Camera, rig.Body)

	c.stages = []stage{
		{"blend", c.blend},
		{"tween", c.advanceTweens},
		{"tail", c.Gait.UpdateTail},
		{"camera", c.resolveCamera},
		{"hip", c.updateHip},
		{"ik", c.solve},
	}

	logger.Info("coordinator ready",
		zap.Int("chains", len(character.Chains())),
		zap.Int("solvers", len(solvers)),
		zap.Duration("step_interval", cfg.Gait.StepInterval))
	return c
}

func gaitConfig(cfg *config.Config) character.GaitConfig {
	gc := character.DefaultGaitConfig()
	gc.StepInterval = cfg.Gait.StepInterval
	gc.HalfWidth = cfg.Gait.HalfWidth
	gc.Height = cfg.Gait.Height
	gc.StepLead = cfg.Gait.Lead
	gc.StepClearance = cfg.Gait.Clearance
	gc.TurnSensitivity = cfg.Gait.TurnSensitivity
	return gc
}

func cameraConfig(cfg *config.Config) camera.Config {
	cc := camera.DefaultConfig()
	cc.QueryRadius = cfg.Grid.CameraRadius
	cc.MoveThreshold = cfg.Camera.MoveThreshold
	cc.ZoomIn = cfg.Camera.ZoomIn
	cc.ZoomOutStep = cfg.Camera.ZoomOutStep
	cc.SubjectRadius = cfg.Hero.SphereRadius
	return cc
}

// Update advances one frame: orientation blending, position tweens and
// foot arcs, tail sway, camera obstruction, hip bob, then IK.
func (c *Coordinator) Update() {
	for _, s := range c.stages {
		s.run()
	}
	c.frames++
}

// Stages lists the per-frame stages in execution order.
func (c *Coordinator) Stages() []string {
	names := make([]string, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

// Frames returns how many times Update has run.
func (c *Coordinator) Frames() int { return c.frames }

// Feet exposes the foot trajectory scheduler.
func (c *Coordinator) Feet() *tween.ParabolicScheduler { return c.feet }

// Eases exposes the position ease set.
func (c *Coordinator) Eases() *tween.Eases { return c.eases }

func (c *Coordinator) blend() {
	c.body.Tick()
	c.cameraBlend.Tick()
}

func (c *Coordinator) advanceTweens() {
	c.eases.Tick()
	c.feet.Tick()
}

func (c *Coordinator) resolveCamera() {
	c.Camera.Update()
}

func (c *Coordinator) updateHip() {
	c.Rig.UpdateHip(c.clock.Now().Sub(c.start))
}

func (c *Coordinator) solve() {
	for _, s := range c.solvers {
		s.Solve(c.Rig)
	}
}
