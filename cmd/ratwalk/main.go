// Package main runs a headless scripted walk over the configured arena,
// on a simulated clock unless sim.realtime is set.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ratwalk/internal/config"
	"github.com/Faultbox/ratwalk/internal/engine/character"
	"github.com/Faultbox/ratwalk/internal/engine/tween"
	"github.com/Faultbox/ratwalk/internal/game"
	"github.com/Faultbox/ratwalk/internal/game/world"
	"github.com/Faultbox/ratwalk/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	opts := logger.Options{Level: cfg.Logging.Level, Console: true, JSON: cfg.Logging.JSON}
	if cfg.Logging.LogFile != "" {
		opts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.InitWithOptions(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== ratwalk ===")
	logger.Debug("config loaded", zap.Any("config", cfg))

	arena, err := world.Build(cfg.World, cfg.Grid.CellSize)
	if err != nil {
		logger.Error("failed to build arena", zap.Error(err))
		os.Exit(1)
	}

	var clock tween.Clock
	var advance func()
	if cfg.Sim.Realtime {
		clock = tween.SystemClock{}
		advance = func() { time.Sleep(cfg.Sim.FrameTime) }
	} else {
		manual := tween.NewManualClock(time.Now())
		clock = manual
		advance = func() { manual.Advance(cfg.Sim.FrameTime) }
	}
	coord := game.New(cfg, arena, clock, chainLoggers()...)

	run(coord, advance, cfg.Sim)
	logger.Info("simulation finished",
		zap.Int("frames", coord.Frames()),
		zap.Int("steps", coord.Gait.StepCount()),
		zap.String("camera", coord.Camera.State().String()))
}

// chainLoggers stands in for an IK solver and traces each chain's target.
func chainLoggers() []game.IKSolver {
	var solvers []game.IKSolver
	for _, chain := range character.Chains() {
		solvers = append(solvers, game.IKSolverFunc(func(r *character.Rig) {
			if !logger.Enabled(zap.DebugLevel) {
				return
			}
			p := r.Bones[chain.Target].Position
			logger.Debug("ik target",
				zap.String("chain", chain.Name),
				zap.Int("joints", chain.Joints),
				zap.Float32("x", p.X), zap.Float32("y", p.Y), zap.Float32("z", p.Z))
		}))
	}
	return solvers
}

// run presses forward every StepEvery frames, nudges the pointer every
// TurnEvery frames, and reports the pose once per simulated second.
func run(coord *game.Coordinator, advance func(), sim config.SimConfig) {
	perSecond := max(int(time.Second/sim.FrameTime), 1)
	walking := false

	for frame := 0; frame < sim.Frames; frame++ {
		if sim.StepEvery > 0 && frame%sim.StepEvery == 0 {
			coord.Gait.OnStepInput()
			walking = true
		}
		if sim.TurnEvery > 0 && frame%sim.TurnEvery == sim.TurnEvery/2 {
			coord.Gait.OnTurnInput(sim.TurnDelta)
		}

		advance()
		coord.Update()

		if frame%perSecond == 0 {
			body := coord.Rig.Body.Position
			logger.Info("pose",
				zap.Int("frame", frame),
				zap.Float32("x", body.X),
				zap.Float32("y", body.Y),
				zap.Float32("z", body.Z),
				zap.Stringer("walk", coord.Gait.WalkState()),
				zap.Stringer("tail", coord.Gait.TailState()),
				zap.Stringer("camera", coord.Camera.State()))
		}
	}
	if walking {
		coord.Gait.OnStepReleased()
	}
}
