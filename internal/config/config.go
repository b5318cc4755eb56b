// Package config handles simulation configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Faultbox/ratwalk/pkg/math"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Gait    GaitConfig    `yaml:"gait"`
	Camera  CameraConfig  `yaml:"camera"`
	Blend   BlendConfig   `yaml:"blend"`
	Hero    HeroConfig    `yaml:"hero"`
	World   WorldConfig   `yaml:"world"`
	Sim     SimConfig     `yaml:"sim"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig sizes the spatial index and its query neighborhoods.
type GridConfig struct {
	CellSize       float32 `yaml:"cell_size"`
	FootholdRadius int     `yaml:"foothold_radius"` // cells
	CameraRadius   int     `yaml:"camera_radius"`   // cells
}

// GaitConfig holds the tunable part of the step geometry.
type GaitConfig struct {
	StepInterval    time.Duration `yaml:"step_interval"`
	HalfWidth       float32       `yaml:"half_width"`
	Height          float32       `yaml:"height"`
	Lead            float32       `yaml:"lead"`
	Clearance       float32       `yaml:"clearance"`
	Cutoff          float32       `yaml:"cutoff"`
	TurnSensitivity float32       `yaml:"turn_sensitivity"`
}

// CameraConfig holds the trailing camera settings.
type CameraConfig struct {
	ZoomIn        time.Duration `yaml:"zoom_in"`
	ZoomOutStep   float32       `yaml:"zoom_out_step"`
	Offset        math.Vec3     `yaml:"offset"`
	MoveThreshold float32       `yaml:"move_threshold"`
}

// BlendConfig holds the orientation blend factor.
type BlendConfig struct {
	Factor float32 `yaml:"factor"`
}

// HeroConfig places the rat.
type HeroConfig struct {
	Start        math.Vec3 `yaml:"start"`
	SphereRadius float32   `yaml:"sphere_radius"`
}

// WorldConfig describes the arena.
type WorldConfig struct {
	GroundSize float32          `yaml:"ground_size"`
	GroundY    float32          `yaml:"ground_y"`
	Obstacles  []ObstacleConfig `yaml:"obstacles"`
}

// ObstacleConfig is an axis-aligned box in the arena.
type ObstacleConfig struct {
	Name   string    `yaml:"name"`
	Center math.Vec3 `yaml:"center"`
	Size   math.Vec3 `yaml:"size"`
}

// SimConfig scripts the headless run.
type SimConfig struct {
	Frames    int           `yaml:"frames"`
	FrameTime time.Duration `yaml:"frame_time"`
	StepEvery int           `yaml:"step_every"` // frames between step presses
	TurnEvery int           `yaml:"turn_every"` // frames between turns, 0 disables
	TurnDelta float32       `yaml:"turn_delta"` // pointer delta per turn
	Realtime  bool          `yaml:"realtime"`   // pace frames on the wall clock
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			CellSize:       10,
			FootholdRadius: 1,
			CameraRadius:   3,
		},
		Gait: GaitConfig{
			StepInterval:    200 * time.Millisecond,
			HalfWidth:       1.9,
			Height:          4,
			Lead:            17,
			Clearance:       3,
			Cutoff:          15,
			TurnSensitivity: 0.01,
		},
		Camera: CameraConfig{
			ZoomIn:        266 * time.Millisecond,
			ZoomOutStep:   0.05,
			Offset:        math.Vec3{Y: 20, Z: 40},
			MoveThreshold: 0.001,
		},
		Blend: BlendConfig{Factor: 0.1},
		Hero: HeroConfig{
			Start:        math.Vec3{Y: 1.5},
			SphereRadius: 6,
		},
		World: WorldConfig{
			GroundSize: 400,
			Obstacles: []ObstacleConfig{
				{Name: "north_wall", Center: math.Vec3{Y: 15, Z: -150}, Size: math.Vec3{X: 120, Y: 30, Z: 4}},
				{Name: "pillar", Center: math.Vec3{X: 25, Y: 10, Z: -60}, Size: math.Vec3{X: 8, Y: 20, Z: 8}},
				{Name: "crate", Center: math.Vec3{X: -20, Y: 3, Z: -30}, Size: math.Vec3{X: 6, Y: 6, Z: 6}},
			},
		},
		Sim: SimConfig{
			Frames:    600,
			FrameTime: 16 * time.Millisecond,
			StepEvery: 15,
			TurnEvery: 120,
			TurnDelta: 40,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first setting the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Grid.CellSize <= 0:
		return fmt.Errorf("%w: grid.cell_size must be positive, got %v", ErrInvalidConfig, c.Grid.CellSize)
	case c.Grid.FootholdRadius < 0 || c.Grid.CameraRadius < 0:
		return fmt.Errorf("%w: grid query radii must not be negative", ErrInvalidConfig)
	case c.Gait.StepInterval <= 0:
		return fmt.Errorf("%w: gait.step_interval must be positive, got %v", ErrInvalidConfig, c.Gait.StepInterval)
	case c.Gait.Cutoff <= 0:
		return fmt.Errorf("%w: gait.cutoff must be positive, got %v", ErrInvalidConfig, c.Gait.Cutoff)
	case c.Blend.Factor <= 0 || c.Blend.Factor > 1:
		return fmt.Errorf("%w: blend.factor must be in (0,1], got %v", ErrInvalidConfig, c.Blend.Factor)
	case c.Camera.ZoomOutStep <= 0 || c.Camera.ZoomOutStep > 1:
		return fmt.Errorf("%w: camera.zoom_out_step must be in (0,1], got %v", ErrInvalidConfig, c.Camera.ZoomOutStep)
	case c.Sim.Frames < 0:
		return fmt.Errorf("%w: sim.frames must not be negative", ErrInvalidConfig)
	case c.Sim.FrameTime <= 0:
		return fmt.Errorf("%w: sim.frame_time must be positive, got %v", ErrInvalidConfig, c.Sim.FrameTime)
	}
	for _, o := range c.World.Obstacles {
		if o.Size.X <= 0 || o.Size.Y <= 0 || o.Size.Z <= 0 {
			return fmt.Errorf("%w: obstacle %q has non-positive size %+v", ErrInvalidConfig, o.Name, o.Size)
		}
	}
	return nil
}
