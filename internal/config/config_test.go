package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/ratwalk/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Grid.CellSize != 10 {
		t.Errorf("expected cell size 10, got %v", cfg.Grid.CellSize)
	}
	if cfg.Grid.FootholdRadius != 1 || cfg.Grid.CameraRadius != 3 {
		t.Errorf("unexpected query radii %d/%d", cfg.Grid.FootholdRadius, cfg.Grid.CameraRadius)
	}
	if cfg.Gait.StepInterval != 200*time.Millisecond {
		t.Errorf("expected step interval 200ms, got %v", cfg.Gait.StepInterval)
	}
	if cfg.Gait.Cutoff != 15 {
		t.Errorf("expected cutoff 15, got %v", cfg.Gait.Cutoff)
	}
	if cfg.Camera.ZoomIn != 266*time.Millisecond {
		t.Errorf("expected zoom in 266ms, got %v", cfg.Camera.ZoomIn)
	}
	if cfg.Camera.Offset != (math.Vec3{Y: 20, Z: 40}) {
		t.Errorf("unexpected camera offset %+v", cfg.Camera.Offset)
	}
	if cfg.Blend.Factor != 0.1 {
		t.Errorf("expected blend factor 0.1, got %v", cfg.Blend.Factor)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ratwalk.yaml")

	yamlContent := `
grid:
  cell_size: 8
  camera_radius: 2

gait:
  step_interval: 150ms
  cutoff: 12

camera:
  offset: {x: 0, y: 10, z: 30}

hero:
  start: {x: 5, y: 2, z: -3}

world:
  ground_size: 100
  obstacles:
    - name: box
      center: {x: 0, y: 2, z: -20}
      size: {x: 4, y: 4, z: 4}

sim:
  frames: 30
  frame_time: 10ms

logging:
  level: "debug"
  log_file: "ratwalk.log"
  json: true
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Grid.CellSize != 8 || cfg.Grid.CameraRadius != 2 {
		t.Errorf("grid = %+v", cfg.Grid)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Grid.FootholdRadius != 1 {
		t.Errorf("expected default foothold radius, got %d", cfg.Grid.FootholdRadius)
	}
	if cfg.Gait.StepInterval != 150*time.Millisecond {
		t.Errorf("expected step interval 150ms, got %v", cfg.Gait.StepInterval)
	}
	if cfg.Camera.Offset != (math.Vec3{Y: 10, Z: 30}) {
		t.Errorf("camera offset = %+v", cfg.Camera.Offset)
	}
	if cfg.Hero.Start != (math.Vec3{X: 5, Y: 2, Z: -3}) {
		t.Errorf("hero start = %+v", cfg.Hero.Start)
	}
	if len(cfg.World.Obstacles) != 1 || cfg.World.Obstacles[0].Name != "box" {
		t.Errorf("obstacles = %+v", cfg.World.Obstacles)
	}
	if cfg.Sim.Frames != 30 || cfg.Sim.FrameTime != 10*time.Millisecond {
		t.Errorf("sim = %+v", cfg.Sim)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "ratwalk.log" || !cfg.Logging.JSON {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad syntax", content: "grid:\n  cell_size: not a number\n  invalid syntax here\n"},
		{name: "unknown key", content: "grid:\n  cell_sise: 4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if err := loadFromFile(Default(), path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}

	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFromEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("empty file: %v", err)
	}
	if cfg.Grid.CellSize != 10 {
		t.Error("empty file changed defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell size", func(c *Config) { c.Grid.CellSize = 0 }},
		{"negative radius", func(c *Config) { c.Grid.CameraRadius = -1 }},
		{"zero step interval", func(c *Config) { c.Gait.StepInterval = 0 }},
		{"zero cutoff", func(c *Config) { c.Gait.Cutoff = 0 }},
		{"blend factor above one", func(c *Config) { c.Blend.Factor = 1.5 }},
		{"zero blend factor", func(c *Config) { c.Blend.Factor = 0 }},
		{"zero zoom out step", func(c *Config) { c.Camera.ZoomOutStep = 0 }},
		{"negative frames", func(c *Config) { c.Sim.Frames = -1 }},
		{"zero frame time", func(c *Config) { c.Sim.FrameTime = 0 }},
		{"flat obstacle", func(c *Config) {
			c.World.Obstacles = []ObstacleConfig{{Name: "sheet", Size: math.Vec3{X: 1, Y: 0, Z: 1}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "ratwalk.yaml"), []byte("grid:\n  cell_size: 5\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find ratwalk.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "frames flag",
			setup: func() { *flagFrames = 42 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sim.Frames != 42 {
					t.Errorf("expected 42 frames, got %d", cfg.Sim.Frames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
		{
			name:  "zero frames flag",
			setup: func() { *flagFrames = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sim.Frames != 0 {
					t.Errorf("expected 0 frames, got %d", cfg.Sim.Frames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
		{
			name:  "cell size flag",
			setup: func() { *flagCellSize = 2.5 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grid.CellSize != 2.5 {
					t.Errorf("expected cell size 2.5, got %v", cfg.Grid.CellSize)
				}
			},
			teardown: func() { *flagCellSize = 0 },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "run.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
grid:
  cell_size: 6
sim:
  frames: 90
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagFrames = 12
	defer func() {
		*flagConfig = ""
		*flagFrames = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Sim.Frames != 12 {
		t.Errorf("expected 12 frames from flag, got %d", cfg.Sim.Frames)
	}
	if cfg.Grid.CellSize != 6 {
		t.Errorf("expected cell size 6 from file, got %v", cfg.Grid.CellSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("blend:\n  factor: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Grid.CellSize = 7
	cfg.Gait.StepInterval = 250 * time.Millisecond

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Grid.CellSize != 7 || loaded.Gait.StepInterval != 250*time.Millisecond {
		t.Errorf("reloaded grid=%+v gait=%+v", loaded.Grid, loaded.Gait)
	}
	if len(loaded.World.Obstacles) != len(cfg.World.Obstacles) {
		t.Errorf("reloaded %d obstacles, want %d", len(loaded.World.Obstacles), len(cfg.World.Obstacles))
	}
}
