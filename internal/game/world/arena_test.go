package world

import (
	"errors"
	"testing"

	"github.com/Faultbox/ratwalk/internal/config"
	"github.com/Faultbox/ratwalk/internal/engine/grid"
	"github.com/Faultbox/ratwalk/pkg/math"
)

func contains(surfaces []uint32, id uint32) bool {
	for _, s := range surfaces {
		if s == id {
			return true
		}
	}
	return false
}

func queryIDs(g *grid.SparseGrid, p math.Vec3, r int) []uint32 {
	var ids []uint32
	for _, s := range g.QueryRadius(p, r) {
		ids = append(ids, s.ID())
	}
	return ids
}

func TestBuildIndexesGroundAndObstacles(t *testing.T) {
	cfg := config.WorldConfig{
		GroundSize: 100,
		GroundY:    -2,
		Obstacles: []config.ObstacleConfig{
			{Name: "box", Center: math.Vec3{X: 20, Y: 5, Z: 0}, Size: math.Vec3{X: 10, Y: 10, Z: 10}},
		},
	}
	a, err := Build(cfg, 5)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Ground == nil || len(a.Obstacles) != 1 {
		t.Fatalf("ground=%v obstacles=%d", a.Ground, len(a.Obstacles))
	}
	if got := a.Ground.Bounds().Min.Y; got != -2 {
		t.Errorf("ground at y=%v, want -2", got)
	}

	// Anywhere on the ground finds it.
	for _, p := range []math.Vec3{{X: -40, Y: -2, Z: 40}, {Y: -2}, {X: 45, Y: -2, Z: -45}} {
		if !contains(queryIDs(a.Grid, p, 1), a.Ground.ID()) {
			t.Errorf("ground not indexed at %+v", p)
		}
	}

	box := a.Obstacles[0]
	// Shell face, not interior.
	if !contains(queryIDs(a.Grid, math.Vec3{X: 25, Y: 5, Z: 0}, 0), box.ID()) {
		t.Error("box face not indexed")
	}
	if contains(queryIDs(a.Grid, math.Vec3{X: 20, Y: 5, Z: 0}, 0), box.ID()) {
		t.Error("box interior indexed")
	}
}

func TestBuildEmpty(t *testing.T) {
	if _, err := Build(config.WorldConfig{}, 5); !errors.Is(err, ErrEmptyArena) {
		t.Errorf("Build() error = %v, want ErrEmptyArena", err)
	}
}

func TestBuildBadCellSize(t *testing.T) {
	_, err := Build(config.WorldConfig{GroundSize: 10}, 0)
	if !errors.Is(err, grid.ErrInvalidCellSize) {
		t.Errorf("Build() error = %v, want ErrInvalidCellSize", err)
	}
}

func TestBuildDefaultWorld(t *testing.T) {
	cfg := config.Default()
	a, err := Build(cfg.World, cfg.Grid.CellSize)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a.Obstacles) != len(cfg.World.Obstacles) {
		t.Errorf("%d obstacles, want %d", len(a.Obstacles), len(cfg.World.Obstacles))
	}
	if a.Grid.Len() == 0 {
		t.Error("grid is empty")
	}
}
