// Package world builds the static arena the rat walks over and indexes it.
package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/ratwalk/internal/config"
	"github.com/Faultbox/ratwalk/internal/engine/grid"
	"github.com/Faultbox/ratwalk/internal/engine/scene"
	"github.com/Faultbox/ratwalk/internal/logger"
)

// ErrEmptyArena is returned when a config describes no geometry at all.
var ErrEmptyArena = errors.New("arena has no geometry")

// Arena owns the static meshes and the grid that indexes them.
type Arena struct {
	Grid      *grid.SparseGrid
	Ground    *scene.Mesh // nil when ground_size is 0
	Obstacles []*scene.Mesh
}

// Build creates the ground quad and obstacle boxes from cfg and indexes
// them: the ground by surface sampling, obstacles by bounding-box shell.
func Build(cfg config.WorldConfig, cellSize float32) (*Arena, error) {
	if cfg.GroundSize <= 0 && len(cfg.Obstacles) == 0 {
		return nil, ErrEmptyArena
	}

	g, err := grid.New(cellSize)
	if err != nil {
		return nil, fmt.Errorf("creating grid: %w", err)
	}
	a := &Arena{Grid: g}

	if cfg.GroundSize > 0 {
		ground := scene.NewQuad("ground", cfg.GroundSize, cfg.GroundSize)
		ground.Node.Position.Y = cfg.GroundY
		a.Ground = ground
		a.Add(ground, grid.CoverageSurface)
	}

	for _, o := range cfg.Obstacles {
		box := scene.NewBox(o.Name, o.Size)
		box.Node.Position = o.Center
		a.Obstacles = append(a.Obstacles, box)
		a.Add(box, grid.CoverageShell)
	}

	logger.Info("arena built",
		zap.Int("obstacles", len(a.Obstacles)),
		zap.Int("cells", g.Len()),
		zap.Float32("cell_size", cellSize))
	return a, nil
}

// Add refreshes the mesh's world transform and indexes it.
func (a *Arena) Add(m *scene.Mesh, coverage grid.Coverage) {
	m.UpdateWorld()
	before := a.Grid.Len()
	a.Grid.Insert(m, coverage)
	logger.Debug("indexed mesh",
		zap.String("mesh", m.Name),
		zap.Stringer("coverage", coverage),
		zap.Int("new_cells", a.Grid.Len()-before))
}
