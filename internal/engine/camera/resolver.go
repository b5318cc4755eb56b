// Package camera keeps a trailing camera from clipping through world geometry.
package camera

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ratwalk/internal/engine/grid"
	"github.com/Faultbox/ratwalk/internal/engine/picking"
	"github.com/Faultbox/ratwalk/internal/engine/scene"
	"github.com/Faultbox/ratwalk/internal/engine/tween"
	"github.com/Faultbox/ratwalk/internal/logger"
	"github.com/Faultbox/ratwalk/pkg/math"
)

// EaseState is what the resolver did on its last evaluation.
type EaseState int

const (
	// EaseIdle: camera at rest, nothing in the way.
	EaseIdle EaseState = iota
	// EaseObstructed: zooming in to the nearest blocking surface.
	EaseObstructed
	// EaseReturning: stepping back toward the rest position.
	EaseReturning
)

// String returns the state name.
func (s EaseState) String() string {
	switch s {
	case EaseIdle:
		return "idle"
	case EaseObstructed:
		return "obstructed"
	case EaseReturning:
		return "returning"
	default:
		return "unknown"
	}
}

// Config tunes the resolver.
type Config struct {
	QueryRadius   int           // grid cells around the camera
	MoveThreshold float32       // subject movement below this skips the frame
	ZoomIn        time.Duration // ease length toward an obstruction
	ZoomOutStep   float32       // fraction of the way back to rest per frame
	SubjectRadius float32
}

// DefaultConfig returns the stock camera tuning.
func DefaultConfig() Config {
	return Config{
		QueryRadius:   3,
		MoveThreshold: 0.001,
		ZoomIn:        266 * time.Millisecond,
		ZoomOutStep:   0.05,
		SubjectRadius: 6,
	}
}

// ObstructionResolver pulls the camera in front of geometry between it
// and the subject, and lets it drift back out once the view is clear.
// Camera positions are in the camera parent's local space.
type ObstructionResolver struct {
	cfg     Config
	grid    *grid.SparseGrid
	eases   *tween.Eases
	camera  *scene.Node
	subject *scene.Node

	rest        math.Vec3
	lastSubject math.Vec3
	state       EaseState
}

// NewObstructionResolver records the camera's current local position as rest.
func NewObstructionResolver(cfg Config, g *grid.SparseGrid, eases *tween.Eases, camera, subject *scene.Node) *ObstructionResolver {
	return &ObstructionResolver{
		cfg:         cfg,
		grid:        g,
		eases:       eases,
		camera:      camera,
		subject:     subject,
		rest:        camera.Position,
		lastSubject: subject.WorldPosition(),
	}
}

// State returns the last evaluation's outcome.
func (r *ObstructionResolver) State() EaseState { return r.state }

// Rest returns the unobstructed camera position.
func (r *ObstructionResolver) Rest() math.Vec3 { return r.rest }

// Update runs one frame. It does nothing while the subject is still.
func (r *ObstructionResolver) Update() EaseState {
	subjectPos := r.subject.WorldPosition()
	moved := subjectPos.Distance(r.lastSubject)
	r.lastSubject = subjectPos
	if moved < r.cfg.MoveThreshold {
		return r.state
	}

	camPos := r.camera.WorldPosition()
	if local, ok := r.obstruction(camPos, subjectPos); ok {
		r.eases.Start(&r.camera.Position, local, r.cfg.ZoomIn)
		if r.state != EaseObstructed {
			logger.Debug("camera obstructed", zap.Float32("z", local.Z))
		}
		r.state = EaseObstructed
		return r.state
	}

	r.eases.Cancel(&r.camera.Position)
	step := r.rest.Sub(r.camera.Position).Scale(r.cfg.ZoomOutStep)
	r.camera.Position = r.camera.Position.Add(step)
	r.state = EaseReturning
	return r.state
}

// obstruction returns the nearest blocking hit in the camera parent's
// local space. A hit blocks when it is closer than the subject's bounding
// sphere and lies on the parent's +Z side.
func (r *ObstructionResolver) obstruction(camPos, subjectPos math.Vec3) (math.Vec3, bool) {
	dir := subjectPos.Sub(camPos)
	if dir.IsZero() {
		return math.Vec3{}, false
	}
	ray := picking.NewRay(camPos, dir.Normalize())

	subjectT, ok := ray.IntersectSphere(picking.Sphere{Center: subjectPos, Radius: r.cfg.SubjectRadius})
	if !ok {
		return math.Vec3{}, false
	}

	surfaces := r.grid.QueryRadius(camPos, r.cfg.QueryRadius)
	hits := picking.IntersectSurfaces(ray, surfaces, picking.IntersectOptions{CullBackfaces: false})
	if len(hits) == 0 || hits[0].Distance >= subjectT {
		return math.Vec3{}, false
	}

	local := hits[0].Point
	if parent := r.camera.Parent(); parent != nil {
		local = parent.WorldToLocal(local)
	}
	if local.Z <= 0 {
		return math.Vec3{}, false
	}
	return local, true
}
