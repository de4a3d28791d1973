// Package scene turns a maze grid into the build plan the browser uses to create meshes and
// static colliders. Grid (x, y) maps to world (x, z); world y is up.
package scene

import (
	"context"
	"errors"

	"github.com/beka-birhanu/circuit-maze/maze"
	"golang.org/x/sync/errgroup"
)

const (
	wallHeight    = 3.0
	tileSize      = 0.95
	tileThickness = 0.1
	platformRise  = 0.5
	groundY       = -0.5
)

// Primitive shapes.
const (
	ShapeBox   = "box"
	ShapePlane = "plane"
)

// Materials the client maps to its own shaders.
const (
	MaterialWall   = "wall"
	MaterialPath   = "path"
	MaterialGround = "ground"
)

var ErrNilGrid = errors.New("grid is required")

// Vec3 is a world space vector.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Visual is one mesh to create.
type Visual struct {
	Cell     maze.Position `json:"cell"`
	Shape    string        `json:"shape"`
	Material string        `json:"material"`
	Position Vec3          `json:"position"`
	Size     Vec3          `json:"size"`
}

// Collider is one static physics body.
type Collider struct {
	Cell        maze.Position `json:"cell"`
	Shape       string        `json:"shape"`
	Position    Vec3          `json:"position"`
	HalfExtents Vec3          `json:"half_extents"`
}

// Plan holds every visual and collider for a grid.
type Plan struct {
	Visuals   []Visual   `json:"visuals"`
	Colliders []Collider `json:"colliders"`
}

// Build runs the visual and collider passes concurrently over g.
func Build(ctx context.Context, g *maze.Grid) (*Plan, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	plan := &Plan{}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		visuals, err := buildVisuals(ctx, g)
		plan.Visuals = visuals
		return err
	})
	eg.Go(func() error {
		colliders, err := buildColliders(ctx, g)
		plan.Colliders = colliders
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return plan, nil
}

func groundSize(g *maze.Grid) float64 {
	return float64(max(g.Width(), g.Height())) * 2
}

func buildVisuals(ctx context.Context, g *maze.Grid) ([]Visual, error) {
	size := groundSize(g)
	visuals := make([]Visual, 0, g.Width()*g.Height()+1)
	visuals = append(visuals, Visual{
		Shape:    ShapePlane,
		Material: MaterialGround,
		Position: Vec3{Y: groundY},
		Size:     Vec3{X: size, Z: size},
	})

	g.Each(func(p maze.Position, c maze.Cell) {
		x, z := float64(p.X), float64(p.Y)
		if c.Kind == maze.Wall {
			visuals = append(visuals, Visual{
				Cell:     p,
				Shape:    ShapeBox,
				Material: MaterialWall,
				Position: Vec3{X: x, Y: wallHeight / 2, Z: z},
				Size:     Vec3{X: 1, Y: wallHeight, Z: 1},
			})
			return
		}
		visuals = append(visuals, Visual{
			Cell:     p,
			Shape:    ShapeBox,
			Material: MaterialPath,
			Position: Vec3{X: x, Y: platformRise * float64(c.Height), Z: z},
			Size:     Vec3{X: tileSize, Y: tileThickness, Z: tileSize},
		})
	})
	return visuals, ctx.Err()
}

func buildColliders(ctx context.Context, g *maze.Grid) ([]Collider, error) {
	colliders := []Collider{{
		Shape:    ShapePlane,
		Position: Vec3{Y: groundY},
	}}

	g.Each(func(p maze.Position, c maze.Cell) {
		if c.Kind != maze.Wall {
			return
		}
		colliders = append(colliders, Collider{
			Cell:        p,
			Shape:       ShapeBox,
			Position:    Vec3{X: float64(p.X), Y: wallHeight / 2, Z: float64(p.Y)},
			HalfExtents: Vec3{X: 0.5, Y: wallHeight / 2, Z: 0.5},
		})
	})
	return colliders, ctx.Err()
}

// Builder adapts Build to an interface for callers that inject it.
type Builder struct{}

// Build calls the package level Build.
func (Builder) Build(ctx context.Context, g *maze.Grid) (*Plan, error) {
	return Build(ctx, g)
}
