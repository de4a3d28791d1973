package i

import (
	"context"

	"github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/maze"
	"github.com/beka-birhanu/circuit-maze/scene"
)

// LevelRegistry serves level definitions and generated levels.
type LevelRegistry interface {
	Definitions() []level.Definition
	Definition(n int) (level.Definition, error)
	Load(n int, seed int64) (*level.Level, error)
}

// SceneBuilder turns a grid into a render and physics build plan.
type SceneBuilder interface {
	Build(ctx context.Context, g *maze.Grid) (*scene.Plan, error)
}

// GridEncoder serializes grids for the binary endpoint.
type GridEncoder interface {
	MarshalGrid(g *maze.Grid) ([]byte, error)
	UnmarshalGrid(b []byte) (*maze.Grid, error)
}
