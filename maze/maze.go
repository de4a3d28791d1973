/*
Package maze generates the wall/path grids that the level loader hands to the scene builder.

A grid is bordered by walls, its interior wall density grows with difficulty, and a walkable
4-connected route between the start and end cells is always carved. Generation is driven by an
explicit random source so that a (config, seed) pair always yields the same grid.
*/
package maze

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

const (
	MinDimension = 3   // Smallest width/height that still has an interior cell.
	MaxDimension = 256 // Largest accepted width/height.

	baseWallChance     = 0.3
	wallChancePerLevel = 0.05
	maxWallChance      = 0.95

	baseVarietyRatio     = 0.10
	varietyRatioPerLevel = 0.02

	platformChance = 0.1

	floorHeight    = 0
	platformHeight = 1
	boundaryHeight = 2
)

// saturationDifficulty is the difficulty at which the wall chance reaches its cap.
var saturationDifficulty = (maxWallChance - baseWallChance) / wallChancePerLevel

var (
	// ErrInvalidConfig is returned for dimensions or difficulty that cannot produce a valid grid.
	ErrInvalidConfig = errors.New("invalid maze configuration")
	// ErrGenerationInvariant is returned when a grid breaks the border or connectivity guarantee.
	ErrGenerationInvariant = errors.New("maze invariant violated")
)

// Config describes a single generation request.
type Config struct {
	Width      int      // Number of columns, at least MinDimension.
	Height     int      // Number of rows, at least MinDimension.
	Difficulty float64  // Non-negative; raises interior wall density.
	Start      Position // Clamped into the interior before use.
	End        Position // Clamped into the interior before use.
	Seed       int64    // Seed for the random source when Rand is nil (0 = time based).
	Rand       *rand.Rand
}

func (c Config) validate() error {
	if min(c.Width, c.Height) < MinDimension {
		return fmt.Errorf("%w: dimensions %dx%d below minimum %d", ErrInvalidConfig, c.Width, c.Height, MinDimension)
	}
	if max(c.Width, c.Height) > MaxDimension {
		return fmt.Errorf("%w: dimensions %dx%d above maximum %d", ErrInvalidConfig, c.Width, c.Height, MaxDimension)
	}
	if math.IsNaN(c.Difficulty) || math.IsInf(c.Difficulty, 0) || c.Difficulty < 0 {
		return fmt.Errorf("%w: difficulty %v", ErrInvalidConfig, c.Difficulty)
	}
	return nil
}

func (c Config) random() *rand.Rand {
	if c.Rand != nil {
		return c.Rand
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Grid is a width x height array of cells stored row by row.
// It is never mutated after Generate or Restore returns.
type Grid struct {
	width  int
	height int
	cells  []Cell
	start  Position
	end    Position
}

// Generate builds a new grid for cfg.
func Generate(cfg Config) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := cfg.random()
	difficulty := math.Min(cfg.Difficulty, saturationDifficulty)

	g := newGrid(cfg.Width, cfg.Height)
	g.start = g.clampInterior(cfg.Start)
	g.end = g.clampInterior(cfg.End)

	g.fill(rng, wallChance(difficulty))
	g.carvePath(g.start, g.end)
	g.carveVariety(rng, varietyCount(g.interiorArea(), difficulty))

	if err := g.verify(); err != nil {
		return nil, err
	}
	return g, nil
}

// Restore rebuilds a grid from previously generated cells and re-checks its invariants.
func Restore(width, height int, cells []Cell, start, end Position) (*Grid, error) {
	if err := (Config{Width: width, Height: height}).validate(); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d grid", ErrInvalidConfig, len(cells), width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  append([]Cell(nil), cells...),
		start:  start,
		end:    end,
	}
	if err := g.verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func wallChance(difficulty float64) float64 {
	return math.Max(0, math.Min(baseWallChance+difficulty*wallChancePerLevel, maxWallChance))
}

func varietyCount(interior int, difficulty float64) int {
	return int(math.Ceil(float64(interior) * (baseVarietyRatio + varietyRatioPerLevel*difficulty)))
}

// fill draws every cell in row-major order. Each interior cell consumes exactly two draws so the
// sequence of random values does not depend on the wall chance.
func (g *Grid) fill(rng *rand.Rand, chance float64) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := g.index(x, y)
			if g.onBorder(x, y) {
				g.cells[i] = Cell{Kind: Wall, Height: boundaryHeight}
				continue
			}

			cell := Cell{Kind: Path, Height: floorHeight}
			if rng.Float64() < chance {
				cell.Kind = Wall
			}
			if rng.Float64() < platformChance {
				cell.Height = platformHeight
			}
			g.cells[i] = cell
		}
	}
}

// carvePath walks from one cell to the other along the axis with the larger remaining
// distance, stepping x on ties, and opens every visited cell.
func (g *Grid) carvePath(from, to Position) {
	cur := from
	g.open(cur)
	for cur != to {
		dx, dy := to.X-cur.X, to.Y-cur.Y
		if abs(dx) >= abs(dy) {
			cur.X += sign(dx)
		} else {
			cur.Y += sign(dy)
		}
		g.open(cur)
	}
}

// carveVariety opens k random interior cells.
func (g *Grid) carveVariety(rng *rand.Rand, k int) {
	for n := 0; n < k; n++ {
		g.open(Position{
			X: 1 + rng.Intn(g.width-2),
			Y: 1 + rng.Intn(g.height-2),
		})
	}
}

func (g *Grid) open(p Position) {
	if g.onBorder(p.X, p.Y) {
		return
	}
	g.cells[g.index(p.X, p.Y)].Kind = Path
}

// verify checks the border walls and the route between start and end.
func (g *Grid) verify() error {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.onBorder(x, y) && g.cells[g.index(x, y)].Kind != Wall {
				return fmt.Errorf("%w: border cell (%d,%d) is not a wall", ErrGenerationInvariant, x, y)
			}
		}
	}
	if !g.Reachable(g.start, g.end) {
		return fmt.Errorf("%w: no route from %v to %v", ErrGenerationInvariant, g.start, g.end)
	}
	return nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start returns the clamped start position.
func (g *Grid) Start() Position { return g.start }

// End returns the clamped end position.
func (g *Grid) End() Position { return g.end }

// InBound reports whether p lies inside the grid.
func (g *Grid) InBound(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the cell at p. Out of bound positions read as walls.
func (g *Grid) At(p Position) Cell {
	if !g.InBound(p) {
		return Cell{Kind: Wall}
	}
	return g.cells[g.index(p.X, p.Y)]
}

// IsPath reports whether p is an in-bound walkable cell.
func (g *Grid) IsPath(p Position) bool {
	return g.InBound(p) && g.cells[g.index(p.X, p.Y)].Kind == Path
}

// Cells returns a copy of the cells in row-major order.
func (g *Grid) Cells() []Cell {
	return append([]Cell(nil), g.cells...)
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Position, Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Position{X: x, Y: y}, g.cells[g.index(x, y)])
		}
	}
}

// InteriorWallRatio returns the share of interior cells that are walls.
func (g *Grid) InteriorWallRatio() float64 {
	walls := 0
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if g.cells[g.index(x, y)].Kind == Wall {
				walls++
			}
		}
	}
	return float64(walls) / float64(g.interiorArea())
}

// Reachable reports whether a 4-directional flood fill over path cells from a reaches b.
func (g *Grid) Reachable(a, b Position) bool {
	if !g.IsPath(a) || !g.IsPath(b) {
		return false
	}

	visited := make([]bool, len(g.cells))
	visited[g.index(a.X, a.Y)] = true
	queue := []Position{a}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == b {
			return true
		}
		for _, d := range Directions {
			next := cur.Add(d)
			if !g.IsPath(next) || visited[g.index(next.X, next.Y)] {
				continue
			}
			visited[g.index(next.X, next.Y)] = true
			queue = append(queue, next)
		}
	}
	return false
}

// Region returns every path cell connected to from, including from itself.
func (g *Grid) Region(from Position) []Position {
	if !g.IsPath(from) {
		return nil
	}

	visited := make([]bool, len(g.cells))
	visited[g.index(from.X, from.Y)] = true
	region := []Position{from}
	for i := 0; i < len(region); i++ {
		for _, d := range Directions {
			next := region[i].Add(d)
			if !g.IsPath(next) || visited[g.index(next.X, next.Y)] {
				continue
			}
			visited[g.index(next.X, next.Y)] = true
			region = append(region, next)
		}
	}
	return region
}

// NearestPath searches outward from p (clamped into the grid) for the closest path cell for
// which taken returns false. Distance is measured in 4-neighbour steps, ignoring walls.
func (g *Grid) NearestPath(p Position, taken func(Position) bool) (Position, bool) {
	origin := g.clamp(p, 0, g.width-1, 0, g.height-1)

	visited := make([]bool, len(g.cells))
	visited[g.index(origin.X, origin.Y)] = true
	queue := []Position{origin}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if g.IsPath(cur) && (taken == nil || !taken(cur)) {
			return cur, true
		}
		for _, d := range Directions {
			next := cur.Add(d)
			if !g.InBound(next) || visited[g.index(next.X, next.Y)] {
				continue
			}
			visited[g.index(next.X, next.Y)] = true
			queue = append(queue, next)
		}
	}
	return Position{}, false
}

// String renders the grid as text: '#' wall, '.' path, '^' raised path, 'S' start, 'E' end.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := Position{X: x, Y: y}
			cell := g.cells[g.index(x, y)]
			switch {
			case p == g.start:
				sb.WriteByte('S')
			case p == g.end:
				sb.WriteByte('E')
			case cell.Kind == Wall:
				sb.WriteByte('#')
			case cell.Height > floorHeight:
				sb.WriteByte('^')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

func (g *Grid) onBorder(x, y int) bool {
	return x == 0 || y == 0 || x == g.width-1 || y == g.height-1
}

func (g *Grid) interiorArea() int {
	return (g.width - 2) * (g.height - 2)
}

// clampInterior keeps p off the border so that it can be opened without breaking the walls.
func (g *Grid) clampInterior(p Position) Position {
	return g.clamp(p, 1, g.width-2, 1, g.height-2)
}

func (g *Grid) clamp(p Position, minX, maxX, minY, maxY int) Position {
	return Position{
		X: min(max(p.X, minX), maxX),
		Y: min(max(p.Y, minY), maxY),
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
