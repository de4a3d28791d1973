/*
Package level holds the five Bloom-tier level definitions and turns a definition plus a seed into
a playable level: a generated maze grid with question gates, enemies and collectibles placed on
walkable cells.

Overlay positions are authored independently of the grid, so Load relocates any overlay that
falls on a wall, outside the grid, on the start or exit, on another overlay, or in a pocket
that cannot be reached from the start. Every move is recorded as a Relocation.
*/
package level

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/beka-birhanu/circuit-maze/interfaces/general"
	"github.com/beka-birhanu/circuit-maze/maze"
)

const (
	FirstLevel = 1
	LastLevel  = 5
)

var (
	ErrUnknownLevel = errors.New("unknown level")
	ErrNoPlacement  = errors.New("no free path cell for overlay")
)

// Overlay kinds used in relocations.
const (
	KindGate        = "gate"
	KindEnemy       = "enemy"
	KindCollectible = "collectible"
)

// Point is a grid coordinate with a layer tag. The layer does not affect the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Cell returns the 2D grid position of p.
func (p Point) Cell() maze.Position {
	return maze.Position{X: p.X, Y: p.Y}
}

func (p Point) at(pos maze.Position) Point {
	return Point{X: pos.X, Y: pos.Y, Z: p.Z}
}

// Enemy is a patrolling hazard.
type Enemy struct {
	Type    string  `json:"type"`
	Point   Point   `json:"position"`
	Speed   float64 `json:"speed"`
	Pattern string  `json:"pattern,omitempty"`
}

// Collectible is a pickup worth Value points.
type Collectible struct {
	Type  string `json:"type"`
	Point Point  `json:"position"`
	Value int    `json:"value"`
}

// Definition is the authored metadata of a level.
type Definition struct {
	Number            int           `json:"number"`
	Name              string        `json:"name"`
	Theme             string        `json:"theme"`
	Color             string        `json:"color"`
	Bloom             Bloom         `json:"bloom_level"`
	QuestionsRequired int           `json:"questions_required"`
	Width             int           `json:"width"`
	Height            int           `json:"height"`
	Difficulty        float64       `json:"difficulty"`
	Start             Point         `json:"start"`
	Exit              Point         `json:"exit"`
	QuestionGates     []Point       `json:"question_gates"`
	Enemies           []Enemy       `json:"enemies"`
	Collectibles      []Collectible `json:"collectibles"`
}

// Relocation records an overlay moved off an invalid cell.
type Relocation struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	From  Point  `json:"from"`
	To    Point  `json:"to"`
}

// Level is a loaded level. Its grid and overlays are read-only.
type Level struct {
	Definition    Definition
	Seed          int64
	Grid          *maze.Grid
	Start         Point
	Exit          Point
	QuestionGates []Point
	Enemies       []Enemy
	Collectibles  []Collectible
	Relocations   []Relocation
}

// Config holds the dependencies of a Registry.
type Config struct {
	Definitions []Definition   // Defaults to the five built-in levels when empty.
	Logger      general.Logger // Optional.
	Seeds       func() int64   // Source of seeds when Load is called with 0. Defaults to the clock.
}

// Registry serves level definitions and loads levels from them.
type Registry struct {
	definitions map[int]Definition
	logger      general.Logger
	seeds       func() int64
}

// NewRegistry creates a Registry from c.
func NewRegistry(c Config) *Registry {
	defs := c.Definitions
	if len(defs) == 0 {
		defs = defaultDefinitions()
	}

	seeds := c.Seeds
	if seeds == nil {
		seeds = func() int64 { return time.Now().UnixNano() }
	}

	r := &Registry{
		definitions: make(map[int]Definition, len(defs)),
		logger:      c.Logger,
		seeds:       seeds,
	}
	for _, d := range defs {
		r.definitions[d.Number] = d
	}
	return r
}

// Definitions returns every definition ordered by level number.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.definitions))
	for _, d := range r.definitions {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Number < defs[j].Number })
	return defs
}

// Definition returns the definition of level n.
func (r *Registry) Definition(n int) (Definition, error) {
	d, ok := r.definitions[n]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %d", ErrUnknownLevel, n)
	}
	return d, nil
}

// Next returns the level after n, if there is one.
func (r *Registry) Next(n int) (int, bool) {
	if _, ok := r.definitions[n+1]; !ok {
		return n, false
	}
	return n + 1, true
}

// Load generates level n from seed. A zero seed draws a fresh one; the seed used is returned in
// the level so the same layout can be requested again.
func (r *Registry) Load(n int, seed int64) (*Level, error) {
	def, err := r.Definition(n)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = r.seeds()
	}

	grid, err := maze.Generate(maze.Config{
		Width:      def.Width,
		Height:     def.Height,
		Difficulty: def.Difficulty,
		Start:      def.Start.Cell(),
		End:        def.Exit.Cell(),
		Seed:       seed,
	})
	if err != nil {
		r.logError(fmt.Sprintf("generating level %d (seed %d): %s", n, seed, err))
		return nil, fmt.Errorf("generating level %d: %w", n, err)
	}

	lvl := &Level{
		Definition: def,
		Seed:       seed,
		Grid:       grid,
		Start:      def.Start.at(grid.Start()),
		Exit:       def.Exit.at(grid.End()),
	}
	if err := lvl.placeOverlays(); err != nil {
		r.logError(fmt.Sprintf("placing overlays for level %d (seed %d): %s", n, seed, err))
		return nil, err
	}

	for _, rel := range lvl.Relocations {
		r.logWarning(fmt.Sprintf("level %d: moved %s %d from (%d,%d) to (%d,%d)",
			n, rel.Kind, rel.Index, rel.From.X, rel.From.Y, rel.To.X, rel.To.Y))
	}
	r.logInfo(fmt.Sprintf("loaded level %d %q (seed %d, %dx%d)", n, def.Name, seed, def.Width, def.Height))
	return lvl, nil
}

// placeOverlays resolves gates first, then collectibles, then enemies.
func (l *Level) placeOverlays() error {
	p := newPlacer(l.Grid)
	p.occupy(l.Start.Cell())
	p.occupy(l.Exit.Cell())

	l.QuestionGates = make([]Point, len(l.Definition.QuestionGates))
	for i, gate := range l.Definition.QuestionGates {
		resolved, err := p.place(gate)
		if err != nil {
			return fmt.Errorf("%w: %s %d", err, KindGate, i)
		}
		l.QuestionGates[i] = resolved
		l.record(KindGate, i, gate, resolved)
	}

	l.Collectibles = make([]Collectible, len(l.Definition.Collectibles))
	for i, c := range l.Definition.Collectibles {
		resolved, err := p.place(c.Point)
		if err != nil {
			return fmt.Errorf("%w: %s %d", err, KindCollectible, i)
		}
		c.Point = resolved
		l.Collectibles[i] = c
		l.record(KindCollectible, i, l.Definition.Collectibles[i].Point, resolved)
	}

	l.Enemies = make([]Enemy, len(l.Definition.Enemies))
	for i, e := range l.Definition.Enemies {
		resolved, err := p.place(e.Point)
		if err != nil {
			return fmt.Errorf("%w: %s %d", err, KindEnemy, i)
		}
		e.Point = resolved
		l.Enemies[i] = e
		l.record(KindEnemy, i, l.Definition.Enemies[i].Point, resolved)
	}
	return nil
}

func (l *Level) record(kind string, index int, from, to Point) {
	if from == to {
		return
	}
	l.Relocations = append(l.Relocations, Relocation{Kind: kind, Index: index, From: from, To: to})
}

// placer hands out distinct path cells reachable from the start.
type placer struct {
	grid      *maze.Grid
	reachable map[maze.Position]bool
	occupied  map[maze.Position]bool
}

func newPlacer(g *maze.Grid) *placer {
	p := &placer{
		grid:      g,
		reachable: make(map[maze.Position]bool),
		occupied:  make(map[maze.Position]bool),
	}
	for _, pos := range g.Region(g.Start()) {
		p.reachable[pos] = true
	}
	return p
}

func (p *placer) occupy(pos maze.Position) {
	p.occupied[pos] = true
}

func (p *placer) place(want Point) (Point, error) {
	pos, ok := p.grid.NearestPath(want.Cell(), func(c maze.Position) bool {
		return p.occupied[c] || !p.reachable[c]
	})
	if !ok {
		return Point{}, ErrNoPlacement
	}
	p.occupy(pos)
	return want.at(pos), nil
}

func (r *Registry) logInfo(msg string) {
	if r.logger != nil {
		r.logger.Info(msg)
	}
}

func (r *Registry) logWarning(msg string) {
	if r.logger != nil {
		r.logger.Warning(msg)
	}
}

func (r *Registry) logError(msg string) {
	if r.logger != nil {
		r.logger.Error(msg)
	}
}
