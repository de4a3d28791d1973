package maze

// Kind classifies a cell as blocking or walkable.
type Kind uint8

const (
	Wall Kind = iota // Wall blocks movement and gets a static collider.
	Path             // Path is walkable floor.
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Path:
		return "path"
	default:
		return "unknown"
	}
}

// Cell represents a single location in a maze grid.
type Cell struct {
	Kind   Kind // Kind tells whether the cell is a wall or a path.
	Height int  // Height is a cosmetic tier: 0 floor, 1 raised platform, 2 boundary wall.
}

// IsPath reports whether the cell is walkable.
func (c Cell) IsPath() bool {
	return c.Kind == Path
}

// Position is an integer grid coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Directions are the 4-neighbourhood offsets in a fixed order.
var Directions = [4]Position{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}
