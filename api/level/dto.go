package level

import (
	lvl "github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/maze"
)

// CellDTO is one grid cell on the wire.
type CellDTO struct {
	Wall   bool `json:"wall"`
	Height int  `json:"height"`
}

// GridDTO is a row-major grid.
type GridDTO struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Start  maze.Position `json:"start"`
	End    maze.Position `json:"end"`
	Cells  []CellDTO     `json:"cells"`
}

// LevelResponse is a generated level with its overlays.
type LevelResponse struct {
	Definition    lvl.Definition    `json:"definition"`
	Seed          int64             `json:"seed"`
	Grid          GridDTO           `json:"grid"`
	Start         lvl.Point         `json:"start"`
	Exit          lvl.Point         `json:"exit"`
	QuestionGates []lvl.Point       `json:"question_gates"`
	Enemies       []lvl.Enemy       `json:"enemies"`
	Collectibles  []lvl.Collectible `json:"collectibles"`
	Relocations   []lvl.Relocation  `json:"relocations"`
}

// LevelSummary is the list view of a definition.
type LevelSummary struct {
	Number            int    `json:"number"`
	Name              string `json:"name"`
	Theme             string `json:"theme"`
	Color             string `json:"color"`
	Bloom             string `json:"bloom_level"`
	QuestionsRequired int    `json:"questions_required"`
}

func toGridDTO(g *maze.Grid) GridDTO {
	cells := g.Cells()
	dto := GridDTO{
		Width:  g.Width(),
		Height: g.Height(),
		Start:  g.Start(),
		End:    g.End(),
		Cells:  make([]CellDTO, len(cells)),
	}
	for idx, c := range cells {
		dto.Cells[idx] = CellDTO{Wall: c.Kind == maze.Wall, Height: c.Height}
	}
	return dto
}

func toLevelResponse(l *lvl.Level) *LevelResponse {
	return &LevelResponse{
		Definition:    l.Definition,
		Seed:          l.Seed,
		Grid:          toGridDTO(l.Grid),
		Start:         l.Start,
		Exit:          l.Exit,
		QuestionGates: l.QuestionGates,
		Enemies:       l.Enemies,
		Collectibles:  l.Collectibles,
		Relocations:   l.Relocations,
	}
}

func toSummary(d lvl.Definition) LevelSummary {
	return LevelSummary{
		Number:            d.Number,
		Name:              d.Name,
		Theme:             d.Theme,
		Color:             d.Color,
		Bloom:             d.Bloom.String(),
		QuestionsRequired: d.QuestionsRequired,
	}
}
