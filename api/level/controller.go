package level

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/circuit-maze/interfaces/general"
	lvl "github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/gin-gonic/gin"
)

const protobufContentType = "application/x-protobuf"

// Controller serves level definitions, generated levels and their scene plans.
type Controller struct {
	levels  i.LevelRegistry
	scenes  i.SceneBuilder
	encoder i.GridEncoder
	logger  general.Logger
}

// NewController creates a new level Controller.
func NewController(levels i.LevelRegistry, scenes i.SceneBuilder, encoder i.GridEncoder, logger general.Logger) (*Controller, error) {
	if levels == nil || scenes == nil || encoder == nil || logger == nil {
		return nil, errors.New("level controller requires registry, scene builder, encoder and logger")
	}
	return &Controller{
		levels:  levels,
		scenes:  scenes,
		encoder: encoder,
		logger:  logger,
	}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.GET("", c.list)
		levels.GET("/:n", c.load)
		levels.GET("/:n/scene", c.scene)
		levels.GET("/:n/grid", c.grid)
	}
}

// RegisterProtected registers privileged routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
}

func (c *Controller) list(ctx *gin.Context) {
	defs := c.levels.Definitions()
	summaries := make([]LevelSummary, 0, len(defs))
	for _, d := range defs {
		summaries = append(summaries, toSummary(d))
	}
	ctx.JSON(http.StatusOK, summaries)
}

func (c *Controller) load(ctx *gin.Context) {
	l, ok := c.loadLevel(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, toLevelResponse(l))
}

func (c *Controller) scene(ctx *gin.Context) {
	l, ok := c.loadLevel(ctx)
	if !ok {
		return
	}

	plan, err := c.scenes.Build(ctx.Request.Context(), l.Grid)
	if err != nil {
		c.logger.Error(fmt.Sprintf("building scene for level %d seed %d: %s", l.Definition.Number, l.Seed, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while building scene"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"seed": l.Seed, "plan": plan})
}

func (c *Controller) grid(ctx *gin.Context) {
	l, ok := c.loadLevel(ctx)
	if !ok {
		return
	}

	b, err := c.encoder.MarshalGrid(l.Grid)
	if err != nil {
		c.logger.Error(fmt.Sprintf("encoding grid for level %d seed %d: %s", l.Definition.Number, l.Seed, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding grid"})
		return
	}
	ctx.Header("X-Maze-Seed", strconv.FormatInt(l.Seed, 10))
	ctx.Data(http.StatusOK, protobufContentType, b)
}

// loadLevel parses the level number and seed and loads the level. On failure it writes the
// error response and returns false.
func (c *Controller) loadLevel(ctx *gin.Context) (*lvl.Level, bool) {
	n, err := strconv.Atoi(ctx.Param("n"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "level must be a number"})
		return nil, false
	}

	var seed int64
	if raw := ctx.Query("seed"); raw != "" {
		seed, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "seed must be a 64-bit integer"})
			return nil, false
		}
	}

	l, err := c.levels.Load(n, seed)
	switch {
	case err == nil:
		return l, true
	case errors.Is(err, lvl.ErrUnknownLevel):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating level"})
	}
	return nil, false
}
