package progress

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/circuit-maze/api/identity"
	dmn "github.com/beka-birhanu/circuit-maze/domain"
	"github.com/beka-birhanu/circuit-maze/level"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"github.com/gin-gonic/gin"
)

// Controller serves player progress and level leaderboards.
type Controller struct {
	tracker i.ProgressTracker
}

// NewController creates a new progress Controller.
func NewController(t i.ProgressTracker) (*Controller, error) {
	if t == nil {
		return nil, errors.New("progress controller requires a tracker")
	}
	return &Controller{tracker: t}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/levels/:n/leaderboard", c.leaderboard)
}

// RegisterProtected registers privileged routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	progress := route.Group("/progress")
	{
		progress.GET("", c.progress)
		progress.POST("/:n", c.complete)
	}
}

func (c *Controller) progress(ctx *gin.Context) {
	playerID, _, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	p, err := c.tracker.Progress(ctx.Request.Context(), playerID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading progress"})
		return
	}
	ctx.JSON(http.StatusOK, toProgressResponse(p))
}

func (c *Controller) complete(ctx *gin.Context) {
	playerID, username, ok := identity.Player(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		return
	}

	n, err := strconv.Atoi(ctx.Param("n"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "level must be a number"})
		return
	}

	var request CompleteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := c.tracker.Complete(ctx.Request.Context(), playerID, username, n, request.Score, request.Questions)
	if err != nil {
		fail(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toProgressResponse(p))
}

func (c *Controller) leaderboard(ctx *gin.Context) {
	n, err := strconv.Atoi(ctx.Param("n"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "level must be a number"})
		return
	}

	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "0"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a number"})
		return
	}

	entries, err := c.tracker.Leaderboard(ctx.Request.Context(), n, limit)
	if err != nil {
		fail(ctx, err)
		return
	}
	if entries == nil {
		entries = []i.LeaderboardEntry{}
	}
	ctx.JSON(http.StatusOK, gin.H{"level": n, "entries": entries})
}

// fail maps service errors to a response. Unexpected errors are not echoed to the client.
func fail(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, level.ErrUnknownLevel):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrLevelLocked):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, dmn.ErrInvalidScore):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
