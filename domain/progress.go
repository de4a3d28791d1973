package dmn

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLevelLocked  = errors.New("level is locked")
	ErrInvalidScore = errors.New("invalid score")
)

// LevelScore is the best result a player reached on one level.
type LevelScore struct {
	Score       int       `bson:"score" json:"score"`
	Questions   int       `bson:"questions" json:"questions"`
	CompletedAt time.Time `bson:"completedAt" json:"completed_at"`
}

// Progress tracks which levels a player unlocked and their best scores.
type Progress struct {
	PlayerID uuid.UUID          `bson:"_id" json:"player_id"`
	Unlocked int                `bson:"unlocked" json:"unlocked"`
	Scores   map[int]LevelScore `bson:"scores" json:"scores"`
}

// NewProgress returns the progress of a player who has only the first level open.
func NewProgress(playerID uuid.UUID, firstLevel int) *Progress {
	return &Progress{
		PlayerID: playerID,
		Unlocked: firstLevel,
		Scores:   make(map[int]LevelScore),
	}
}

// Complete records a finished level. The best score per level is kept, and the next level is
// unlocked up to lastLevel. It returns whether the stored score changed.
func (p *Progress) Complete(level, lastLevel, score, questions int, at time.Time) (bool, error) {
	if score < 0 || questions < 0 {
		return false, ErrInvalidScore
	}
	if level > p.Unlocked {
		return false, ErrLevelLocked
	}
	if p.Scores == nil {
		p.Scores = make(map[int]LevelScore)
	}

	p.Unlocked = max(p.Unlocked, min(level+1, lastLevel))

	best, ok := p.Scores[level]
	if ok && best.Score >= score {
		return false, nil
	}
	p.Scores[level] = LevelScore{Score: score, Questions: questions, CompletedAt: at}
	return true, nil
}
