package progress

import (
	dmn "github.com/beka-birhanu/circuit-maze/domain"
)

// CompleteRequest reports a finished level.
type CompleteRequest struct {
	Score     int `json:"score" binding:"min=0"`
	Questions int `json:"questions" binding:"min=0"`
}

// ProgressResponse is the progress of the signed in player.
type ProgressResponse struct {
	PlayerID string                 `json:"player_id"`
	Unlocked int                    `json:"unlocked"`
	Scores   map[int]dmn.LevelScore `json:"scores"`
}

func toProgressResponse(p *dmn.Progress) *ProgressResponse {
	scores := p.Scores
	if scores == nil {
		scores = map[int]dmn.LevelScore{}
	}
	return &ProgressResponse{
		PlayerID: p.PlayerID.String(),
		Unlocked: p.Unlocked,
		Scores:   scores,
	}
}
