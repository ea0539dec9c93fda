package predictions

import "time"

type SubmitRequest struct {
	MatchID string `json:"match_id" binding:"required"`
	ScoreA  *int   `json:"score_a" binding:"required"`
	ScoreB  *int   `json:"score_b" binding:"required"`
}

type Stats struct {
	HomePercent int `json:"home_percent"`
	DrawPercent int `json:"draw_percent"`
	AwayPercent int `json:"away_percent"`
	Total       int `json:"total"`
}

// Predictor is one line of the public pick list.
type Predictor struct {
	Name string `json:"name"`
	Pick string `json:"pick"`
}

type MatchStatistics struct {
	Stats      Stats       `json:"stats"`
	Predictors []Predictor `json:"predictors"`
}

type PredictionResponse struct {
	MatchID   string    `json:"match_id"`
	ScoreA    int       `json:"score_a"`
	ScoreB    int       `json:"score_b"`
	CreatedAt time.Time `json:"created_at"`
}
