package matches

import (
	"time"

	"github.com/webbongda/matchday/repos/store"
	"github.com/webbongda/matchday/services/predictions"
)

const (
	defaultCompetition = "Friendly"
	defaultColorA      = "#5bed9f"
	defaultColorB      = "#e85c5c"
)

type CreateMatchRequest struct {
	Competition *string `json:"competition"`
	TeamA       string  `json:"team_a" binding:"required"`
	TeamALogo   *string `json:"team_a_logo"`
	TeamAColor  *string `json:"team_a_color"`
	TeamB       string  `json:"team_b" binding:"required"`
	TeamBLogo   *string `json:"team_b_logo"`
	TeamBColor  *string `json:"team_b_color"`
	Status      *string `json:"status"`
	Minute      *string `json:"minute"`
	Date        string  `json:"date" binding:"required"`
	Kickoff     string  `json:"kickoff" binding:"required"`
}

type ImportRequest struct {
	Matches []CreateMatchRequest `json:"matches" binding:"required,min=1,dive"`
}

// UpdateInfoRequest changes only the fields that are present.
type UpdateInfoRequest struct {
	Competition *string `json:"competition"`
	TeamA       *string `json:"team_a"`
	TeamALogo   *string `json:"team_a_logo"`
	TeamAColor  *string `json:"team_a_color"`
	TeamB       *string `json:"team_b"`
	TeamBLogo   *string `json:"team_b_logo"`
	TeamBColor  *string `json:"team_b_color"`
	Date        *string `json:"date"`
	Kickoff     *string `json:"kickoff"`
	Status      *string `json:"status"`
	Minute      *string `json:"minute"`
}

type ScoreRequest struct {
	ScoreA *int `json:"score_a" binding:"required"`
	ScoreB *int `json:"score_b" binding:"required"`
}

type EventRequest struct {
	Minute   string `json:"minute" binding:"required"`
	Player   string `json:"player" binding:"required"`
	Type     string `json:"type"`
	TeamSide string `json:"team_side" binding:"required"`
}

type EventResponse struct {
	Minute   string `json:"minute"`
	Player   string `json:"player"`
	Type     string `json:"type"`
	TeamSide string `json:"team_side"`
}

type MatchResponse struct {
	ID          string    `json:"id"`
	Competition string    `json:"competition"`
	TeamA       string    `json:"team_a"`
	TeamALogo   *string   `json:"team_a_logo"`
	TeamAColor  string    `json:"team_a_color"`
	TeamB       string    `json:"team_b"`
	TeamBLogo   *string   `json:"team_b_logo"`
	TeamBColor  string    `json:"team_b_color"`
	Status      string    `json:"status"`
	Minute      *string   `json:"minute"`
	Date        string    `json:"date"`
	Kickoff     string    `json:"kickoff"`
	StartTime   time.Time `json:"start_time"`
	IsLocked    bool      `json:"is_locked"`
	ScoreA      *int      `json:"score_a"`
	ScoreB      *int      `json:"score_b"`
}

type MatchDetailResponse struct {
	MatchResponse
	Events     []EventResponse         `json:"events"`
	Stats      predictions.Stats       `json:"stats"`
	Predictors []predictions.Predictor `json:"predictors"`
}

// MatchDetail is a match together with what has been predicted on it.
type MatchDetail struct {
	Match      *store.Match
	Stats      predictions.Stats
	Predictors []predictions.Predictor
}

func toMatchResponse(m *store.Match) MatchResponse {
	return MatchResponse{
		ID:          m.ID,
		Competition: m.Competition,
		TeamA:       m.TeamA.Name,
		TeamALogo:   m.TeamA.Logo,
		TeamAColor:  m.TeamA.Color,
		TeamB:       m.TeamB.Name,
		TeamBLogo:   m.TeamB.Logo,
		TeamBColor:  m.TeamB.Color,
		Status:      m.Status,
		Minute:      m.Minute,
		Date:        m.Date,
		Kickoff:     m.Kickoff,
		StartTime:   m.StartTime,
		IsLocked:    m.IsLocked,
		ScoreA:      m.ScoreA,
		ScoreB:      m.ScoreB,
	}
}

func toMatchResponses(ms []*store.Match) []MatchResponse {
	resp := make([]MatchResponse, 0, len(ms))
	for _, m := range ms {
		resp = append(resp, toMatchResponse(m))
	}
	return resp
}

func toDetailResponse(d *MatchDetail) MatchDetailResponse {
	events := make([]EventResponse, 0, len(d.Match.Events))
	for _, ev := range d.Match.Events {
		events = append(events, EventResponse(ev))
	}
	return MatchDetailResponse{
		MatchResponse: toMatchResponse(d.Match),
		Events:        events,
		Stats:         d.Stats,
		Predictors:    d.Predictors,
	}
}
