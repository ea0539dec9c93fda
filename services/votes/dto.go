package votes

type VoteRequest struct {
	Teams []string `json:"teams" binding:"required"`
}

type TeamTally struct {
	Team  string `json:"team"`
	Votes int    `json:"votes"`
}

// Results is the ballot count per team.
type Results struct {
	Ballots int         `json:"ballots"`
	Teams   []TeamTally `json:"teams"`
}
