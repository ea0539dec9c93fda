package store

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Match statuses the frontend knows about. Status is free-form.
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusFullTime = "ft"
	StatusPending  = "pending"
)

const (
	EventGoal = "goal"
	EventCard = "card"
	EventSub  = "sub"
)

const (
	SideA = "a"
	SideB = "b"
)

type User struct {
	ID             string    `firestore:"-"`
	MSV            string    `firestore:"msv"`
	FullName       string    `firestore:"full_name"`
	Phone          string    `firestore:"phone"`
	HashedPassword string    `firestore:"hashed_password"`
	Role           string    `firestore:"role"`
	IsActive       bool      `firestore:"is_active"`
	CreatedAt      time.Time `firestore:"created_at"`
}

type Team struct {
	Name  string  `firestore:"name"`
	Logo  *string `firestore:"logo"`
	Color string  `firestore:"color"`
}

type Event struct {
	Minute   string `firestore:"minute"`
	Player   string `firestore:"player"`
	Type     string `firestore:"type"`
	TeamSide string `firestore:"team_side"`
}

type Match struct {
	ID          string    `firestore:"-"`
	Competition string    `firestore:"competition"`
	TeamA       Team      `firestore:"team_a"`
	TeamB       Team      `firestore:"team_b"`
	Status      string    `firestore:"status"`
	Minute      *string   `firestore:"minute"`
	Date        string    `firestore:"date"`
	Kickoff     string    `firestore:"kickoff"`
	StartTime   time.Time `firestore:"start_time"`
	IsLocked    bool      `firestore:"is_locked"`
	ScoreA      *int      `firestore:"score_a"`
	ScoreB      *int      `firestore:"score_b"`
	Events      []Event   `firestore:"events"`
}

// MatchInfo is a partial update of a match. Nil fields are left untouched.
type MatchInfo struct {
	Competition *string
	TeamA       *string
	TeamALogo   *string
	TeamAColor  *string
	TeamB       *string
	TeamBLogo   *string
	TeamBColor  *string
	Date        *string
	Kickoff     *string
	StartTime   *time.Time
	Status      *string
	Minute      *string
}

// Empty reports whether the update changes nothing.
func (m MatchInfo) Empty() bool {
	return m == MatchInfo{}
}

type Prediction struct {
	UserMSV   string    `firestore:"user_msv"`
	MatchID   string    `firestore:"match_id"`
	ScoreA    int       `firestore:"score_a"`
	ScoreB    int       `firestore:"score_b"`
	CreatedAt time.Time `firestore:"created_at"`
}

type FavoriteVote struct {
	UserMSV   string    `firestore:"user_msv"`
	Teams     []string  `firestore:"teams"`
	CreatedAt time.Time `firestore:"created_at"`
}
