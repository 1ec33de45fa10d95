package player

import "strings"

const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DEF"
	PositionMidfielder = "MID"
	PositionForward    = "FWD"
)

// Player is one squad member. Numeric stats are free-form server values;
// the client renders them without enforcing consistency.
type Player struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	JerseyNumber  int     `json:"jerseyNumber"`
	Age           int     `json:"age"`
	Nationality   string  `json:"nationality"`
	Height        float64 `json:"height"`
	Weight        float64 `json:"weight"`
	Bio           string  `json:"bio"`
	Team          TeamRef `json:"team"`
	Photo         string  `json:"photo"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellowCards"`
	RedCards      int     `json:"redCards"`
	MatchesPlayed int     `json:"matchesPlayed"`
}

// TeamRef is the populated team reference returned by list endpoints.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Positions lists the closed position set in pitch order.
func Positions() []string {
	return []string{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward}
}

// NormalizePosition maps free-form input onto the closed position set.
// Unknown values come back unchanged so the server stays authoritative.
func NormalizePosition(value string) string {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case PositionGoalkeeper, "GOALKEEPER", "KEEPER":
		return PositionGoalkeeper
	case PositionDefender, "DEFENDER":
		return PositionDefender
	case PositionMidfielder, "MIDFIELDER":
		return PositionMidfielder
	case PositionForward, "FORWARD", "STRIKER":
		return PositionForward
	default:
		return strings.TrimSpace(value)
	}
}

func IsValidPosition(value string) bool {
	switch value {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	default:
		return false
	}
}
