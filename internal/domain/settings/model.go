package settings

import "time"

// Settings is the tournament-wide singleton record. It has no identifier
// and is read and replaced wholesale.
type Settings struct {
	TournamentName    string    `json:"tournamentName"`
	Season            string    `json:"season"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	Location          string    `json:"location"`
	Rules             string    `json:"rules"`
	MaxTeams          int       `json:"maxTeams"`
	MaxPlayersPerTeam int       `json:"maxPlayersPerTeam"`
}
