package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusCompleted = "completed"
)

// Match is one fixture between two teams. Details (teams, kickoff, venue)
// and the scoreboard (scores, progress, stats) are mutated through two
// distinct operations; see the matches gateway.
type Match struct {
	ID          string    `json:"id"`
	Team1       TeamRef   `json:"team1"`
	Team2       TeamRef   `json:"team2"`
	StartTime   time.Time `json:"startTime"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Referee     string    `json:"referee"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Score1      int       `json:"score1"`
	Score2      int       `json:"score2"`
	Progress    int       `json:"progress"`
	Stats       Stats     `json:"matchStats"`
}

type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stats holds the per-side scoreboard extras shown on the live view.
type Stats struct {
	Possession1 int `json:"possession1"`
	Possession2 int `json:"possession2"`
	Shots1      int `json:"shots1"`
	Shots2      int `json:"shots2"`
	Fouls1      int `json:"fouls1"`
	Fouls2      int `json:"fouls2"`
}

func Statuses() []string {
	return []string{StatusScheduled, StatusLive, StatusCompleted}
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusScheduled, StatusLive, StatusCompleted:
		return true
	default:
		return false
	}
}

// Scoreline renders the row score cell: an em-dash pair until kickoff,
// "2 : 1" afterwards.
func (m Match) Scoreline() string {
	if NormalizeStatus(m.Status) == StatusScheduled {
		return "— : —"
	}
	return fmt.Sprintf("%d : %d", m.Score1, m.Score2)
}

// Opponents names both sides, tolerating unpopulated references.
func (m Match) Opponents() string {
	name1 := m.Team1.Name
	if name1 == "" {
		name1 = "TBD"
	}
	name2 := m.Team2.Name
	if name2 == "" {
		name2 = "TBD"
	}
	return name1 + " vs " + name2
}
