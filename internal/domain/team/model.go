package team

import "fmt"

// Team is one club registered in the tournament. Win/draw/loss counts and
// points are computed server-side and never edited directly by the client.
type Team struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	City        string   `json:"city"`
	Coach       string   `json:"coach"`
	Logo        string   `json:"logo"`
	Wins        int      `json:"wins"`
	Draws       int      `json:"draws"`
	Losses      int      `json:"losses"`
	Points      int      `json:"points"`
	PlayerIDs   []string `json:"players"`
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
