package models

import "time"

// Player is one roster member of a tournament team, with the ranking
// the player held at registration.
type Player struct {
	PlayerID   string  `json:"playerId"`
	PlayerName string  `json:"playerName"`
	Ranking    float64 `json:"ranking"`
}

// Team is a tournament registration. Roster membership is immutable
// once matches begin; edits go through a separate administrative path.
type Team struct {
	ID           string    `json:"id"`
	TournamentID string    `json:"tournamentId"`
	Name         string    `json:"name"`
	Group        string    `json:"group,omitempty"`
	Players      []Player  `json:"players"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RatingSum returns the summed ranking of the roster.
func (t *Team) RatingSum() float64 {
	var sum float64
	for _, p := range t.Players {
		sum += p.Ranking
	}
	return sum
}

// GroupStanding is a team's final position within its group, 1-based.
// Always derived fresh from the completed group matches, never stored.
type GroupStanding struct {
	TeamID   string `json:"teamId"`
	Group    string `json:"group"`
	Position int    `json:"position"`
}
