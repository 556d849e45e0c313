package models

import "time"

// TournamentStatus mirrors the lifecycle column on tournament documents.
type TournamentStatus string

const (
	TournamentStatusDraft     TournamentStatus = "draft"
	TournamentStatusActive    TournamentStatus = "active"
	TournamentStatusCompleted TournamentStatus = "completed"
)

// ChampionshipPointsConfig holds the tunables of the championship
// points computation. Missing keys take the documented defaults; the
// whole struct is immutable for the lifetime of a computation.
type ChampionshipPointsConfig struct {
	RPAMultiplier          float64            `json:"rpaMultiplier,omitempty"`
	GroupPlacementPoints   map[int]float64    `json:"groupPlacementPoints,omitempty"`
	KnockoutProgressPoints map[string]float64 `json:"knockoutProgressPoints,omitempty"`
}

// TournamentConfiguration is the subset of tournament configuration
// relevant to points computation.
type TournamentConfiguration struct {
	ChampionshipPoints ChampionshipPointsConfig `json:"championshipPoints"`
}

// Tournament is the tournament document.
type Tournament struct {
	ID            string                  `json:"id"`
	ClubID        string                  `json:"clubId"`
	Name          string                  `json:"name"`
	Status        TournamentStatus        `json:"status"`
	Configuration TournamentConfiguration `json:"configuration"`
	StartDate     time.Time               `json:"startDate"`
	EndDate       time.Time               `json:"endDate,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// Default bonus tables. Group placement pays the top four positions;
// knockout pays per round won.
const (
	DefaultRPAMultiplier = 1.0
)

func DefaultGroupPlacementPoints() map[int]float64 {
	return map[int]float64{1: 100, 2: 60, 3: 40, 4: 20}
}

func DefaultKnockoutProgressPoints() map[string]float64 {
	return map[string]float64{
		"round_of_16":    10,
		"quarter_finals": 20,
		"semi_finals":    40,
		"finals":         80,
		"third_place":    15,
	}
}

// Normalized returns a copy of the config with defaults applied for
// every missing key.
func (c ChampionshipPointsConfig) Normalized() ChampionshipPointsConfig {
	out := ChampionshipPointsConfig{
		RPAMultiplier:          c.RPAMultiplier,
		GroupPlacementPoints:   DefaultGroupPlacementPoints(),
		KnockoutProgressPoints: DefaultKnockoutProgressPoints(),
	}
	if out.RPAMultiplier == 0 {
		out.RPAMultiplier = DefaultRPAMultiplier
	}
	for pos, pts := range c.GroupPlacementPoints {
		out.GroupPlacementPoints[pos] = pts
	}
	for round, pts := range c.KnockoutProgressPoints {
		out.KnockoutProgressPoints[round] = pts
	}
	return out
}
