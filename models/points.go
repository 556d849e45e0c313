package models

import "time"

// RPAContribution is one match's rating-based contribution for a team.
// Negative contributions (losses) are computed and listed for display
// but never credited: Counted marks whether the value entered the
// team's creditable RPA sum.
type RPAContribution struct {
	MatchID    string    `json:"matchId"`
	Round      string    `json:"round,omitempty"`
	OpponentID string    `json:"opponentId"`
	Date       time.Time `json:"date"`
	Points     float64   `json:"points"`
	IsLoss     bool      `json:"isLoss"`
	IsKnockout bool      `json:"isKnockout"`
	Counted    bool      `json:"counted"`
}

// KnockoutContribution is one knockout match's bonus for a team. A loss
// stays in the list with IsLoss set and zero points.
type KnockoutContribution struct {
	MatchID    string    `json:"matchId"`
	RoundLabel string    `json:"roundLabel"`
	RoundKey   string    `json:"roundKey"`
	OpponentID string    `json:"opponentId"`
	Date       time.Time `json:"date"`
	Points     float64   `json:"points"`
	IsLoss     bool      `json:"isLoss"`
}

// PointsDetails carries the raw per-match contribution lists backing a
// team's totals. Ordering is part of the contract: group contributions
// first by date ascending, then knockout contributions by round order
// ascending then date ascending.
type PointsDetails struct {
	RPAContributions      []RPAContribution      `json:"rpaContributions"`
	KnockoutContributions []KnockoutContribution `json:"knockoutContributions"`
	GroupPosition         int                    `json:"groupPosition,omitempty"`
}

// PlayerSplit is one player's share of a team total.
type PlayerSplit struct {
	PlayerID string  `json:"playerId"`
	Points   float64 `json:"points"`
}

// TeamTotal is one row of a points draft: the team's creditable
// components, the equal per-player split, and the display details.
type TeamTotal struct {
	TeamID         string        `json:"teamId"`
	TeamName       string        `json:"teamName"`
	RPA            float64       `json:"rpa"`
	GroupPlacement float64       `json:"groupPlacement"`
	Knockout       float64       `json:"knockout"`
	Total          float64       `json:"total"`
	Split          []PlayerSplit `json:"split"`
	Details        PointsDetails `json:"details"`
}

// DraftMeta describes the computation that produced a draft.
type DraftMeta struct {
	TournamentID   string    `json:"tournamentId"`
	TournamentName string    `json:"tournamentName"`
	ComputedAt     time.Time `json:"computedAt"`
	TeamCount      int       `json:"teamCount"`
	MatchCount     int       `json:"matchCount"`
	// Teams skipped for per-player split because the roster was empty.
	EmptyRosterTeams []string `json:"emptyRosterTeams,omitempty"`
}

// PointsDraft is the ephemeral output of the championship points
// engine. It is recomputed on demand and never persisted directly; the
// only durable projection is the AppliedAudit record.
type PointsDraft struct {
	Totals []TeamTotal              `json:"totals"`
	Meta   DraftMeta                `json:"meta"`
	Config ChampionshipPointsConfig `json:"config"`
}
