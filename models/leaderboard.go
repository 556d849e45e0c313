package models

import "time"

// LeaderboardEntry is the per-club running accumulator for one player.
// It is mutated incrementally by apply (add) and revert (subtract) and
// never recomputed from history, so the two operations must be exact
// inverses to avoid drift.
type LeaderboardEntry struct {
	PlayerID           string    `json:"playerId"`
	TotalPoints        float64   `json:"totalPoints"`
	EntriesCount       int       `json:"entriesCount"`
	LastTournamentID   string    `json:"lastTournamentId,omitempty"`
	LastTournamentName string    `json:"lastTournamentName,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// LedgerEntryTypeTournamentPoints is the only ledger entry type written
// by the championship flow.
const LedgerEntryTypeTournamentPoints = "tournament_points"

// LedgerSourceChampionship marks entries produced by a championship
// points apply.
const LedgerSourceChampionship = "championship"

// LedgerEntry is one tournament's points for one player, keyed by
// tournament_{tournamentId} under the player's leaderboard document.
// Created once by apply, deleted by revert.
type LedgerEntry struct {
	Type           string              `json:"type"`
	TournamentID   string              `json:"tournamentId"`
	TournamentName string              `json:"tournamentName"`
	Description    string              `json:"description"`
	Points         float64             `json:"points"`
	CreatedAt      time.Time           `json:"createdAt"`
	Source         string              `json:"source"`
	MatchDetails   []PlayerMatchDetail `json:"matchDetails,omitempty"`
}

// AppliedAuditVersion is the current audit schema version.
const AppliedAuditVersion = 1

// AppliedAudit is the one-per-(club, tournament) record of a successful
// apply. Its existence is the sole idempotency marker: "applied" means
// "this document exists". Revert works off the frozen Totals copy so a
// later configuration change can never skew the subtraction.
type AppliedAudit struct {
	AppliedAt      time.Time                `json:"appliedAt"`
	TournamentID   string                   `json:"tournamentId"`
	TournamentName string                   `json:"tournamentName"`
	Config         ChampionshipPointsConfig `json:"config"`
	Totals         []TeamTotal              `json:"totals"`
	Meta           DraftMeta                `json:"meta"`
	Version        int                      `json:"version"`
}
