package models

import "time"

// Side identifies which side of a match a value refers to.
type Side string

const (
	SideA    Side = "A"
	SideB    Side = "B"
	SideNone Side = ""
)

// SetScore holds the games won by each side in a single set.
type SetScore struct {
	A int `json:"a"`
	B int `json:"b"`
}

// MatchResult is the stored result of a tournament match. Results are
// immutable once recorded: a correction is a delete followed by a
// recreate, never an in-place update.
type MatchResult struct {
	MatchID      string     `json:"matchId"`
	TournamentID string     `json:"tournamentId"`
	TeamAID      string     `json:"teamAId"`
	TeamBID      string     `json:"teamBId"`
	Sets         []SetScore `json:"sets"`
	Winner       Side       `json:"winner,omitempty"`
	IsKnockout   bool       `json:"isKnockout"`
	IsBye        bool       `json:"isBye,omitempty"`
	Round        *string    `json:"round,omitempty"`
	Group        *string    `json:"group,omitempty"`
	CompletedAt  time.Time  `json:"completedAt"`

	// Rating sums each team held when the match was played. Kept on the
	// match document so later roster or ranking edits cannot change an
	// already-recorded result. Nil falls back to the current roster sum.
	TeamARatingSnapshot *float64 `json:"teamARatingSnapshot,omitempty"`
	TeamBRatingSnapshot *float64 `json:"teamBRatingSnapshot,omitempty"`
}

// Completed reports whether the match has a decided winner.
func (m *MatchResult) Completed() bool {
	return m.Winner == SideA || m.Winner == SideB
}

// Involves reports whether the given team played in this match.
func (m *MatchResult) Involves(teamID string) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// WonBy reports whether the given team won this match.
func (m *MatchResult) WonBy(teamID string) bool {
	switch m.Winner {
	case SideA:
		return m.TeamAID == teamID
	case SideB:
		return m.TeamBID == teamID
	}
	return false
}

// OpponentOf returns the id of the other team in the match.
func (m *MatchResult) OpponentOf(teamID string) string {
	if m.TeamAID == teamID {
		return m.TeamBID
	}
	return m.TeamAID
}

// NormalizedMatch is the canonical per-match shape written into player
// ledger entries. Both legacy booking documents and tournament match
// documents normalize into it at the ingestion boundary.
type NormalizedMatch struct {
	MatchID           string     `json:"matchId"`
	TeamA             []string   `json:"teamA"`
	TeamB             []string   `json:"teamB"`
	Winner            Side       `json:"winner,omitempty"`
	Sets              []SetScore `json:"sets"`
	SetsA             int        `json:"setsA"`
	SetsB             int        `json:"setsB"`
	GamesA            int        `json:"gamesA"`
	GamesB            int        `json:"gamesB"`
	Date              time.Time  `json:"date"`
	IsTournamentMatch bool       `json:"isTournamentMatch"`
	TournamentID      string     `json:"tournamentId,omitempty"`
}

// PlayerMatchDetail annotates a normalized match with one player's
// participation, for that player's history ledger.
type PlayerMatchDetail struct {
	NormalizedMatch
	PlayerTeam Side `json:"playerTeam"`
	Won        bool `json:"won"`
}

// LegacyBookingMatch is the old booking-originated match document
// shape, still present in long-lived club databases. The score is a
// single comma-separated string instead of structured sets.
type LegacyBookingMatch struct {
	ID        string    `json:"id"`
	PlayersA  []string  `json:"playersA"`
	PlayersB  []string  `json:"playersB"`
	Score     string    `json:"score"`
	PlayedAt  time.Time `json:"playedAt"`
	CourtName string    `json:"courtName,omitempty"`
}

// RawMatch is the tagged union produced when reading match documents of
// unknown vintage. Exactly one of the two fields is set.
type RawMatch struct {
	Tournament *MatchResult
	Legacy     *LegacyBookingMatch
}
