package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
	"github.com/parischit85-sketch/play-sport-pro-sub002/rating"
)

// DecodeRawMatch classifies a match document into the tagged union of
// known shapes. Legacy booking matches carry a score string and direct
// player-id lists; everything else is a tournament match, including
// BYE results whose sets serialize as null. The discriminator looks
// for the legacy keys because legacy documents predate any type field.
func DecodeRawMatch(doc *docstore.Document) (*models.RawMatch, error) {
	var shape struct {
		Score    *string  `json:"score"`
		PlayersA []string `json:"playersA"`
	}
	if err := doc.Decode(&shape); err != nil {
		return nil, fmt.Errorf("decode match %s: %w", doc.Path, err)
	}
	if shape.Score != nil || shape.PlayersA != nil {
		legacy := &models.LegacyBookingMatch{}
		if err := doc.Decode(legacy); err != nil {
			return nil, fmt.Errorf("decode legacy match %s: %w", doc.Path, err)
		}
		if legacy.ID == "" {
			legacy.ID = doc.ID()
		}
		return &models.RawMatch{Legacy: legacy}, nil
	}
	match := &models.MatchResult{}
	if err := doc.Decode(match); err != nil {
		return nil, fmt.Errorf("decode tournament match %s: %w", doc.Path, err)
	}
	if match.MatchID == "" {
		match.MatchID = doc.ID()
	}
	return &models.RawMatch{Tournament: match}, nil
}

// NormalizeMatch converts either variant into the canonical ledger
// shape. teams resolves a team id to its roster for tournament
// matches; legacy matches already carry player ids directly.
func NormalizeMatch(raw *models.RawMatch, teams map[string]*models.Team) (*models.NormalizedMatch, error) {
	switch {
	case raw.Tournament != nil:
		m := raw.Tournament
		summary := rating.ComputeFromSets(m.Sets)
		normalized := &models.NormalizedMatch{
			MatchID:           m.MatchID,
			TeamA:             rosterIDs(teams[m.TeamAID]),
			TeamB:             rosterIDs(teams[m.TeamBID]),
			Winner:            m.Winner,
			Sets:              m.Sets,
			SetsA:             summary.SetsA,
			SetsB:             summary.SetsB,
			GamesA:            summary.GamesA,
			GamesB:            summary.GamesB,
			Date:              m.CompletedAt,
			IsTournamentMatch: true,
			TournamentID:      m.TournamentID,
		}
		return normalized, nil
	case raw.Legacy != nil:
		m := raw.Legacy
		sets, err := parseLegacyScore(m.Score)
		if err != nil {
			return nil, fmt.Errorf("legacy match %s: %w", m.ID, err)
		}
		summary := rating.ComputeFromSets(sets)
		return &models.NormalizedMatch{
			MatchID: m.ID,
			TeamA:   m.PlayersA,
			TeamB:   m.PlayersB,
			Winner:  summary.Winner,
			Sets:    sets,
			SetsA:   summary.SetsA,
			SetsB:   summary.SetsB,
			GamesA:  summary.GamesA,
			GamesB:  summary.GamesB,
			Date:    m.PlayedAt,
		}, nil
	default:
		return nil, fmt.Errorf("raw match has no variant set")
	}
}

// parseLegacyScore parses the old "6-4, 3-6, 7-5" score strings.
func parseLegacyScore(score string) ([]models.SetScore, error) {
	score = strings.TrimSpace(score)
	if score == "" {
		return []models.SetScore{}, nil
	}
	parts := strings.Split(score, ",")
	sets := make([]models.SetScore, 0, len(parts))
	for _, part := range parts {
		fields := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed set score %q", part)
		}
		a, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("malformed set score %q: %w", part, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("malformed set score %q: %w", part, err)
		}
		sets = append(sets, models.SetScore{A: a, B: b})
	}
	return sets, nil
}

func rosterIDs(team *models.Team) []string {
	if team == nil {
		return []string{}
	}
	ids := make([]string, 0, len(team.Players))
	for _, p := range team.Players {
		ids = append(ids, p.PlayerID)
	}
	return ids
}

func decodeTeams(docs []*docstore.Document) ([]*models.Team, error) {
	teams := make([]*models.Team, 0, len(docs))
	for _, doc := range docs {
		team := &models.Team{}
		if err := doc.Decode(team); err != nil {
			return nil, fmt.Errorf("decode team %s: %w", doc.Path, err)
		}
		if team.ID == "" {
			team.ID = doc.ID()
		}
		teams = append(teams, team)
	}
	return teams, nil
}
