package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

var fixtureDate = time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }

func seedTournament(t *testing.T, store docstore.Store, clubID string, tournament *models.Tournament) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(),
		docstore.TournamentPath(clubID, tournament.ID), tournament, false))
}

func seedTeam(t *testing.T, store docstore.Store, clubID, tournamentID string, team *models.Team) {
	t.Helper()
	team.TournamentID = tournamentID
	require.NoError(t, store.Set(context.Background(),
		docstore.TeamPath(clubID, tournamentID, team.ID), team, false))
}

func seedMatch(t *testing.T, store docstore.Store, clubID, tournamentID string, match *models.MatchResult) {
	t.Helper()
	match.TournamentID = tournamentID
	require.NoError(t, store.Set(context.Background(),
		docstore.MatchPath(clubID, tournamentID, match.MatchID), match, false))
}

func pairTeam(id, name, group string, firstPlayer int) *models.Team {
	return &models.Team{
		ID:    id,
		Name:  name,
		Group: group,
		Players: []models.Player{
			{PlayerID: fmt.Sprintf("p%d", firstPlayer), PlayerName: fmt.Sprintf("Player %d", firstPlayer), Ranking: 500},
			{PlayerID: fmt.Sprintf("p%d", firstPlayer+1), PlayerName: fmt.Sprintf("Player %d", firstPlayer+1), Ranking: 500},
		},
	}
}

func groupMatch(id, teamA, teamB string, winner models.Side, date time.Time) *models.MatchResult {
	sets := []models.SetScore{{A: 6, B: 0}, {A: 6, B: 0}}
	if winner == models.SideB {
		sets = []models.SetScore{{A: 0, B: 6}, {A: 0, B: 6}}
	}
	return &models.MatchResult{
		MatchID:             id,
		TeamAID:             teamA,
		TeamBID:             teamB,
		Sets:                sets,
		Winner:              winner,
		Group:               strPtr("A"),
		CompletedAt:         date,
		TeamARatingSnapshot: f64Ptr(1000),
		TeamBRatingSnapshot: f64Ptr(1000),
	}
}

func knockoutMatch(id, teamA, teamB, round string, winner models.Side, date time.Time) *models.MatchResult {
	m := groupMatch(id, teamA, teamB, winner, date)
	m.Group = nil
	m.IsKnockout = true
	m.Round = strPtr(round)
	return m
}

// seedChampionshipScenario builds a complete small tournament: four
// two-player teams in one group, a full round robin won in seeding
// order, then two semifinals and a final.
func seedChampionshipScenario(t *testing.T, store docstore.Store, clubID, tournamentID string) {
	t.Helper()
	seedTournament(t, store, clubID, &models.Tournament{
		ID:     tournamentID,
		ClubID: clubID,
		Name:   "Torneo " + tournamentID,
		Status: models.TournamentStatusCompleted,
	})
	seedTeam(t, store, clubID, tournamentID, pairTeam("t1", "Team One", "A", 1))
	seedTeam(t, store, clubID, tournamentID, pairTeam("t2", "Team Two", "A", 3))
	seedTeam(t, store, clubID, tournamentID, pairTeam("t3", "Team Three", "A", 5))
	seedTeam(t, store, clubID, tournamentID, pairTeam("t4", "Team Four", "A", 7))

	d := fixtureDate
	seedMatch(t, store, clubID, tournamentID, groupMatch("g1", "t1", "t2", models.SideA, d))
	seedMatch(t, store, clubID, tournamentID, groupMatch("g2", "t1", "t3", models.SideA, d.Add(1*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, groupMatch("g3", "t1", "t4", models.SideA, d.Add(2*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, groupMatch("g4", "t2", "t3", models.SideA, d.Add(3*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, groupMatch("g5", "t2", "t4", models.SideA, d.Add(4*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, groupMatch("g6", "t3", "t4", models.SideA, d.Add(5*time.Hour)))

	seedMatch(t, store, clubID, tournamentID, knockoutMatch("k1", "t1", "t3", "Semifinale", models.SideA, d.Add(6*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, knockoutMatch("k2", "t2", "t4", "Semifinale", models.SideA, d.Add(7*time.Hour)))
	seedMatch(t, store, clubID, tournamentID, knockoutMatch("k3", "t1", "t2", "Finale", models.SideA, d.Add(8*time.Hour)))
}
