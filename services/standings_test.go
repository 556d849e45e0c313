package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

func TestComputeGroupStandings(t *testing.T) {
	teams := []*models.Team{
		pairTeam("t1", "Alpha", "A", 1),
		pairTeam("t2", "Beta", "A", 3),
		pairTeam("t3", "Gamma", "A", 5),
	}
	d := fixtureDate
	matches := []*models.MatchResult{
		groupMatch("m1", "t1", "t2", models.SideA, d),
		groupMatch("m2", "t1", "t3", models.SideA, d.Add(time.Hour)),
		groupMatch("m3", "t2", "t3", models.SideA, d.Add(2*time.Hour)),
	}

	standings := ComputeGroupStandings(teams, matches)
	require.Len(t, standings, 3)
	assert.Equal(t, models.GroupStanding{TeamID: "t1", Group: "A", Position: 1}, standings[0])
	assert.Equal(t, models.GroupStanding{TeamID: "t2", Group: "A", Position: 2}, standings[1])
	assert.Equal(t, models.GroupStanding{TeamID: "t3", Group: "A", Position: 3}, standings[2])
}

func TestComputeGroupStandingsTieBreaks(t *testing.T) {
	teams := []*models.Team{
		pairTeam("t1", "Alpha", "A", 1),
		pairTeam("t2", "Beta", "A", 3),
	}

	// One win each; t2 takes the better set difference across the two
	// matches (6-0 6-0 versus 6-4 4-6 6-4).
	m1 := groupMatch("m1", "t2", "t1", models.SideA, fixtureDate)
	m2 := &models.MatchResult{
		MatchID:     "m2",
		TeamAID:     "t1",
		TeamBID:     "t2",
		Sets:        []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}, {A: 6, B: 4}},
		Winner:      models.SideA,
		Group:       strPtr("A"),
		CompletedAt: fixtureDate.Add(time.Hour),
	}

	standings := ComputeGroupStandings(teams, []*models.MatchResult{m1, m2})
	require.Len(t, standings, 2)
	assert.Equal(t, "t2", standings[0].TeamID)
	assert.Equal(t, "t1", standings[1].TeamID)
}

func TestComputeGroupStandingsSkipsKnockoutAndIncomplete(t *testing.T) {
	teams := []*models.Team{
		pairTeam("t1", "Alpha", "A", 1),
		pairTeam("t2", "Beta", "A", 3),
	}
	matches := []*models.MatchResult{
		knockoutMatch("k1", "t2", "t1", "Finale", models.SideA, fixtureDate),
		{
			MatchID:     "m1",
			TeamAID:     "t2",
			TeamBID:     "t1",
			Sets:        []models.SetScore{{A: 6, B: 4}, {A: 4, B: 6}},
			Group:       strPtr("A"),
			CompletedAt: fixtureDate,
		},
	}

	// With no countable group results the order falls back to team id.
	standings := ComputeGroupStandings(teams, matches)
	require.Len(t, standings, 2)
	assert.Equal(t, "t1", standings[0].TeamID)
	assert.Equal(t, 1, standings[0].Position)
	assert.Equal(t, "t2", standings[1].TeamID)
}
