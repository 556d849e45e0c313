package services

import (
	"sort"

	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
	"github.com/parischit85-sketch/play-sport-pro-sub002/rating"
)

type standingRow struct {
	teamID    string
	wins      int
	setsWon   int
	setsLost  int
	gamesWon  int
	gamesLost int
}

// ComputeGroupStandings derives each team's position within its group
// from the completed group matches. Standings are never stored: they
// are always rebuilt from the match set at hand, so they cannot go
// stale. Tie-breaks: wins, then set difference, then game difference,
// then team id for a stable order.
func ComputeGroupStandings(teams []*models.Team, matches []*models.MatchResult) []models.GroupStanding {
	byGroup := make(map[string][]*standingRow)
	rows := make(map[string]*standingRow)
	for _, team := range teams {
		row := &standingRow{teamID: team.ID}
		rows[team.ID] = row
		byGroup[team.Group] = append(byGroup[team.Group], row)
	}

	for _, match := range matches {
		if match.IsKnockout || !match.Completed() || match.IsBye {
			continue
		}
		rowA, okA := rows[match.TeamAID]
		rowB, okB := rows[match.TeamBID]
		if !okA || !okB {
			continue
		}
		summary := rating.ComputeFromSets(match.Sets)
		rowA.setsWon += summary.SetsA
		rowA.setsLost += summary.SetsB
		rowB.setsWon += summary.SetsB
		rowB.setsLost += summary.SetsA
		rowA.gamesWon += summary.GamesA
		rowA.gamesLost += summary.GamesB
		rowB.gamesWon += summary.GamesB
		rowB.gamesLost += summary.GamesA
		if match.Winner == models.SideA {
			rowA.wins++
		} else {
			rowB.wins++
		}
	}

	standings := make([]models.GroupStanding, 0, len(teams))
	for group, groupRows := range byGroup {
		sort.Slice(groupRows, func(i, j int) bool {
			a, b := groupRows[i], groupRows[j]
			if a.wins != b.wins {
				return a.wins > b.wins
			}
			if d1, d2 := a.setsWon-a.setsLost, b.setsWon-b.setsLost; d1 != d2 {
				return d1 > d2
			}
			if d1, d2 := a.gamesWon-a.gamesLost, b.gamesWon-b.gamesLost; d1 != d2 {
				return d1 > d2
			}
			return a.teamID < b.teamID
		})
		for i, row := range groupRows {
			standings = append(standings, models.GroupStanding{
				TeamID:   row.teamID,
				Group:    group,
				Position: i + 1,
			})
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Group != standings[j].Group {
			return standings[i].Group < standings[j].Group
		}
		return standings[i].Position < standings[j].Position
	})
	return standings
}
