package docstore

import "fmt"

// Club-scoped document paths used by the championship flow.

func UserPath(email string) string {
	return fmt.Sprintf("users/%s", email)
}

func ClubMemberPath(clubID, userID string) string {
	return fmt.Sprintf("clubs/%s/members/%s", clubID, userID)
}

func TournamentPath(clubID, tournamentID string) string {
	return fmt.Sprintf("clubs/%s/tournaments/%s", clubID, tournamentID)
}

func TeamsCollection(clubID, tournamentID string) string {
	return fmt.Sprintf("clubs/%s/tournaments/%s/teams", clubID, tournamentID)
}

func TeamPath(clubID, tournamentID, teamID string) string {
	return fmt.Sprintf("%s/%s", TeamsCollection(clubID, tournamentID), teamID)
}

func MatchesCollection(clubID, tournamentID string) string {
	return fmt.Sprintf("clubs/%s/tournaments/%s/matches", clubID, tournamentID)
}

func MatchPath(clubID, tournamentID, matchID string) string {
	return fmt.Sprintf("%s/%s", MatchesCollection(clubID, tournamentID), matchID)
}

func AppliedAuditCollection(clubID string) string {
	return fmt.Sprintf("clubs/%s/championshipApplied", clubID)
}

func AppliedAuditPath(clubID, tournamentID string) string {
	return fmt.Sprintf("%s/%s", AppliedAuditCollection(clubID), tournamentID)
}

func LeaderboardCollection(clubID string) string {
	return fmt.Sprintf("clubs/%s/leaderboard", clubID)
}

func LeaderboardEntryPath(clubID, playerID string) string {
	return fmt.Sprintf("%s/%s", LeaderboardCollection(clubID), playerID)
}

func LedgerEntriesCollection(clubID, playerID string) string {
	return fmt.Sprintf("%s/entries", LeaderboardEntryPath(clubID, playerID))
}

func LedgerEntryPath(clubID, playerID, tournamentID string) string {
	return fmt.Sprintf("%s/tournament_%s", LedgerEntriesCollection(clubID, playerID), tournamentID)
}
