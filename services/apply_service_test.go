package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

func newApplyService(store docstore.Store) ApplyService {
	return NewApplyService(store, NewPointsService(store, nil, nil), nil)
}

func getLeaderboard(t *testing.T, store docstore.Store, clubID, playerID string) *models.LeaderboardEntry {
	t.Helper()
	doc, err := store.Get(context.Background(), docstore.LeaderboardEntryPath(clubID, playerID))
	require.NoError(t, err)
	entry := &models.LeaderboardEntry{}
	require.NoError(t, doc.Decode(entry))
	return entry
}

func getLedger(t *testing.T, store docstore.Store, clubID, playerID, tournamentID string) *models.LedgerEntry {
	t.Helper()
	doc, err := store.Get(context.Background(), docstore.LedgerEntryPath(clubID, playerID, tournamentID))
	require.NoError(t, err)
	entry := &models.LedgerEntry{}
	require.NoError(t, doc.Decode(entry))
	return entry
}

func TestApplyRoundTrip(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID, tournamentID := "club1", "t1"
	seedChampionshipScenario(t, store, clubID, tournamentID)

	result, err := newApplyService(store).Apply(context.Background(), clubID, tournamentID, ApplyOptions{})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.False(t, result.AlreadyApplied)
	require.NotNil(t, result.AppliedAt)
	require.Len(t, result.Totals, 4)

	for _, row := range result.Totals {
		require.Len(t, row.Split, 2, "team %s", row.TeamID)
		perPlayer := row.Split[0].Points
		assert.Equal(t, round1(row.Total/2), perPlayer, "team %s", row.TeamID)

		for _, split := range row.Split {
			ledger := getLedger(t, store, clubID, split.PlayerID, tournamentID)
			assert.Equal(t, models.LedgerEntryTypeTournamentPoints, ledger.Type)
			assert.Equal(t, models.LedgerSourceChampionship, ledger.Source)
			assert.Equal(t, "Championship points - Torneo t1", ledger.Description)
			assert.Equal(t, split.Points, ledger.Points)
			assert.NotEmpty(t, ledger.MatchDetails, "ledger carries the player's matches")

			board := getLeaderboard(t, store, clubID, split.PlayerID)
			assert.Equal(t, split.Points, board.TotalPoints)
			assert.Equal(t, 1, board.EntriesCount)
			assert.Equal(t, tournamentID, board.LastTournamentID)
		}
	}

	// The audit record freezes the totals it was applied with.
	auditDoc, err := store.Get(context.Background(), docstore.AppliedAuditPath(clubID, tournamentID))
	require.NoError(t, err)
	audit := &models.AppliedAudit{}
	require.NoError(t, auditDoc.Decode(audit))
	assert.Equal(t, models.AppliedAuditVersion, audit.Version)
	assert.Len(t, audit.Totals, 4)
	assert.NotNil(t, audit.Config.GroupPlacementPoints)
}

func TestApplyIsIdempotent(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID, tournamentID := "club1", "t1"
	seedChampionshipScenario(t, store, clubID, tournamentID)
	svc := newApplyService(store)

	first, err := svc.Apply(context.Background(), clubID, tournamentID, ApplyOptions{})
	require.NoError(t, err)
	require.True(t, first.Success)
	afterFirst := getLeaderboard(t, store, clubID, "p1")

	second, err := svc.Apply(context.Background(), clubID, tournamentID, ApplyOptions{})
	require.NoError(t, err)
	assert.True(t, second.Success)
	assert.True(t, second.AlreadyApplied)
	require.NotNil(t, second.AppliedAt)

	afterSecond := getLeaderboard(t, store, clubID, "p1")
	assert.Equal(t, afterFirst.TotalPoints, afterSecond.TotalPoints, "no double counting")
	assert.Equal(t, afterFirst.EntriesCount, afterSecond.EntriesCount)
}

func TestRevertIsExactInverse(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID, tournamentID := "club1", "t1"
	seedChampionshipScenario(t, store, clubID, tournamentID)

	// p1 already holds points from earlier tournaments.
	preExisting := &models.LeaderboardEntry{PlayerID: "p1", TotalPoints: 13.5, EntriesCount: 2}
	require.NoError(t, store.Set(context.Background(),
		docstore.LeaderboardEntryPath(clubID, "p1"), preExisting, false))

	svc := newApplyService(store)
	applied, err := svc.Apply(context.Background(), clubID, tournamentID, ApplyOptions{})
	require.NoError(t, err)
	require.True(t, applied.Success)

	mid := getLeaderboard(t, store, clubID, "p1")
	assert.Greater(t, mid.TotalPoints, 13.5)
	assert.Equal(t, 3, mid.EntriesCount)

	reverted, err := svc.Revert(context.Background(), clubID, tournamentID)
	require.NoError(t, err)
	require.True(t, reverted.Success)
	require.False(t, reverted.AlreadyReverted)

	after := getLeaderboard(t, store, clubID, "p1")
	assert.Equal(t, 13.5, after.TotalPoints, "totals return exactly to their pre-apply value")
	assert.Equal(t, 2, after.EntriesCount)

	// Ledger entry and audit record are gone.
	_, err = store.Get(context.Background(), docstore.LedgerEntryPath(clubID, "p1", tournamentID))
	assert.True(t, errors.Is(err, docstore.ErrDocumentNotFound))
	_, err = store.Get(context.Background(), docstore.AppliedAuditPath(clubID, tournamentID))
	assert.True(t, errors.Is(err, docstore.ErrDocumentNotFound))
}

func TestRevertNeverAppliedIsNoop(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID, tournamentID := "club1", "t1"
	seedChampionshipScenario(t, store, clubID, tournamentID)
	docsBefore := store.Len()

	result, err := newApplyService(store).Revert(context.Background(), clubID, tournamentID)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.AlreadyReverted)
	assert.Equal(t, docsBefore, store.Len(), "no document was touched")
}

func TestApplyTemporalValidation(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID := "club1"
	seedChampionshipScenario(t, store, clubID, "t1")
	svc := newApplyService(store)

	first, err := svc.Apply(context.Background(), clubID, "t1", ApplyOptions{})
	require.NoError(t, err)
	require.True(t, first.Success)
	docsAfterFirst := store.Len()
	p1Before := getLeaderboard(t, store, clubID, "p1")

	// A tournament whose matches predate the already-applied one must be
	// rejected before anything is written.
	result, err := svc.Apply(context.Background(), clubID, "t2", ApplyOptions{
		MatchDate: first.AppliedAt.Add(-24 * time.Hour),
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.TemporalValidationFailed)
	assert.NotEmpty(t, result.Error)

	assert.Equal(t, docsAfterFirst, store.Len())
	assert.Equal(t, p1Before.TotalPoints, getLeaderboard(t, store, clubID, "p1").TotalPoints)
	_, err = store.Get(context.Background(), docstore.AppliedAuditPath(clubID, "t2"))
	assert.True(t, errors.Is(err, docstore.ErrDocumentNotFound))
}

func TestLedgerLeaderboardConsistency(t *testing.T) {
	store := docstore.NewMemoryStore()
	clubID := "club1"
	seedChampionshipScenario(t, store, clubID, "t1")
	seedChampionshipScenario(t, store, clubID, "t2")
	svc := newApplyService(store)

	_, err := svc.Apply(context.Background(), clubID, "t1", ApplyOptions{})
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), clubID, "t2", ApplyOptions{})
	require.NoError(t, err)

	checkConsistency := func() {
		for i := 1; i <= 8; i++ {
			playerID := fmt.Sprintf("p%d", i)
			board := getLeaderboard(t, store, clubID, playerID)

			docs, err := store.Query(context.Background(), docstore.LedgerEntriesCollection(clubID, playerID))
			require.NoError(t, err)
			var sum float64
			for _, doc := range docs {
				entry := &models.LedgerEntry{}
				require.NoError(t, doc.Decode(entry))
				sum += entry.Points
			}
			assert.Equal(t, board.TotalPoints, round1(sum), "player %s", playerID)
			assert.Equal(t, len(docs), board.EntriesCount, "player %s", playerID)
		}
	}

	checkConsistency()

	_, err = svc.Revert(context.Background(), clubID, "t1")
	require.NoError(t, err)
	checkConsistency()
}

func TestApplyValidatesIdentifiers(t *testing.T) {
	svc := newApplyService(docstore.NewMemoryStore())

	result, err := svc.Apply(context.Background(), "", "t1", ApplyOptions{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ErrClubIDRequired.Error(), result.Error)

	result, err = svc.Apply(context.Background(), "club1", "", ApplyOptions{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, ErrTournamentRequired.Error(), result.Error)

	result, err = svc.Apply(context.Background(), "club1", "missing", ApplyOptions{})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "tournament not found")
}
