package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

func TestGetLeaderboardOrdersByTotal(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := NewLeaderboardService(store)

	for _, e := range []*models.LeaderboardEntry{
		{PlayerID: "p1", TotalPoints: 42.5},
		{PlayerID: "p2", TotalPoints: 110},
		{PlayerID: "p3", TotalPoints: 42.5},
	} {
		require.NoError(t, store.Set(ctx, docstore.LeaderboardEntryPath("club1", e.PlayerID), e, false))
	}

	entries, err := svc.GetLeaderboard(ctx, "club1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "p2", entries[0].PlayerID)
	// Tied totals come back in stable player-id order.
	assert.Equal(t, "p1", entries[1].PlayerID)
	assert.Equal(t, "p3", entries[2].PlayerID)

	_, err = svc.GetLeaderboard(ctx, "")
	assert.ErrorIs(t, err, ErrClubIDRequired)
}

func TestGetPlayerHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	svc := NewLeaderboardService(store)

	older := &models.LedgerEntry{TournamentID: "t1", Points: 50, CreatedAt: fixtureDate}
	newer := &models.LedgerEntry{TournamentID: "t2", Points: 70, CreatedAt: fixtureDate.Add(48 * time.Hour)}
	require.NoError(t, store.Set(ctx, docstore.LedgerEntryPath("club1", "p1", "t1"), older, false))
	require.NoError(t, store.Set(ctx, docstore.LedgerEntryPath("club1", "p1", "t2"), newer, false))

	history, err := svc.GetPlayerHistory(ctx, "club1", "p1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "t2", history[0].TournamentID)
	assert.Equal(t, "t1", history[1].TournamentID)

	empty, err := svc.GetPlayerHistory(ctx, "club1", "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
