package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

// LeaderboardService reads the club leaderboard and per-player point
// history. It is read-only: all mutation goes through ApplyService.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, clubID string) ([]*models.LeaderboardEntry, error)
	GetPlayerHistory(ctx context.Context, clubID, playerID string) ([]*models.LedgerEntry, error)
}

type leaderboardService struct {
	store docstore.Store
}

func NewLeaderboardService(store docstore.Store) LeaderboardService {
	return &leaderboardService{store: store}
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, clubID string) ([]*models.LeaderboardEntry, error) {
	if clubID == "" {
		return nil, ErrClubIDRequired
	}
	docs, err := s.store.Query(ctx, docstore.LeaderboardCollection(clubID))
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	entries := make([]*models.LeaderboardEntry, 0, len(docs))
	for _, doc := range docs {
		entry := &models.LeaderboardEntry{}
		if err := doc.Decode(entry); err != nil {
			return nil, err
		}
		if entry.PlayerID == "" {
			entry.PlayerID = doc.ID()
		}
		entries = append(entries, entry)
	}
	// Highest total first; ties broken by player id for a stable order.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
	return entries, nil
}

func (s *leaderboardService) GetPlayerHistory(ctx context.Context, clubID, playerID string) ([]*models.LedgerEntry, error) {
	if clubID == "" {
		return nil, ErrClubIDRequired
	}
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrValidationFailed)
	}
	docs, err := s.store.Query(ctx, docstore.LedgerEntriesCollection(clubID, playerID))
	if err != nil {
		return nil, fmt.Errorf("query player history: %w", err)
	}
	entries := make([]*models.LedgerEntry, 0, len(docs))
	for _, doc := range docs {
		entry := &models.LedgerEntry{}
		if err := doc.Decode(entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].TournamentID < entries[j].TournamentID
	})
	return entries, nil
}
