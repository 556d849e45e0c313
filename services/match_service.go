package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
	"github.com/parischit85-sketch/play-sport-pro-sub002/rating"
)

// RecordMatchInput is the payload for recording a completed match.
type RecordMatchInput struct {
	TeamAID    string            `json:"teamAId"`
	TeamBID    string            `json:"teamBId"`
	Sets       []models.SetScore `json:"sets"`
	IsKnockout bool              `json:"isKnockout"`
	IsBye      bool              `json:"isBye"`
	Round      *string           `json:"round,omitempty"`
	Group      *string           `json:"group,omitempty"`
	// CompletedAt defaults to now when zero.
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// MatchService records and lists tournament match results. Results are
// immutable: corrections delete and recreate.
type MatchService interface {
	RecordResult(ctx context.Context, clubID, tournamentID string, input RecordMatchInput) (*models.MatchResult, error)
	ListResults(ctx context.Context, clubID, tournamentID string) ([]*models.MatchResult, error)
	DeleteResult(ctx context.Context, clubID, tournamentID, matchID string) error
}

type matchService struct {
	store  docstore.Store
	logger *slog.Logger
}

func NewMatchService(store docstore.Store, logger *slog.Logger) MatchService {
	return &matchService{store: store, logger: logger}
}

func (s *matchService) RecordResult(ctx context.Context, clubID, tournamentID string, input RecordMatchInput) (*models.MatchResult, error) {
	if clubID == "" {
		return nil, ErrClubIDRequired
	}
	if tournamentID == "" {
		return nil, ErrTournamentRequired
	}
	if input.TeamAID == "" || input.TeamBID == "" {
		return nil, ErrTeamIDRequired
	}

	teamA, err := s.getTeam(ctx, clubID, tournamentID, input.TeamAID)
	if err != nil {
		return nil, err
	}
	teamB, err := s.getTeam(ctx, clubID, tournamentID, input.TeamBID)
	if err != nil {
		return nil, err
	}

	match := &models.MatchResult{
		MatchID:      uuid.NewString(),
		TournamentID: tournamentID,
		TeamAID:      input.TeamAID,
		TeamBID:      input.TeamBID,
		Sets:         input.Sets,
		IsKnockout:   input.IsKnockout,
		IsBye:        input.IsBye,
		Round:        input.Round,
		Group:        input.Group,
		CompletedAt:  input.CompletedAt,
	}
	if match.CompletedAt.IsZero() {
		match.CompletedAt = time.Now().UTC()
	}

	if input.IsBye {
		// A BYE advances team A without play: no sets, no rating.
		match.Sets = []models.SetScore{}
		match.Winner = models.SideA
	} else {
		if len(input.Sets) == 0 {
			return nil, ErrSetsRequired
		}
		summary := rating.ComputeFromSets(input.Sets)
		if summary.Winner == models.SideNone {
			return nil, ErrMatchNotDecided
		}
		match.Winner = summary.Winner
		// Freeze the rating sums both teams hold right now; the points
		// engine must score this match against these, not against
		// whatever the rosters look like later.
		sumA, sumB := teamA.RatingSum(), teamB.RatingSum()
		match.TeamARatingSnapshot = &sumA
		match.TeamBRatingSnapshot = &sumB
	}

	path := docstore.MatchPath(clubID, tournamentID, match.MatchID)
	if err := s.store.Set(ctx, path, match, false); err != nil {
		return nil, fmt.Errorf("store match result: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "match result recorded",
			slog.String("club_id", clubID),
			slog.String("tournament_id", tournamentID),
			slog.String("match_id", match.MatchID),
			slog.String("winner", string(match.Winner)))
	}
	return match, nil
}

func (s *matchService) ListResults(ctx context.Context, clubID, tournamentID string) ([]*models.MatchResult, error) {
	docs, err := s.store.Query(ctx, docstore.MatchesCollection(clubID, tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	matches := make([]*models.MatchResult, 0, len(docs))
	for _, doc := range docs {
		raw, err := DecodeRawMatch(doc)
		if err != nil {
			return nil, err
		}
		if raw.Tournament != nil {
			matches = append(matches, raw.Tournament)
		}
	}
	return matches, nil
}

func (s *matchService) DeleteResult(ctx context.Context, clubID, tournamentID, matchID string) error {
	path := docstore.MatchPath(clubID, tournamentID, matchID)
	if _, err := s.store.Get(ctx, path); err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return s.store.Delete(ctx, path)
}

func (s *matchService) getTeam(ctx context.Context, clubID, tournamentID, teamID string) (*models.Team, error) {
	doc, err := s.store.Get(ctx, docstore.TeamPath(clubID, tournamentID, teamID))
	if err != nil {
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
		}
		return nil, err
	}
	team := &models.Team{}
	if err := doc.Decode(team); err != nil {
		return nil, err
	}
	if team.ID == "" {
		team.ID = teamID
	}
	return team, nil
}
