package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
)

// ApplyOptions carries caller-supplied context for an apply.
type ApplyOptions struct {
	// MatchDate is the tournament's (last) match date, used by the
	// best-effort temporal ordering pre-check. A zero value skips the
	// check.
	MatchDate time.Time
}

// ApplyResult is the structured outcome of an apply. Validation
// failures surface here with Success=false rather than as returned
// errors; only environmental/store failures come back as errors.
type ApplyResult struct {
	Success                  bool               `json:"success"`
	AlreadyApplied           bool               `json:"alreadyApplied,omitempty"`
	AppliedAt                *time.Time         `json:"appliedAt,omitempty"`
	Error                    string             `json:"error,omitempty"`
	TemporalValidationFailed bool               `json:"temporalValidationFailed,omitempty"`
	Totals                   []models.TeamTotal `json:"totals,omitempty"`
}

// RevertResult is the structured outcome of a revert.
type RevertResult struct {
	Success         bool   `json:"success"`
	AlreadyReverted bool   `json:"alreadyReverted,omitempty"`
	Error           string `json:"error,omitempty"`
}

// ApplyService durably commits a championship points draft into the
// club leaderboard and per-player ledgers, at most once per
// tournament, and reverts it exactly.
//
// State machine per (club, tournament): NOT_APPLIED -> APPLIED ->
// NOT_APPLIED. The audit record's existence is the sole idempotency
// marker. Both operations are safe under concurrent invocation for the
// same tournament: correctness rests on the store's transaction
// guarantee plus the in-transaction audit re-check, not on any lock of
// our own.
type ApplyService interface {
	Apply(ctx context.Context, clubID, tournamentID string, opts ApplyOptions) (*ApplyResult, error)
	Revert(ctx context.Context, clubID, tournamentID string) (*RevertResult, error)
}

type applyService struct {
	store  docstore.Store
	points PointsService
	logger *slog.Logger
}

func NewApplyService(store docstore.Store, points PointsService, logger *slog.Logger) ApplyService {
	return &applyService{store: store, points: points, logger: logger}
}

func (s *applyService) Apply(ctx context.Context, clubID, tournamentID string, opts ApplyOptions) (*ApplyResult, error) {
	if clubID == "" {
		return &ApplyResult{Error: ErrClubIDRequired.Error()}, nil
	}
	if tournamentID == "" {
		return &ApplyResult{Error: ErrTournamentRequired.Error()}, nil
	}

	// Best-effort temporal ordering pre-check, deliberately outside
	// the transaction. It can race a concurrent apply for a different
	// tournament; the audit re-check inside the transaction is the
	// real safety net, this one only catches out-of-order admin
	// actions early with a readable message.
	if !opts.MatchDate.IsZero() {
		latest, latestName, err := s.lastApplied(ctx, clubID)
		if err != nil {
			return nil, fmt.Errorf("temporal pre-check: %w", err)
		}
		if latest != nil && opts.MatchDate.Before(*latest) {
			return &ApplyResult{
				TemporalValidationFailed: true,
				Error: fmt.Sprintf(
					"tournament %q was applied on %s, which is after this tournament's match date %s; apply tournaments in chronological order",
					latestName, latest.Format(time.RFC3339), opts.MatchDate.Format(time.RFC3339)),
			}, nil
		}
	}

	// Always recompute the draft: a client-supplied draft is never
	// trusted.
	draft, err := s.points.ComputeTournamentChampionshipPoints(ctx, clubID, tournamentID)
	if err != nil {
		if errors.Is(err, ErrTournamentNotFound) {
			return &ApplyResult{Error: err.Error()}, nil
		}
		return nil, err
	}

	detailsByPlayer, err := s.buildPlayerMatchDetails(ctx, clubID, tournamentID)
	if err != nil {
		return nil, err
	}

	playerPoints := collectPlayerPoints(draft.Totals)
	playerIDs := sortedKeys(playerPoints)
	now := time.Now().UTC()

	result := &ApplyResult{Success: true, Totals: draft.Totals}
	err = s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		// Idempotency guard: if the audit record appeared since we
		// started, another apply won. Report success without writing.
		existing, err := tx.Get(docstore.AppliedAuditPath(clubID, tournamentID))
		if err == nil {
			audit := &models.AppliedAudit{}
			if decodeErr := existing.Decode(audit); decodeErr != nil {
				return decodeErr
			}
			result.AlreadyApplied = true
			result.AppliedAt = &audit.AppliedAt
			result.Totals = audit.Totals
			return nil
		}
		if !errors.Is(err, docstore.ErrDocumentNotFound) {
			return err
		}

		// All reads before any write, per the transaction contract.
		boards := make(map[string]*models.LeaderboardEntry, len(playerIDs))
		ledgerExists := make(map[string]bool, len(playerIDs))
		for _, playerID := range playerIDs {
			entry, err := readLeaderboard(tx, clubID, playerID)
			if err != nil {
				return err
			}
			boards[playerID] = entry
			_, err = tx.Get(docstore.LedgerEntryPath(clubID, playerID, tournamentID))
			switch {
			case err == nil:
				ledgerExists[playerID] = true
			case errors.Is(err, docstore.ErrDocumentNotFound):
				ledgerExists[playerID] = false
			default:
				return err
			}
		}

		for _, playerID := range playerIDs {
			entry := boards[playerID]
			entry.TotalPoints = round1(entry.TotalPoints + playerPoints[playerID])
			entry.EntriesCount++
			entry.LastTournamentID = tournamentID
			entry.LastTournamentName = draft.Meta.TournamentName
			entry.UpdatedAt = now
			if err := tx.Set(docstore.LeaderboardEntryPath(clubID, playerID), entry); err != nil {
				return err
			}
			// Per-player idempotency layer: never overwrite an existing
			// ledger entry for this tournament.
			if !ledgerExists[playerID] {
				ledger := &models.LedgerEntry{
					Type:           models.LedgerEntryTypeTournamentPoints,
					TournamentID:   tournamentID,
					TournamentName: draft.Meta.TournamentName,
					Description:    fmt.Sprintf("Championship points - %s", draft.Meta.TournamentName),
					Points:         playerPoints[playerID],
					CreatedAt:      now,
					Source:         models.LedgerSourceChampionship,
					MatchDetails:   detailsByPlayer[playerID],
				}
				if err := tx.Set(docstore.LedgerEntryPath(clubID, playerID, tournamentID), ledger); err != nil {
					return err
				}
			}
		}

		// The audit record goes last: its presence is the commit
		// marker for "applied".
		audit := &models.AppliedAudit{
			AppliedAt:      now,
			TournamentID:   tournamentID,
			TournamentName: draft.Meta.TournamentName,
			Config:         draft.Config,
			Totals:         draft.Totals,
			Meta:           draft.Meta,
			Version:        models.AppliedAuditVersion,
		}
		return tx.Set(docstore.AppliedAuditPath(clubID, tournamentID), audit)
	})
	if err != nil {
		return nil, err
	}
	if !result.AlreadyApplied {
		result.AppliedAt = &now
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "championship points applied",
			slog.String("club_id", clubID),
			slog.String("tournament_id", tournamentID),
			slog.Bool("already_applied", result.AlreadyApplied),
			slog.Int("players", len(playerIDs)))
	}
	return result, nil
}

func (s *applyService) Revert(ctx context.Context, clubID, tournamentID string) (*RevertResult, error) {
	if clubID == "" {
		return &RevertResult{Error: ErrClubIDRequired.Error()}, nil
	}
	if tournamentID == "" {
		return &RevertResult{Error: ErrTournamentRequired.Error()}, nil
	}

	result := &RevertResult{Success: true}
	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		auditDoc, err := tx.Get(docstore.AppliedAuditPath(clubID, tournamentID))
		if errors.Is(err, docstore.ErrDocumentNotFound) {
			// Reverting something never applied is a no-op, not an
			// error.
			result.AlreadyReverted = true
			return nil
		}
		if err != nil {
			return err
		}
		audit := &models.AppliedAudit{}
		if err := auditDoc.Decode(audit); err != nil {
			return err
		}

		// Subtract amounts come from the frozen audit totals, never
		// from a recomputation: configuration changes after apply must
		// not skew the reversal.
		playerPoints := collectPlayerPoints(audit.Totals)
		playerIDs := sortedKeys(playerPoints)

		boards := make(map[string]*models.LeaderboardEntry, len(playerIDs))
		ledgerExists := make(map[string]bool, len(playerIDs))
		for _, playerID := range playerIDs {
			entry, err := readLeaderboard(tx, clubID, playerID)
			if err != nil {
				return err
			}
			boards[playerID] = entry
			_, err = tx.Get(docstore.LedgerEntryPath(clubID, playerID, tournamentID))
			switch {
			case err == nil:
				ledgerExists[playerID] = true
			case errors.Is(err, docstore.ErrDocumentNotFound):
				ledgerExists[playerID] = false
			default:
				return err
			}
		}

		now := time.Now().UTC()
		for _, playerID := range playerIDs {
			entry := boards[playerID]
			entry.TotalPoints = round1(entry.TotalPoints - playerPoints[playerID])
			if entry.TotalPoints < 0 {
				entry.TotalPoints = 0
			}
			if entry.EntriesCount > 0 {
				entry.EntriesCount--
			}
			entry.UpdatedAt = now
			if err := tx.Set(docstore.LeaderboardEntryPath(clubID, playerID), entry); err != nil {
				return err
			}
			if ledgerExists[playerID] {
				if err := tx.Delete(docstore.LedgerEntryPath(clubID, playerID, tournamentID)); err != nil {
					return err
				}
			}
		}

		// Even an audit with zero affected players is deleted: its
		// removal is the commit marker for "reverted".
		return tx.Delete(docstore.AppliedAuditPath(clubID, tournamentID))
	})
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "championship points reverted",
			slog.String("club_id", clubID),
			slog.String("tournament_id", tournamentID),
			slog.Bool("already_reverted", result.AlreadyReverted))
	}
	return result, nil
}

// lastApplied scans the club's audit records and returns the newest
// AppliedAt and its tournament name, or nil when nothing was applied.
func (s *applyService) lastApplied(ctx context.Context, clubID string) (*time.Time, string, error) {
	docs, err := s.store.Query(ctx, docstore.AppliedAuditCollection(clubID))
	if err != nil {
		return nil, "", err
	}
	var latest *time.Time
	var name string
	for _, doc := range docs {
		audit := &models.AppliedAudit{}
		if err := doc.Decode(audit); err != nil {
			return nil, "", fmt.Errorf("decode audit %s: %w", doc.Path, err)
		}
		if latest == nil || audit.AppliedAt.After(*latest) {
			t := audit.AppliedAt
			latest = &t
			name = audit.TournamentName
		}
	}
	return latest, name, nil
}

// buildPlayerMatchDetails normalizes the tournament's match documents
// and groups them per participating player for the ledger entries.
func (s *applyService) buildPlayerMatchDetails(ctx context.Context, clubID, tournamentID string) (map[string][]models.PlayerMatchDetail, error) {
	teamDocs, err := s.store.Query(ctx, docstore.TeamsCollection(clubID, tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teams, err := decodeTeams(teamDocs)
	if err != nil {
		return nil, err
	}
	teamsByID := make(map[string]*models.Team, len(teams))
	for _, team := range teams {
		teamsByID[team.ID] = team
	}

	matchDocs, err := s.store.Query(ctx, docstore.MatchesCollection(clubID, tournamentID))
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	details := make(map[string][]models.PlayerMatchDetail)
	for _, doc := range matchDocs {
		raw, err := DecodeRawMatch(doc)
		if err != nil {
			return nil, err
		}
		normalized, err := NormalizeMatch(raw, teamsByID)
		if err != nil {
			return nil, err
		}
		if normalized.Winner == models.SideNone {
			continue
		}
		for _, playerID := range normalized.TeamA {
			details[playerID] = append(details[playerID], models.PlayerMatchDetail{
				NormalizedMatch: *normalized,
				PlayerTeam:      models.SideA,
				Won:             normalized.Winner == models.SideA,
			})
		}
		for _, playerID := range normalized.TeamB {
			details[playerID] = append(details[playerID], models.PlayerMatchDetail{
				NormalizedMatch: *normalized,
				PlayerTeam:      models.SideB,
				Won:             normalized.Winner == models.SideB,
			})
		}
	}
	for _, list := range details {
		sort.SliceStable(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	}
	return details, nil
}

// collectPlayerPoints flattens draft totals into per-player deltas.
func collectPlayerPoints(totals []models.TeamTotal) map[string]float64 {
	points := make(map[string]float64)
	for _, row := range totals {
		for _, split := range row.Split {
			points[split.PlayerID] += split.Points
		}
	}
	return points
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readLeaderboard(tx docstore.Tx, clubID, playerID string) (*models.LeaderboardEntry, error) {
	doc, err := tx.Get(docstore.LeaderboardEntryPath(clubID, playerID))
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		return &models.LeaderboardEntry{PlayerID: playerID}, nil
	}
	if err != nil {
		return nil, err
	}
	entry := &models.LeaderboardEntry{}
	if err := doc.Decode(entry); err != nil {
		return nil, err
	}
	if entry.PlayerID == "" {
		entry.PlayerID = playerID
	}
	return entry, nil
}
