package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/parischit85-sketch/play-sport-pro-sub002/docstore"
	"github.com/parischit85-sketch/play-sport-pro-sub002/models"
	"github.com/parischit85-sketch/play-sport-pro-sub002/rating"
)

// PointsService computes championship point drafts for a tournament.
// The computation is a pure function over the fetched documents: it
// produces no side effects and is recomputed fresh on every call.
type PointsService interface {
	ComputeTournamentChampionshipPoints(ctx context.Context, clubID, tournamentID string) (*models.PointsDraft, error)
}

type pointsService struct {
	store  docstore.Store
	engine *rating.Engine
	logger *slog.Logger
}

func NewPointsService(store docstore.Store, engine *rating.Engine, logger *slog.Logger) PointsService {
	if engine == nil {
		engine = rating.NewEngine(nil)
	}
	return &pointsService{store: store, engine: engine, logger: logger}
}

func (s *pointsService) ComputeTournamentChampionshipPoints(ctx context.Context, clubID, tournamentID string) (*models.PointsDraft, error) {
	if clubID == "" {
		return nil, ErrClubIDRequired
	}
	if tournamentID == "" {
		return nil, ErrTournamentRequired
	}

	tournament, teams, matches, err := s.fetchTournamentData(ctx, clubID, tournamentID)
	if err != nil {
		return nil, err
	}

	cfg := tournament.Configuration.ChampionshipPoints.Normalized()

	// Positions are derived fresh from the completed group matches so
	// they are always consistent with the matches being scored.
	positions := make(map[string]int)
	for _, st := range ComputeGroupStandings(teams, matches) {
		positions[st.TeamID] = st.Position
	}

	teamsByID := make(map[string]*models.Team, len(teams))
	for _, team := range teams {
		teamsByID[team.ID] = team
	}

	// Deterministic scan order: by completion date, then match id.
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CompletedAt.Equal(matches[j].CompletedAt) {
			return matches[i].CompletedAt.Before(matches[j].CompletedAt)
		}
		return matches[i].MatchID < matches[j].MatchID
	})

	draft := &models.PointsDraft{
		Config: cfg,
		Totals: make([]models.TeamTotal, 0, len(teams)),
		Meta: models.DraftMeta{
			TournamentID:   tournamentID,
			TournamentName: tournament.Name,
			ComputedAt:     time.Now().UTC(),
			TeamCount:      len(teams),
			MatchCount:     len(matches),
		},
	}

	// One totals row per registered team, even with zero completed
	// matches.
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	for _, team := range teams {
		row := s.computeTeamRow(team, teamsByID, matches, positions, cfg)
		if len(team.Players) == 0 {
			draft.Meta.EmptyRosterTeams = append(draft.Meta.EmptyRosterTeams, team.ID)
			if s.logger != nil {
				s.logger.WarnContext(ctx, "team has empty roster, skipping player split",
					slog.String("club_id", clubID),
					slog.String("tournament_id", tournamentID),
					slog.String("team_id", team.ID))
			}
		}
		draft.Totals = append(draft.Totals, row)
	}

	return draft, nil
}

func (s *pointsService) computeTeamRow(
	team *models.Team,
	teamsByID map[string]*models.Team,
	matches []*models.MatchResult,
	positions map[string]int,
	cfg models.ChampionshipPointsConfig,
) models.TeamTotal {
	row := models.TeamTotal{
		TeamID:   team.ID,
		TeamName: team.Name,
		Details: models.PointsDetails{
			RPAContributions:      []models.RPAContribution{},
			KnockoutContributions: []models.KnockoutContribution{},
		},
	}

	for _, match := range matches {
		if !match.Involves(team.ID) || !match.Completed() {
			continue
		}
		won := match.WonBy(team.ID)

		if match.IsKnockout {
			label := ""
			if match.Round != nil {
				label = *match.Round
			}
			key := NormalizeRound(label)
			contribution := models.KnockoutContribution{
				MatchID:    match.MatchID,
				RoundLabel: label,
				RoundKey:   string(key),
				OpponentID: match.OpponentOf(team.ID),
				Date:       match.CompletedAt,
				IsLoss:     !won,
			}
			// A loss stays listed for display but pays nothing. A win
			// pays the configured bonus for the round, including wins
			// by BYE.
			if won {
				contribution.Points = cfg.KnockoutProgressPoints[string(key)]
				row.Knockout += contribution.Points
			}
			row.Details.KnockoutContributions = append(row.Details.KnockoutContributions, contribution)
		}

		// BYE matches never enter RPA accumulation: there was no
		// opponent to rate against.
		if match.IsBye {
			continue
		}

		delta := s.engine.ComputeDelta(
			s.ratingSum(match, models.SideA, teamsByID),
			s.ratingSum(match, models.SideB, teamsByID),
			match.Sets,
		)
		signed := float64(delta.Points) * cfg.RPAMultiplier
		if !won {
			signed = -signed
		}
		contribution := models.RPAContribution{
			MatchID:    match.MatchID,
			OpponentID: match.OpponentOf(team.ID),
			Date:       match.CompletedAt,
			Points:     signed,
			IsLoss:     !won,
			IsKnockout: match.IsKnockout,
			Counted:    signed >= 0,
		}
		if match.Round != nil {
			contribution.Round = *match.Round
		}
		// Negative values are shown in the breakdown but never summed
		// into the creditable total.
		if contribution.Counted {
			row.RPA += contribution.Points
		}
		row.Details.RPAContributions = append(row.Details.RPAContributions, contribution)
	}

	if position, ok := positions[team.ID]; ok {
		row.Details.GroupPosition = position
		row.GroupPlacement = cfg.GroupPlacementPoints[position]
	}

	sortContributions(&row.Details)

	row.RPA = round1(row.RPA)
	row.Total = round1(row.RPA + row.GroupPlacement + row.Knockout)
	row.Split = splitEqually(row.Total, team.Players)
	return row
}

// ratingSum prefers the rating snapshot stored on the match document;
// absent a snapshot it falls back to the team's current roster sum.
func (s *pointsService) ratingSum(match *models.MatchResult, side models.Side, teamsByID map[string]*models.Team) float64 {
	teamID := match.TeamAID
	snapshot := match.TeamARatingSnapshot
	if side == models.SideB {
		teamID = match.TeamBID
		snapshot = match.TeamBRatingSnapshot
	}
	if snapshot != nil {
		return *snapshot
	}
	if team, ok := teamsByID[teamID]; ok {
		return team.RatingSum()
	}
	return 0
}

// sortContributions applies the contract ordering: group RPA rows by
// date ascending, then knockout RPA rows by round order then date, and
// the knockout bonus rows likewise by round order then date.
func sortContributions(details *models.PointsDetails) {
	sort.SliceStable(details.RPAContributions, func(i, j int) bool {
		a, b := details.RPAContributions[i], details.RPAContributions[j]
		if a.IsKnockout != b.IsKnockout {
			return !a.IsKnockout
		}
		if a.IsKnockout {
			oa, ob := RoundOrder(NormalizeRound(a.Round)), RoundOrder(NormalizeRound(b.Round))
			if oa != ob {
				return oa < ob
			}
		}
		return a.Date.Before(b.Date)
	})
	sort.SliceStable(details.KnockoutContributions, func(i, j int) bool {
		a, b := details.KnockoutContributions[i], details.KnockoutContributions[j]
		oa, ob := RoundOrder(RoundKey(a.RoundKey)), RoundOrder(RoundKey(b.RoundKey))
		if oa != ob {
			return oa < ob
		}
		return a.Date.Before(b.Date)
	})
}

// splitEqually divides a team total across the roster, one decimal per
// player. An empty roster yields an empty split instead of a division
// by zero.
func splitEqually(total float64, players []models.Player) []models.PlayerSplit {
	split := make([]models.PlayerSplit, 0, len(players))
	if len(players) == 0 {
		return split
	}
	perPlayer := round1(total / float64(len(players)))
	for _, p := range players {
		split = append(split, models.PlayerSplit{PlayerID: p.PlayerID, Points: perPlayer})
	}
	return split
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func (s *pointsService) fetchTournamentData(ctx context.Context, clubID, tournamentID string) (*models.Tournament, []*models.Team, []*models.MatchResult, error) {
	var (
		tournament models.Tournament
		teams      []*models.Team
		matches    []*models.MatchResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doc, err := s.store.Get(gctx, docstore.TournamentPath(clubID, tournamentID))
		if err != nil {
			if errors.Is(err, docstore.ErrDocumentNotFound) {
				return fmt.Errorf("%w: %s", ErrTournamentNotFound, tournamentID)
			}
			return err
		}
		return doc.Decode(&tournament)
	})
	g.Go(func() error {
		docs, err := s.store.Query(gctx, docstore.TeamsCollection(clubID, tournamentID))
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		teams, err = decodeTeams(docs)
		return err
	})
	g.Go(func() error {
		docs, err := s.store.Query(gctx, docstore.MatchesCollection(clubID, tournamentID))
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		for _, doc := range docs {
			raw, err := DecodeRawMatch(doc)
			if err != nil {
				return err
			}
			// The points engine only scores structured tournament
			// matches; legacy booking rows are history-only.
			if raw.Tournament != nil {
				matches = append(matches, raw.Tournament)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	if tournament.ID == "" {
		tournament.ID = tournamentID
	}
	return &tournament, teams, matches, nil
}
