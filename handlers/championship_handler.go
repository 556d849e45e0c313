package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/parischit85-sketch/play-sport-pro-sub002/live"
	"github.com/parischit85-sketch/play-sport-pro-sub002/middleware"
	"github.com/parischit85-sketch/play-sport-pro-sub002/services"
)

// ChampionshipHandler exposes the points flow: draft preview, apply,
// revert, audit export, plus the club leaderboard and player history
// reads.
type ChampionshipHandler struct {
	pointsService      services.PointsService
	applyService       services.ApplyService
	leaderboardService services.LeaderboardService
	exporter           services.SnapshotExporter
	authService        services.AuthService
	hub                *live.Hub
}

func NewChampionshipHandler(
	pointsService services.PointsService,
	applyService services.ApplyService,
	leaderboardService services.LeaderboardService,
	exporter services.SnapshotExporter,
	authService services.AuthService,
	hub *live.Hub,
) *ChampionshipHandler {
	return &ChampionshipHandler{
		pointsService:      pointsService,
		applyService:       applyService,
		leaderboardService: leaderboardService,
		exporter:           exporter,
		authService:        authService,
		hub:                hub,
	}
}

func (h *ChampionshipHandler) PreviewPoints(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	if !h.requireAdmin(w, r, clubID) {
		return
	}

	draft, err := h.pointsService.ComputeTournamentChampionshipPoints(r.Context(), clubID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"draft": draft}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) Apply(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	if !h.requireAdmin(w, r, clubID) {
		return
	}

	// The body is optional: it only carries the tournament's match date
	// for the temporal ordering pre-check.
	var input struct {
		MatchDate *time.Time `json:"matchDate,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := readJSON(w, r, &input); err != nil {
			badRequestResponse(w, r, err)
			return
		}
	}

	opts := services.ApplyOptions{}
	if input.MatchDate != nil {
		opts.MatchDate = *input.MatchDate
	}

	result, err := h.applyService.Apply(r.Context(), clubID, tournamentID, opts)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if result.Success && !result.AlreadyApplied && h.hub != nil {
		h.hub.NotifyClub(clubID, live.EventChampionshipApplied, jsonResponse{
			"tournamentId": tournamentID,
			"totals":       result.Totals,
		})
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) Revert(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	if !h.requireAdmin(w, r, clubID) {
		return
	}

	result, err := h.applyService.Revert(r.Context(), clubID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if result.Success && !result.AlreadyReverted && h.hub != nil {
		h.hub.NotifyClub(clubID, live.EventChampionshipReverted, jsonResponse{
			"tournamentId": tournamentID,
		})
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	if err := writeJSON(w, status, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) ExportAudit(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	if !h.requireAdmin(w, r, clubID) {
		return
	}

	if h.exporter == nil {
		errorResponse(w, r, http.StatusServiceUnavailable, "snapshot export is not configured")
		return
	}

	url, err := h.exporter.ExportAudit(r.Context(), clubID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"url": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")

	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), clubID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	playerID := chi.URLParam(r, "playerID")

	entries, err := h.leaderboardService.GetPlayerHistory(r.Context(), clubID, playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ChampionshipHandler) requireAdmin(w http.ResponseWriter, r *http.Request, clubID string) bool {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return false
	}
	if decision := h.authService.CanViewAdminFeatures(r.Context(), userID, clubID); !decision.Authorized {
		forbiddenResponse(w, r, decision.Reason)
		return false
	}
	return true
}
