package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/parischit85-sketch/play-sport-pro-sub002/live"
	"github.com/parischit85-sketch/play-sport-pro-sub002/middleware"
	"github.com/parischit85-sketch/play-sport-pro-sub002/services"
)

type MatchHandler struct {
	matchService services.MatchService
	authService  services.AuthService
	hub          *live.Hub
}

func NewMatchHandler(matchService services.MatchService, authService services.AuthService, hub *live.Hub) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		authService:  authService,
		hub:          hub,
	}
}

func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if decision := h.authService.CanSubmitMatchResults(r.Context(), userID, clubID); !decision.Authorized {
		forbiddenResponse(w, r, decision.Reason)
		return
	}

	var input services.RecordMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.RecordResult(r.Context(), clubID, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if h.hub != nil {
		h.hub.NotifyClub(clubID, live.EventMatchRecorded, match)
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")

	matches, err := h.matchService.ListResults(r.Context(), clubID, tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	clubID := chi.URLParam(r, "clubID")
	tournamentID := chi.URLParam(r, "tournamentID")
	matchID := chi.URLParam(r, "matchID")

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}
	if decision := h.authService.CanSubmitMatchResults(r.Context(), userID, clubID); !decision.Authorized {
		forbiddenResponse(w, r, decision.Reason)
		return
	}

	if err := h.matchService.DeleteResult(r.Context(), clubID, tournamentID, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
