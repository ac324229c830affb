package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dekritpn/kawio/internal/entity"
	"github.com/dekritpn/kawio/internal/othello"
)

type loginRequest struct {
	Name string `json:"name"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type newMatchRequest struct {
	WithBot bool `json:"with_bot"`
}

type moveRequest struct {
	Move string `json:"move"`
}

type matchResponse struct {
	MatchID string            `json:"match_id"`
	Status  string            `json:"status"`
	Color   string            `json:"color,omitempty"`
	State   *othello.Snapshot `json:"state,omitempty"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	respondJSON(that.logger, w, http.StatusOK, map[string]string{"message": "pong"})
}

// handleLogin trades a player name for a bearer token. Names are free-form
// identities, uniqueness is on the caller.
func (that *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(that.logger, w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondJSON(that.logger, w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	token, err := that.auth.GenerateToken(name)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	respondJSON(that.logger, w, http.StatusOK, loginResponse{Token: token})
}

func (that *Server) handleNewMatch(w http.ResponseWriter, r *http.Request) {
	var req newMatchRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondJSON(that.logger, w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}
	}

	playerID := playerFromContext(r.Context())

	match, err := that.coordinator.CreateMatch(r.Context(), playerID, req.WithBot)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	respondJSON(that.logger, w, http.StatusCreated, that.matchView(match, playerID))
}

func (that *Server) handleJoinMatch(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())
	matchID := chi.URLParam(r, "id")

	match, err := that.coordinator.JoinMatch(r.Context(), matchID, playerID)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	respondJSON(that.logger, w, http.StatusOK, that.matchView(match, playerID))
}

// handleMatchmaking either parks the player in the queue or returns the
// match they were paired into.
func (that *Server) handleMatchmaking(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())

	match, err := that.coordinator.JoinMatchmaking(r.Context(), playerID)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	if match == nil {
		respondJSON(that.logger, w, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}

	respondJSON(that.logger, w, http.StatusOK, that.matchView(match, playerID))
}

func (that *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(that.logger, w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	playerID := playerFromContext(r.Context())
	matchID := chi.URLParam(r, "id")

	snapshot, err := that.coordinator.SubmitMove(r.Context(), matchID, playerID, req.Move)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	respondJSON(that.logger, w, http.StatusOK, snapshot)
}

func (that *Server) handlePass(w http.ResponseWriter, r *http.Request) {
	playerID := playerFromContext(r.Context())
	matchID := chi.URLParam(r, "id")

	snapshot, err := that.coordinator.SubmitPass(r.Context(), matchID, playerID)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	respondJSON(that.logger, w, http.StatusOK, snapshot)
}

func (that *Server) handleState(w http.ResponseWriter, r *http.Request) {
	matchID := chi.URLParam(r, "id")

	match, err := that.coordinator.Match(r.Context(), matchID)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	snapshot, err := that.coordinator.State(r.Context(), matchID)
	if err != nil {
		respondError(that.logger, w, err)
		return
	}

	view := that.matchView(match, "")
	view.State = snapshot

	respondJSON(that.logger, w, http.StatusOK, view)
}

func (that *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	stats, err := that.stats.Leaderboard(r.Context())
	if err != nil {
		respondError(that.logger, w, fmt.Errorf("failed to load leaderboard: %w", err))
		return
	}

	if stats == nil {
		stats = []*entity.PlayerStats{}
	}

	respondJSON(that.logger, w, http.StatusOK, stats)
}

func (that *Server) matchView(match *entity.Match, playerID string) *matchResponse {
	view := &matchResponse{
		MatchID: match.ID,
		Status:  match.Status,
	}

	if playerID != "" {
		if color, err := match.ColorOf(playerID); err == nil {
			view.Color = string(color)
		}
	}

	return view
}
