// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/middleware"
	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
)

type BallotHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewBallotHandler(st *store.Store, cfg cliparse.Config) *BallotHandler {
	return &BallotHandler{store: st, cfg: cfg}
}

// CastBallot handles POST /elections/{id}/ballots
func (h *BallotHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.cast(w, r, req.Ballot)
}

// CastBallotFromPath handles GET /vote/{id}/{ballot...}
// Preferences are the path segments, most preferred first.
func (h *BallotHandler) CastBallotFromPath(w http.ResponseWriter, r *http.Request) {
	h.cast(w, r, splitPath(r.PathValue("ballot")))
}

func (h *BallotHandler) cast(w http.ResponseWriter, r *http.Request, ranking []string) {
	if len(ranking) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "ballot must rank at least one candidate")
		return
	}

	id := r.PathValue("id")
	e, err := h.store.CastBallot(r.Context(), id, requesterHash(r, h.cfg), ranking)
	if err != nil {
		writeError(w, r, err, "Failed to cast ballot")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "Ballot cast", e.Result)
}

// RemoveBallot handles DELETE /elections/{id}/ballots
// Removes the caller's own ballot.
func (h *BallotHandler) RemoveBallot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	e, err := h.store.RemoveBallot(r.Context(), id, requesterHash(r, h.cfg))
	if err != nil {
		writeError(w, r, err, "Failed to remove ballot")
		return
	}

	middleware.SuccessResponse(w, http.StatusOK, "Ballot removed", e.Result)
}
