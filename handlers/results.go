// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/aditeyabaral/ranked-choice-voting-api/middleware"
	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
)

// ResultsHandler serves stored results. Results are public, so it needs no
// identity config.
type ResultsHandler struct {
	store *store.Store
}

func NewResultsHandler(st *store.Store) *ResultsHandler {
	return &ResultsHandler{store: st}
}

// GetResults handles GET /elections/{id}/results
// Results are kept current after every ballot change, so this only reads
// the stored outcome. Result is null until the first ballot is cast.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	e, err := h.store.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load results")
		return
	}

	count, err := h.store.CountBallots(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load results")
		return
	}

	message := "Results computed"
	if e.Result == nil {
		message = "No ballots cast yet"
	} else if e.Result.Tied {
		message = "Election is tied"
	}

	middleware.SuccessResponse(w, http.StatusOK, message, models.ResultsResponse{
		ElectionID:  e.ID,
		BallotCount: count,
		Result:      e.Result,
	})
}
