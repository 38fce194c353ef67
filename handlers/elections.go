// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/aditeyabaral/ranked-choice-voting-api/auth"
	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/middleware"
	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
	"github.com/aditeyabaral/ranked-choice-voting-api/tabulate"
)

var errEndBeforeStart = &tabulate.ValidationError{Msg: "end_time must be after start_time"}

type ElectionHandler struct {
	store *store.Store
	cfg   cliparse.Config
	now   func() time.Time
}

func NewElectionHandler(st *store.Store, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{store: st, cfg: cfg, now: time.Now}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.create(w, r, req)
}

// QuickCreate handles GET /new/{candidates...}
// Every setting takes its default; candidates are the path segments.
func (h *ElectionHandler) QuickCreate(w http.ResponseWriter, r *http.Request) {
	h.create(w, r, models.CreateElectionRequest{
		Candidates: splitPath(r.PathValue("candidates")),
	})
}

func (h *ElectionHandler) create(w http.ResponseWriter, r *http.Request, req models.CreateElectionRequest) {
	e, err := h.newElection(r, req)
	if err != nil {
		writeError(w, r, err, "Failed to create election")
		return
	}

	if err := h.store.CreateElection(r.Context(), e); err != nil {
		writeError(w, r, err, "Failed to create election")
		return
	}

	slog.Info("election created",
		"election_id", e.ID,
		"strategy", e.VotingStrategy,
		"candidates", len(e.Candidates),
	)

	middleware.SuccessResponse(w, http.StatusCreated, "Election created", models.CreateElectionResponse{
		Election: e,
		AdminKey: auth.GenerateAdminKey(e.ID, h.cfg.AdminKeySalt),
		URL:      electionURL(r, e.ID),
	})
}

// newElection applies defaults and validates a create request
func (h *ElectionHandler) newElection(r *http.Request, req models.CreateElectionRequest) (models.Election, error) {
	now := h.now().UTC()

	id := req.ID
	if id == "" {
		id = auth.NewElectionID()
	} else if err := auth.ValidateElectionID(id); err != nil {
		return models.Election{}, err
	}

	e := models.Election{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		CreatorHash:     requesterHash(r, h.cfg),
		StartTime:       now,
		EndTime:         req.EndTime,
		VotingStrategy:  req.VotingStrategy,
		NumberOfWinners: models.DefaultNumberOfWinners,
		UpdateBallot:    true,
		AllowTies:       true,
		Candidates:      req.Candidates,
		CreatedAt:       now,
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if e.VotingStrategy == "" {
		e.VotingStrategy = models.DefaultVotingStrategy
	}
	if req.NumberOfWinners != nil {
		e.NumberOfWinners = *req.NumberOfWinners
	}
	if req.Anonymous != nil {
		e.Anonymous = *req.Anonymous
	}
	if req.UpdateBallot != nil {
		e.UpdateBallot = *req.UpdateBallot
	}
	if req.AllowTies != nil {
		e.AllowTies = *req.AllowTies
	}

	if err := validateElection(&e); err != nil {
		return models.Election{}, err
	}
	return e, nil
}

// validateElection checks the settings and canonicalizes the strategy name
func validateElection(e *models.Election) error {
	strategy, err := tabulate.Select(e.VotingStrategy)
	if err != nil {
		return err
	}
	if err := tabulate.ValidateConfig(e.Candidates, strategy, e.NumberOfWinners); err != nil {
		return err
	}
	if e.EndTime != nil && !e.EndTime.After(e.StartTime) {
		return errEndBeforeStart
	}
	e.VotingStrategy = strategy.Name
	return nil
}

// GetElection handles GET /elections/{id}
// Ballots of anonymous elections are shown to the creator only.
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	e, err := h.store.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to load election")
		return
	}

	now := h.now()
	view := models.ElectionView{
		Election: e,
		Open:     e.IsOpen(now),
	}
	if e.EndTime != nil && view.Open {
		view.ClosesIn = humanize.RelTime(*e.EndTime, now, "ago", "from now")
	}

	if !e.Anonymous || authorizeCreator(r, h.cfg, e) == nil {
		records, err := h.store.ListBallots(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "Failed to load ballots")
			return
		}
		view.Ballots = make(map[string][]string, len(records))
		for _, rec := range records {
			view.Ballots[rec.VoterHash] = rec.Ranking
		}
	}

	middleware.SuccessResponse(w, http.StatusOK, "Election found", view)
}

// UpdateElection handles PATCH /elections/{id}
// Changing candidates, strategy or number of winners discards all ballots.
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.store.UpdateElection(r.Context(), id, func(e *models.Election) (bool, error) {
		if err := authorizeCreator(r, h.cfg, *e); err != nil {
			return false, err
		}
		applyUpdate(e, req)
		if err := validateElection(e); err != nil {
			return false, err
		}
		return req.ResetsResults(), nil
	})
	if err != nil {
		writeError(w, r, err, "Failed to update election")
		return
	}

	slog.Info("election updated", "election_id", id, "reset", req.ResetsResults())
	middleware.SuccessResponse(w, http.StatusOK, "Election updated", e)
}

func applyUpdate(e *models.Election, req models.UpdateElectionRequest) {
	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = req.EndTime
	}
	if req.Anonymous != nil {
		e.Anonymous = *req.Anonymous
	}
	if req.UpdateBallot != nil {
		e.UpdateBallot = *req.UpdateBallot
	}
	if req.AllowTies != nil {
		e.AllowTies = *req.AllowTies
	}
	if req.Candidates != nil {
		e.Candidates = req.Candidates
	}
	if req.VotingStrategy != nil {
		e.VotingStrategy = *req.VotingStrategy
	}
	if req.NumberOfWinners != nil {
		e.NumberOfWinners = *req.NumberOfWinners
	}
}

// DeleteElection handles DELETE /elections/{id}
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	e, err := h.store.GetElection(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Failed to delete election")
		return
	}
	if err := authorizeCreator(r, h.cfg, e); err != nil {
		writeError(w, r, err, "Failed to delete election")
		return
	}

	if err := h.store.DeleteElection(r.Context(), id); err != nil {
		// Deleted by a concurrent request is still a success for the caller
		if !errors.Is(err, store.ErrNotFound) {
			writeError(w, r, err, "Failed to delete election")
			return
		}
	}

	slog.Info("election deleted", "election_id", id)
	middleware.SuccessResponse(w, http.StatusOK, "Election deleted", nil)
}

func electionURL(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/elections/" + id
}
