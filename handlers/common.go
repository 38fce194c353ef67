// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aditeyabaral/ranked-choice-voting-api/auth"
	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/middleware"
	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
	"github.com/aditeyabaral/ranked-choice-voting-api/tabulate"
)

// requesterHash is the network identity of the caller
func requesterHash(r *http.Request, cfg cliparse.Config) string {
	return auth.HashIP(middleware.GetClientIP(r), cfg.IPHashSalt)
}

// authorizeCreator accepts the creator's network identity or a valid X-Admin-Key
func authorizeCreator(r *http.Request, cfg cliparse.Config, e models.Election) error {
	if key := r.Header.Get("X-Admin-Key"); key != "" {
		return auth.ValidateAdminKey(e.ID, key, cfg.AdminKeySalt)
	}
	return auth.AuthorizeCreator(e.CreatorHash, requesterHash(r, cfg))
}

// splitPath turns a wildcard path segment like "A/B/C" into names
func splitPath(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, "/") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// writeError maps domain errors to HTTP statuses. Anything unrecognized is
// logged and reported as a 500 with the fallback message.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, tabulate.ErrValidation),
		errors.Is(err, tabulate.ErrUnknownStrategy),
		errors.Is(err, auth.ErrInvalidElectionID):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
	case errors.Is(err, auth.ErrNotCreator),
		errors.Is(err, auth.ErrInvalidAdminKey):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, store.ErrConflict),
		errors.Is(err, store.ErrNotStarted),
		errors.Is(err, store.ErrEnded),
		errors.Is(err, store.ErrAlreadyVoted),
		errors.Is(err, store.ErrBallotsLocked),
		errors.Is(err, store.ErrNotVoted):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	default:
		slog.Error(fallback,
			"request_id", middleware.RequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		middleware.ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}
