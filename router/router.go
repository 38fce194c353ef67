// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/handlers"
	"github.com/aditeyabaral/ranked-choice-voting-api/middleware"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	st := store.New(db, slog.Default())

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(st, cfg)
	ballotHandler := handlers.NewBallotHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (update and delete are creator only)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /new/{candidates...}", middleware.WithLogging(electionHandler.QuickCreate))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("PATCH /elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(electionHandler.DeleteElection))

	// Voting (voter identity is the hashed client IP)
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.WithLogging(ballotHandler.CastBallot))
	mux.HandleFunc("DELETE /elections/{id}/ballots", middleware.WithLogging(ballotHandler.RemoveBallot))
	mux.HandleFunc("GET /vote/{id}/{ballot...}", middleware.WithLogging(ballotHandler.CastBallotFromPath))

	// Results
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ranked-choice-voting API v1"))
	})

	return mux
}
