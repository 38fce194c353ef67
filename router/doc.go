// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ranked-choice voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Elections:

	POST   /elections               - Create election (returns admin_key)
	GET    /new/{candidates...}     - Create with defaults, e.g. /new/Pizza/Tacos/Sushi
	GET    /elections/{id}          - Election, result and (unless anonymous) ballots
	PATCH  /elections/{id}          - Update settings (creator only)
	DELETE /elections/{id}          - Remove election (creator only)

Voting:

	POST   /elections/{id}/ballots  - Cast or replace your ballot
	DELETE /elections/{id}/ballots  - Remove your ballot
	GET    /vote/{id}/{ballot...}   - Cast from the path, e.g. /vote/abc/Tacos/Pizza

Results:

	GET /elections/{id}/results

The creator is recognized by network identity or the X-Admin-Key header.

# Handler Initialization

The router builds one store.Store and shares it between handlers:

	st := store.New(db, slog.Default())
	electionHandler := handlers.NewElectionHandler(st, cfg)
	ballotHandler := handlers.NewBallotHandler(st, cfg)
	resultsHandler := handlers.NewResultsHandler(st)
*/
package router
