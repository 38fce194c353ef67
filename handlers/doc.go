// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ranked-choice voting API.

# Handler Types

Each handler is a struct holding the shared store and config:

  - ElectionHandler: create, quick create, view, update and delete elections
  - BallotHandler: cast (JSON or path) and remove ballots
  - ResultsHandler: current results

	st := store.New(db, slog.Default())
	electionHandler := handlers.NewElectionHandler(st, cfg)

# Identity

Voters and creators are identified by their hashed client IP
(auth.HashIP with the IP hash salt). Creator-only operations also accept
the admin key returned on creation in the X-Admin-Key header.

# Election Settings

Creation applies defaults: instant-runoff, one winner, ballots updatable,
ties allowed, not anonymous, voting opens immediately. Strategy names are
canonicalized, so instant_runoff is stored as instant-runoff.

Changing candidates, voting_strategy or number_of_winners discards all
ballots and the result.

# Responses

Every response uses the models.APIResponse envelope. Errors map to:

	400  invalid JSON, ballot or settings; unknown strategy
	401  not the creator
	404  unknown election
	409  duplicate ID, outside the voting window, re-vote or removal not allowed
	500  anything else (logged with the request ID)
*/
package handlers
