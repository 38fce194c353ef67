// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"testing"

	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
	"github.com/aditeyabaral/ranked-choice-voting-api/testutil"
)

// Client addresses used across handler tests
const (
	voterIP1 = "198.51.100.1"
	voterIP2 = "198.51.100.2"
	voterIP3 = "198.51.100.3"
	voterIP4 = "198.51.100.4"
)

type testEnv struct {
	db        *sql.DB
	cfg       cliparse.Config
	store     *store.Store
	elections *ElectionHandler
	ballots   *BallotHandler
	results   *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	cfg := testutil.GetTestConfig()
	st := store.New(db, nil)

	return &testEnv{
		db:        db,
		cfg:       cfg,
		store:     st,
		elections: NewElectionHandler(st, cfg),
		ballots:   NewBallotHandler(st, cfg),
		results:   NewResultsHandler(st),
	}
}
