// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/testutil"
)

func castBallot(env *testEnv, id, ip string, ballot []string) *httptest.ResponseRecorder {
	req := testutil.MakeRequestFrom(ip, "POST", "/elections/"+id+"/ballots", models.CastBallotRequest{Ballot: ballot}, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	env.ballots.CastBallot(w, req)
	return w
}

func removeBallot(env *testEnv, id, ip string) *httptest.ResponseRecorder {
	req := testutil.MakeRequestFrom(ip, "DELETE", "/elections/"+id+"/ballots", nil, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	env.ballots.RemoveBallot(w, req)
	return w
}

// TestCastBallot_Runoff replays a four voter instant-runoff election where
// the first round has no majority and both trailing candidates drop out.
func TestCastBallot_Runoff(t *testing.T) {
	env := newTestEnv(t)
	id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B", "C"}, testutil.TestElectionOptions{})

	ballots := []struct {
		ip     string
		ballot []string
	}{
		{voterIP1, []string{"A", "B"}},
		{voterIP2, []string{"B", "A"}},
		{voterIP3, []string{"C", "A"}},
		{voterIP4, []string{"C", "A"}},
	}

	var w *httptest.ResponseRecorder
	for _, b := range ballots {
		w = castBallot(env, id, b.ip, b.ballot)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	var result models.Result
	testutil.DecodeData(t, w, &result)
	if !reflect.DeepEqual(result.WinningCandidates, []string{"C"}) {
		t.Errorf("Expected winner C, got %v", result.WinningCandidates)
	}
	if result.NumberOfRounds != 2 {
		t.Errorf("Expected 2 rounds, got %d", result.NumberOfRounds)
	}
	if result.Summary == "" {
		t.Error("Expected a round summary")
	}
}

func TestCastBallotFromPath(t *testing.T) {
	env := newTestEnv(t)
	id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"Pizza", "Tacos"}, testutil.TestElectionOptions{})

	req := testutil.MakeRequestFrom(voterIP1, "GET", "/vote/"+id+"/Tacos/Pizza", nil, nil)
	req.SetPathValue("id", id)
	req.SetPathValue("ballot", "Tacos/Pizza")
	w := httptest.NewRecorder()
	env.ballots.CastBallotFromPath(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	records, err := env.store.ListBallots(context.Background(), id)
	if err != nil {
		t.Fatalf("ListBallots: %v", err)
	}
	if len(records) != 1 || !reflect.DeepEqual(records[0].Ranking, []string{"Tacos", "Pizza"}) {
		t.Errorf("Expected ballot [Tacos Pizza], got %+v", records)
	}
}

func TestCastBallot_Errors(t *testing.T) {
	past := time.Now().Add(-time.Hour)

	testCases := []struct {
		name     string
		opts     testutil.TestElectionOptions
		before   []string // ballot cast first by the same voter
		ballot   []string
		expected int
	}{
		{name: "empty ballot", ballot: []string{}, expected: http.StatusBadRequest},
		{name: "unknown candidate", ballot: []string{"Z"}, expected: http.StatusBadRequest},
		{name: "duplicate preference", ballot: []string{"A", "A"}, expected: http.StatusBadRequest},
		{
			name:     "not started",
			opts:     testutil.TestElectionOptions{StartTime: time.Now().Add(time.Hour)},
			ballot:   []string{"A"},
			expected: http.StatusConflict,
		},
		{
			name:     "ended",
			opts:     testutil.TestElectionOptions{StartTime: past.Add(-time.Hour), EndTime: &past},
			ballot:   []string{"A"},
			expected: http.StatusConflict,
		},
		{
			name:     "re-vote when ballots are locked",
			opts:     testutil.TestElectionOptions{LockBallots: true},
			before:   []string{"A"},
			ballot:   []string{"B"},
			expected: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B"}, tc.opts)

			if tc.before != nil {
				testutil.AssertStatus(t, castBallot(env, id, voterIP1, tc.before), http.StatusOK)
			}

			w := castBallot(env, id, voterIP1, tc.ballot)
			testutil.AssertStatus(t, w, tc.expected)
		})
	}

	t.Run("unknown election", func(t *testing.T) {
		env := newTestEnv(t)
		testutil.AssertStatus(t, castBallot(env, "missing", voterIP1, []string{"A"}), http.StatusNotFound)
	})
}

func TestCastBallot_ReplacesOwnBallot(t *testing.T) {
	env := newTestEnv(t)
	id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B"}, testutil.TestElectionOptions{})

	testutil.AssertStatus(t, castBallot(env, id, voterIP1, []string{"A"}), http.StatusOK)
	w := castBallot(env, id, voterIP1, []string{"B"})
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.Result
	testutil.DecodeData(t, w, &result)
	if !reflect.DeepEqual(result.WinningCandidates, []string{"B"}) {
		t.Errorf("Expected replaced ballot to elect B, got %v", result.WinningCandidates)
	}
	if count, _ := env.store.CountBallots(context.Background(), id); count != 1 {
		t.Errorf("Expected 1 ballot, got %d", count)
	}
}

func TestRemoveBallot(t *testing.T) {
	env := newTestEnv(t)
	id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B"}, testutil.TestElectionOptions{})

	testutil.AssertStatus(t, castBallot(env, id, voterIP1, []string{"A"}), http.StatusOK)
	testutil.AssertStatus(t, castBallot(env, id, voterIP2, []string{"B"}), http.StatusOK)

	w := removeBallot(env, id, voterIP2)
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.Result
	testutil.DecodeData(t, w, &result)
	if !reflect.DeepEqual(result.WinningCandidates, []string{"A"}) {
		t.Errorf("Expected A to win after removal, got %v", result.WinningCandidates)
	}

	// Removing twice
	testutil.AssertStatus(t, removeBallot(env, id, voterIP2), http.StatusConflict)

	// Last ballot clears the result
	testutil.AssertStatus(t, removeBallot(env, id, voterIP1), http.StatusOK)
	stored, _ := env.store.GetElection(context.Background(), id)
	if stored.Result != nil {
		t.Errorf("Expected result cleared, got %+v", stored.Result)
	}

	t.Run("locked ballots", func(t *testing.T) {
		lockedID, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B"}, testutil.TestElectionOptions{LockBallots: true})
		testutil.AssertStatus(t, castBallot(env, lockedID, voterIP1, []string{"A"}), http.StatusOK)
		testutil.AssertStatus(t, removeBallot(env, lockedID, voterIP1), http.StatusConflict)
	})
}

// TestConcurrentBallots verifies that simultaneous ballots from different
// voters are all stored and counted
func TestConcurrentBallots(t *testing.T) {
	env := newTestEnv(t)
	id, _ := testutil.CreateTestElection(t, env.db, env.cfg, []string{"A", "B", "C"}, testutil.TestElectionOptions{})

	numVoters := 10
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			ballot := []string{"B", "A"}
			if voterIdx < 6 {
				ballot = []string{"A", "C"}
			}
			w := castBallot(env, id, fmt.Sprintf("10.0.0.%d", voterIdx+1), ballot)
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful ballots, got %d", numVoters, successCount.Load())
	}

	stored, err := env.store.GetElection(context.Background(), id)
	if err != nil {
		t.Fatalf("GetElection: %v", err)
	}
	if stored.Result == nil || !reflect.DeepEqual(stored.Result.WinningCandidates, []string{"A"}) {
		t.Errorf("Expected A to win with 6 of 10 first preferences, got %+v", stored.Result)
	}
}
