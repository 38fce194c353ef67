// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aditeyabaral/ranked-choice-voting-api/auth"
	"github.com/aditeyabaral/ranked-choice-voting-api/cliparse"
	"github.com/aditeyabaral/ranked-choice-voting-api/db"
	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/store"
)

// CreatorIP is the client address used for elections made by CreateTestElection
const CreatorIP = "203.0.113.10"

// SetupTestDB creates a fresh SQLite database with the full schema.
// The file lives in t.TempDir and is removed with it.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         cliparse.DefaultPort,
		DatabaseURL:  cliparse.DefaultDatabaseURL,
		DatabaseType: db.TypeSQLite,
		IPHashSalt:   "test-ip-salt",
		AdminKeySalt: "test-admin-salt",
	}
}

// TestElectionOptions tweaks the election made by CreateTestElection
type TestElectionOptions struct {
	Strategy        string
	NumberOfWinners int
	Anonymous       bool
	LockBallots     bool
	DisallowTies    bool
	StartTime       time.Time
	EndTime         *time.Time
}

// CreateTestElection stores an election created from CreatorIP and returns
// its ID and admin key. The election opens an hour ago unless opts say otherwise.
func CreateTestElection(t *testing.T, conn *sql.DB, cfg cliparse.Config, candidates []string, opts TestElectionOptions) (electionID, adminKey string) {
	t.Helper()

	electionID = auth.NewElectionID()
	adminKey = auth.GenerateAdminKey(electionID, cfg.AdminKeySalt)

	e := models.Election{
		ID:              electionID,
		Name:            "Test Election",
		Description:     "A test election",
		CreatorHash:     auth.HashIP(CreatorIP, cfg.IPHashSalt),
		StartTime:       opts.StartTime,
		EndTime:         opts.EndTime,
		VotingStrategy:  opts.Strategy,
		NumberOfWinners: opts.NumberOfWinners,
		Anonymous:       opts.Anonymous,
		UpdateBallot:    !opts.LockBallots,
		AllowTies:       !opts.DisallowTies,
		Candidates:      candidates,
		CreatedAt:       time.Now(),
	}
	if e.StartTime.IsZero() {
		e.StartTime = time.Now().Add(-time.Hour)
	}
	if e.VotingStrategy == "" {
		e.VotingStrategy = models.DefaultVotingStrategy
	}
	if e.NumberOfWinners == 0 {
		e.NumberOfWinners = models.DefaultNumberOfWinners
	}

	if err := store.New(conn, nil).CreateElection(context.Background(), e); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID, adminKey
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeRequestFrom creates an HTTP test request coming from the given client IP
func MakeRequestFrom(ip, method, path string, body any, headers map[string]string) *http.Request {
	req := MakeRequest(method, path, body, headers)
	req.RemoteAddr = ip + ":41000"
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// DecodeData decodes the data field of an APIResponse envelope into v
func DecodeData(t *testing.T, w *httptest.ResponseRecorder, v any) models.APIResponse {
	t.Helper()

	var envelope struct {
		models.APIResponse
		Data json.RawMessage `json:"data"`
	}
	AssertJSON(t, w, &envelope)
	if v != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, v); err != nil {
			t.Fatalf("Failed to decode response data: %v", err)
		}
	}
	return envelope.APIResponse
}
