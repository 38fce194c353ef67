// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aditeyabaral/ranked-choice-voting-api/models"
)

var (
	ErrNotFound      = errors.New("election not found")
	ErrConflict      = errors.New("election ID already exists")
	ErrNotStarted    = errors.New("election has not started yet")
	ErrEnded         = errors.New("election has ended")
	ErrAlreadyVoted  = errors.New("voter has already voted and ballots cannot be updated")
	ErrBallotsLocked = errors.New("ballots cannot be changed in this election")
	ErrNotVoted      = errors.New("voter has not voted")
)

// Store persists elections and ballots and keeps each election's result
// in step with its ballots.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time

	// election ID -> *sync.Mutex; serializes ballot changes and
	// recomputation for one election.
	locks sync.Map
}

func New(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger, now: time.Now}
}

// WithClock replaces the clock used for voting window checks
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) lock(electionID string) func() {
	v, _ := s.locks.LoadOrStore(electionID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// withElection runs fn inside a transaction holding the election's lock.
func (s *Store) withElection(ctx context.Context, electionID string, fn func(tx *sql.Tx, e *models.Election) error) error {
	unlock := s.lock(electionID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e, err := getElection(ctx, tx, electionID)
	if err != nil {
		return err
	}
	if err := fn(tx, &e); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation recognizes duplicate key errors from both drivers
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func marshalNames(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalNames(raw string) ([]string, error) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	return names, nil
}
