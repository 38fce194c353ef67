// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	if dbType == TypeSQLite {
		url = withSQLitePragmas(url)
	}

	conn, err := sql.Open(dbType, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if dbType == TypeSQLite {
		// SQLite allows one writer; a single connection keeps
		// transactions from failing with SQLITE_BUSY.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}

	return conn, nil
}

// withSQLitePragmas turns on foreign keys for every pooled connection.
func withSQLitePragmas(url string) string {
	if strings.Contains(url, "_pragma=foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema sticks to types and defaults understood by both SQLite and
// PostgreSQL. Candidate lists and rankings are JSON arrays.
const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    creator_hash TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    voting_strategy TEXT NOT NULL DEFAULT 'instant-runoff',
    number_of_winners INTEGER NOT NULL DEFAULT 1,
    anonymous BOOLEAN NOT NULL DEFAULT FALSE,
    update_ballot BOOLEAN NOT NULL DEFAULT TRUE,
    allow_ties BOOLEAN NOT NULL DEFAULT TRUE,
    candidates TEXT NOT NULL,
    winning_candidates TEXT,
    tied BOOLEAN NOT NULL DEFAULT FALSE,
    tied_candidates TEXT,
    number_of_rounds INTEGER,
    summary TEXT,
    computed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_election_creator ON election(creator_hash);

-- Ballots
CREATE TABLE IF NOT EXISTS ballot (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    voter_hash TEXT NOT NULL,
    ranking TEXT NOT NULL,
    cast_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (election_id, voter_hash)
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_id ON ballot(election_id);
`
