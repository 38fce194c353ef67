// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Open accepts "sqlite" (modernc.org/sqlite, pure Go) or "postgres"
(github.com/lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections are limited to one open connection, with foreign keys
and a busy timeout set through _pragma DSN parameters.

# Schema Creation

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: configuration, voting window and latest result
  - ballot: one ranking per voter per election

# Relationships

	election 1──* ballot

Ballots are deleted with their election (ON DELETE CASCADE).
*/
package db
