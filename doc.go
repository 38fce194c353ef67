// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ranked-choice voting API server.

Elections rank candidates; after every ballot change the stored ballots are
tabulated with the election's strategy (instant-runoff, preferential-block
or single-transferable) and the result is saved alongside the election.

# Starting the Server

The server requires two secrets, from the environment or CLI flags:

	IP_HASH_SALT=... ADMIN_KEY_SALT=... go run .

Or with flags and a PostgreSQL database:

	go run . -p 5000 -t postgres -d "postgres://..." -ip-salt ... -admin-salt ...

Or from a .env file:

	go run . -env-file .env

# Configuration

Required settings:

  - IP_HASH_SALT (--ip-salt): Secret for hashing voter addresses
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_URL (-d): DSN (default: file:elections.db)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - LOG_LEVEL (--log-level): debug, info, warn, error (default: info)

Logs are text on a terminal and JSON otherwise.

# Architecture

  - tabulate: the ranked-choice tabulation engine
  - store: elections, ballots and result recomputation
  - handlers: HTTP request handlers (elections, ballots, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request logging, JSON envelope
  - models: Request/response and domain types
  - auth: Network identity, admin keys, election IDs
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
