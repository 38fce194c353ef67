// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: SQLite file or PostgreSQL connection string (default: file:elections.db)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - IPHashSalt: Secret mixed into hashed voter IPs (required)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - LogLevel: slog level (default: info)

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--ip-salt     Voter IP hash salt
	--admin-salt  Admin key salt
	--log-level   debug, info, warn or error
	--env-file    Load variables from a .env file first

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	IP_HASH_SALT   → --ip-salt
	ADMIN_KEY_SALT → --admin-salt
	LOG_LEVEL      → --log-level

CLI flags take precedence over environment variables, and variables already
set in the environment take precedence over the env file.

# Validation

ParseFlags returns an error if:

  - IP_HASH_SALT or ADMIN_KEY_SALT is missing
  - PORT is not a number in 1-65535
  - the database type is not sqlite or postgres
  - the log level is unknown
*/
package cliparse
