// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides network identity and admin key utilities.

# Network Identity

Voters and creators are identified by their client IP, hashed with a salt:

	voter := auth.HashIP(clientIP, cfg.IPHashSalt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Only the hash is
stored, so one voter has one ballot per election without keeping raw IPs.

# Creator Checks

Election changes are limited to the creator:

	err := auth.AuthorizeCreator(election.CreatorHash, requesterHash)

# Admin Keys

Admin keys let a creator act from another network:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same election ID and salt always produce the same key. This allows
validation without storing the key in the database.

# Election IDs

	id := auth.NewElectionID()          // random UUID
	err := auth.ValidateElectionID(id)  // for caller supplied IDs
*/
package auth
