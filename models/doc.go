// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: candidates plus optional settings
  - UpdateElectionRequest: partial update, pointer fields mark presence
  - CastBallotRequest: ballot (ranked candidate names)

# Response Types

Every JSON response is wrapped in APIResponse:

	{"status": true, "message": "...", "data": {...}}
	{"status": false, "message": "...", "error": "..."}

Payloads:

  - CreateElectionResponse: election, admin_key, url
  - ElectionView: election, ballots (hidden for anonymous elections), closes_in
  - ResultsResponse: election_id, ballot_count, result

# Domain Types

  - Election: configuration, voting window and latest result
  - BallotRecord: one voter's ranking, keyed by hashed network identity
  - Result: winners or tied candidates, round count and summary transcript
*/
package models
