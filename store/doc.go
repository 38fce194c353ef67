// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists elections and ballots.

# Elections

	st := store.New(conn, slog.Default())
	err := st.CreateElection(ctx, election)    // ErrConflict if the ID is taken
	e, err := st.GetElection(ctx, id)          // ErrNotFound
	e, err = st.UpdateElection(ctx, id, apply) // apply reports whether results reset
	err = st.DeleteElection(ctx, id)

# Ballots

Ballots are keyed by the voter's hashed network identity. Casting or
removing a ballot checks the voting window, writes the ballot, then
tabulates every stored ballot and saves the result, all in one
transaction:

	e, err := st.CastBallot(ctx, id, voterHash, []string{"A", "C"})
	e, err = st.RemoveBallot(ctx, id, voterHash)

Changes to one election are serialized by a per-election lock so that the
read-modify-write of ballots and result is atomic; different elections
proceed in parallel.

# Errors

	ErrNotFound       unknown election
	ErrConflict       duplicate election ID
	ErrNotStarted     before start_time
	ErrEnded          after end_time
	ErrAlreadyVoted   second ballot when update_ballot is false
	ErrBallotsLocked  removal when update_ballot is false
	ErrNotVoted       removal without a ballot

Invalid rankings fail with tabulate.ErrValidation.
*/
package store
