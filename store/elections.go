// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aditeyabaral/ranked-choice-voting-api/models"
)

const electionColumns = `
	id, name, description, creator_hash, start_time, end_time,
	voting_strategy, number_of_winners, anonymous, update_ballot, allow_ties,
	candidates, winning_candidates, tied, tied_candidates, number_of_rounds,
	summary, computed_at, created_at`

// CreateElection inserts a new election. Returns ErrConflict if the ID is taken.
func (s *Store) CreateElection(ctx context.Context, e models.Election) error {
	candidates, err := marshalNames(e.Candidates)
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}

	var endTime *time.Time
	if e.EndTime != nil {
		t := e.EndTime.UTC()
		endTime = &t
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO election (
			id, name, description, creator_hash, start_time, end_time,
			voting_strategy, number_of_winners, anonymous, update_ballot, allow_ties,
			candidates, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, e.ID, e.Name, e.Description, e.CreatorHash, e.StartTime.UTC(), endTime,
		e.VotingStrategy, e.NumberOfWinners, e.Anonymous, e.UpdateBallot, e.AllowTies,
		candidates, e.CreatedAt.UTC())

	if isUniqueViolation(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert election: %w", err)
	}

	s.logger.Info("election stored", "election_id", e.ID, "strategy", e.VotingStrategy)
	return nil
}

// GetElection returns an election with its latest result
func (s *Store) GetElection(ctx context.Context, id string) (models.Election, error) {
	return getElection(ctx, s.db, id)
}

// ElectionExists reports whether an election with the ID is stored
func (s *Store) ElectionExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check election: %w", err)
	}
	return exists, nil
}

// DeleteElection removes an election and its ballots, and forgets its lock
func (s *Store) DeleteElection(ctx context.Context, id string) error {
	unlock := s.lock(id)
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Explicit delete keeps ballots from outliving their election on
	// connections without foreign key enforcement.
	if _, err := tx.ExecContext(ctx, `DELETE FROM ballot WHERE election_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete ballots: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM election WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.locks.Delete(id)

	s.logger.Info("election removed", "election_id", id)
	return nil
}

// UpdateElection applies update to the stored election under the election's
// lock. When update reports a reset, all ballots and the result are dropped;
// otherwise a change to allow_ties re-tabulates the kept ballots.
func (s *Store) UpdateElection(ctx context.Context, id string, update func(e *models.Election) (reset bool, err error)) (models.Election, error) {
	var updated models.Election
	err := s.withElection(ctx, id, func(tx *sql.Tx, e *models.Election) error {
		allowTies := e.AllowTies
		reset, err := update(e)
		if err != nil {
			return err
		}

		candidates, err := marshalNames(e.Candidates)
		if err != nil {
			return fmt.Errorf("failed to encode candidates: %w", err)
		}
		var endTime *time.Time
		if e.EndTime != nil {
			t := e.EndTime.UTC()
			endTime = &t
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE election
			SET name = $1, description = $2, start_time = $3, end_time = $4,
			    voting_strategy = $5, number_of_winners = $6, anonymous = $7,
			    update_ballot = $8, allow_ties = $9, candidates = $10
			WHERE id = $11
		`, e.Name, e.Description, e.StartTime.UTC(), endTime,
			e.VotingStrategy, e.NumberOfWinners, e.Anonymous,
			e.UpdateBallot, e.AllowTies, candidates, id)
		if err != nil {
			return fmt.Errorf("failed to update election: %w", err)
		}

		if reset {
			if _, err := tx.ExecContext(ctx, `DELETE FROM ballot WHERE election_id = $1`, id); err != nil {
				return fmt.Errorf("failed to delete ballots: %w", err)
			}
			if err := clearResult(ctx, tx, id); err != nil {
				return err
			}
			e.Result = nil
			s.logger.Info("election results reset", "election_id", id)
		} else if e.AllowTies != allowTies {
			// The same ballots can now tabulate to a different outcome
			if err := s.recompute(ctx, tx, e); err != nil {
				return err
			}
		}

		updated = *e
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}
	return updated, nil
}

func getElection(ctx context.Context, q querier, id string) (models.Election, error) {
	var (
		e          models.Election
		endTime    sql.NullTime
		candidates string
		winners    sql.NullString
		tied       bool
		tiedNames  sql.NullString
		rounds     sql.NullInt64
		summary    sql.NullString
		computedAt sql.NullTime
	)

	err := q.QueryRowContext(ctx, `SELECT `+electionColumns+` FROM election WHERE id = $1`, id).Scan(
		&e.ID, &e.Name, &e.Description, &e.CreatorHash, &e.StartTime, &endTime,
		&e.VotingStrategy, &e.NumberOfWinners, &e.Anonymous, &e.UpdateBallot, &e.AllowTies,
		&candidates, &winners, &tied, &tiedNames, &rounds,
		&summary, &computedAt, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Election{}, ErrNotFound
	}
	if err != nil {
		return models.Election{}, fmt.Errorf("failed to query election: %w", err)
	}

	if endTime.Valid {
		t := endTime.Time
		e.EndTime = &t
	}
	if e.Candidates, err = unmarshalNames(candidates); err != nil {
		return models.Election{}, fmt.Errorf("failed to decode candidates: %w", err)
	}

	if rounds.Valid {
		res := &models.Result{
			Tied:           tied,
			NumberOfRounds: int(rounds.Int64),
			Summary:        summary.String,
			ComputedAt:     computedAt.Time,
		}
		if res.WinningCandidates, err = unmarshalNames(winners.String); err != nil {
			return models.Election{}, fmt.Errorf("failed to decode winners: %w", err)
		}
		if tiedNames.Valid {
			if res.TiedCandidates, err = unmarshalNames(tiedNames.String); err != nil {
				return models.Election{}, fmt.Errorf("failed to decode tied candidates: %w", err)
			}
		}
		e.Result = res
	}

	return e, nil
}
