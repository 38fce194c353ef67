// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aditeyabaral/ranked-choice-voting-api/models"
	"github.com/aditeyabaral/ranked-choice-voting-api/tabulate"
)

// CastBallot stores a voter's ranking, replacing an earlier one when the
// election allows updates, and recomputes the result in the same
// transaction. It returns the updated election.
func (s *Store) CastBallot(ctx context.Context, electionID, voterHash string, ranking []string) (models.Election, error) {
	var updated models.Election
	err := s.withElection(ctx, electionID, func(tx *sql.Tx, e *models.Election) error {
		if err := s.checkWindow(*e); err != nil {
			return err
		}

		var voted bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM ballot
				WHERE election_id = $1 AND voter_hash = $2
			)
		`, electionID, voterHash).Scan(&voted)
		if err != nil {
			return fmt.Errorf("failed to check ballot: %w", err)
		}
		if voted && !e.UpdateBallot {
			return ErrAlreadyVoted
		}

		normalized, err := tabulate.Normalize(e.Candidates, [][]string{ranking})
		if err != nil {
			return err
		}
		encoded, err := marshalNames(normalized[0])
		if err != nil {
			return fmt.Errorf("failed to encode ballot: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO ballot (election_id, voter_hash, ranking, cast_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (election_id, voter_hash)
			DO UPDATE SET ranking = excluded.ranking, cast_at = excluded.cast_at
		`, electionID, voterHash, encoded, s.now().UTC())
		if err != nil {
			return fmt.Errorf("failed to save ballot: %w", err)
		}

		s.logger.Info("ballot saved", "election_id", electionID, "is_update", voted)

		if err := s.recompute(ctx, tx, e); err != nil {
			return err
		}
		updated = *e
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}
	return updated, nil
}

// RemoveBallot deletes a voter's ballot and recomputes the result, or
// clears it when no ballots remain.
func (s *Store) RemoveBallot(ctx context.Context, electionID, voterHash string) (models.Election, error) {
	var updated models.Election
	err := s.withElection(ctx, electionID, func(tx *sql.Tx, e *models.Election) error {
		if !e.UpdateBallot {
			return ErrBallotsLocked
		}
		if err := s.checkWindow(*e); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `
			DELETE FROM ballot WHERE election_id = $1 AND voter_hash = $2
		`, electionID, voterHash)
		if err != nil {
			return fmt.Errorf("failed to delete ballot: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to delete ballot: %w", err)
		}
		if n == 0 {
			return ErrNotVoted
		}

		s.logger.Info("ballot removed", "election_id", electionID)

		if err := s.recompute(ctx, tx, e); err != nil {
			return err
		}
		updated = *e
		return nil
	})
	if err != nil {
		return models.Election{}, err
	}
	return updated, nil
}

// ListBallots returns an election's ballots in casting order
func (s *Store) ListBallots(ctx context.Context, electionID string) ([]models.BallotRecord, error) {
	return listBallots(ctx, s.db, electionID)
}

// CountBallots returns the number of ballots cast in an election
func (s *Store) CountBallots(ctx context.Context, electionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ballot WHERE election_id = $1
	`, electionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}

func (s *Store) checkWindow(e models.Election) error {
	now := s.now()
	if now.Before(e.StartTime) {
		return ErrNotStarted
	}
	if e.EndTime != nil && now.After(*e.EndTime) {
		return ErrEnded
	}
	return nil
}

// recompute tabulates the stored ballots and writes the result back.
// Ballot order is casting order, which single-transferable relies on when
// retiring quota ballots.
func (s *Store) recompute(ctx context.Context, tx *sql.Tx, e *models.Election) error {
	records, err := listBallots(ctx, tx, e.ID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		e.Result = nil
		return clearResult(ctx, tx, e.ID)
	}

	rankings := make([][]string, len(records))
	for i, r := range records {
		rankings[i] = r.Ranking
	}

	res, err := tabulate.Tabulate(tabulate.Input{
		Candidates:      e.Candidates,
		Ballots:         rankings,
		VotingStrategy:  e.VotingStrategy,
		NumberOfWinners: e.NumberOfWinners,
		AllowTies:       e.AllowTies,
	})
	if err != nil {
		return fmt.Errorf("failed to tabulate election %s: %w", e.ID, err)
	}

	result := &models.Result{
		WinningCandidates: res.Winners,
		Tied:              res.Tied,
		TiedCandidates:    res.TiedCandidates,
		NumberOfRounds:    res.RoundCount,
		Summary:           res.Summary,
		ComputedAt:        s.now().UTC(),
	}
	if err := saveResult(ctx, tx, e.ID, result); err != nil {
		return err
	}
	e.Result = result

	if tieErr := res.TieError(); tieErr != nil {
		s.logger.Info("election tied", "election_id", e.ID, "tie", tieErr.Error())
	} else {
		s.logger.Info("results recomputed", "election_id", e.ID,
			"winners", res.Winners, "rounds", res.RoundCount, "ballots", len(records))
	}
	return nil
}

func saveResult(ctx context.Context, q querier, electionID string, r *models.Result) error {
	winners, err := marshalNames(r.WinningCandidates)
	if err != nil {
		return fmt.Errorf("failed to encode winners: %w", err)
	}
	var tied sql.NullString
	if r.Tied {
		names, err := marshalNames(r.TiedCandidates)
		if err != nil {
			return fmt.Errorf("failed to encode tied candidates: %w", err)
		}
		tied = sql.NullString{String: names, Valid: true}
	}

	_, err = q.ExecContext(ctx, `
		UPDATE election
		SET winning_candidates = $1, tied = $2, tied_candidates = $3,
		    number_of_rounds = $4, summary = $5, computed_at = $6
		WHERE id = $7
	`, winners, r.Tied, tied, r.NumberOfRounds, r.Summary, r.ComputedAt, electionID)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

func clearResult(ctx context.Context, q querier, electionID string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE election
		SET winning_candidates = NULL, tied = FALSE, tied_candidates = NULL,
		    number_of_rounds = NULL, summary = NULL, computed_at = NULL
		WHERE id = $1
	`, electionID)
	if err != nil {
		return fmt.Errorf("failed to clear result: %w", err)
	}
	return nil
}

func listBallots(ctx context.Context, q querier, electionID string) ([]models.BallotRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT voter_hash, ranking, cast_at
		FROM ballot
		WHERE election_id = $1
		ORDER BY cast_at, voter_hash
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ballots: %w", err)
	}
	defer rows.Close()

	var records []models.BallotRecord
	for rows.Next() {
		r := models.BallotRecord{ElectionID: electionID}
		var ranking string
		if err := rows.Scan(&r.VoterHash, &ranking, &r.CastAt); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		if r.Ranking, err = unmarshalNames(ranking); err != nil {
			return nil, fmt.Errorf("failed to decode ballot: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ballots: %w", err)
	}
	return records, nil
}
