// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Defaults applied to new elections
const (
	DefaultVotingStrategy  = "instant-runoff"
	DefaultNumberOfWinners = 1
)

// Request types

type CreateElectionRequest struct {
	ID              string     `json:"_id,omitempty"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	VotingStrategy  string     `json:"voting_strategy"`
	NumberOfWinners *int       `json:"number_of_winners,omitempty"`
	Anonymous       *bool      `json:"anonymous,omitempty"`
	UpdateBallot    *bool      `json:"update_ballot,omitempty"`
	AllowTies       *bool      `json:"allow_ties,omitempty"`
	Candidates      []string   `json:"candidates"`
}

// Only fields present in the JSON body are applied.
type UpdateElectionRequest struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	Anonymous       *bool      `json:"anonymous,omitempty"`
	UpdateBallot    *bool      `json:"update_ballot,omitempty"`
	AllowTies       *bool      `json:"allow_ties,omitempty"`
	Candidates      []string   `json:"candidates,omitempty"`
	VotingStrategy  *string    `json:"voting_strategy,omitempty"`
	NumberOfWinners *int       `json:"number_of_winners,omitempty"`
}

// ResetsResults reports whether the update invalidates cast ballots.
func (r UpdateElectionRequest) ResetsResults() bool {
	return r.Candidates != nil || r.VotingStrategy != nil || r.NumberOfWinners != nil
}

type CastBallotRequest struct {
	Ballot []string `json:"ballot"`
}

// Response types

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type CreateElectionResponse struct {
	Election Election `json:"election"`
	AdminKey string   `json:"admin_key"`
	URL      string   `json:"url"`
}

type ElectionView struct {
	Election
	Open    bool                `json:"open"`
	Ballots map[string][]string `json:"ballots,omitempty"`
	// Human readable time until the election closes, empty when open-ended.
	ClosesIn string `json:"closes_in,omitempty"`
}

type ResultsResponse struct {
	ElectionID  string  `json:"election_id"`
	BallotCount int     `json:"ballot_count"`
	Result      *Result `json:"result"`
}

// Domain types

type Election struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	CreatorHash     string     `json:"-"` // Never expose in JSON
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	VotingStrategy  string     `json:"voting_strategy"`
	NumberOfWinners int        `json:"number_of_winners"`
	Anonymous       bool       `json:"anonymous"`
	UpdateBallot    bool       `json:"update_ballot"`
	AllowTies       bool       `json:"allow_ties"`
	Candidates      []string   `json:"candidates"`
	Result          *Result    `json:"result,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// IsOpen reports whether ballots may be cast or removed at t.
func (e Election) IsOpen(t time.Time) bool {
	if t.Before(e.StartTime) {
		return false
	}
	return e.EndTime == nil || !t.After(*e.EndTime)
}

// BallotRecord is one voter's stored ranking.
type BallotRecord struct {
	ElectionID string    `json:"election_id"`
	VoterHash  string    `json:"voter"`
	Ranking    []string  `json:"ranking"`
	CastAt     time.Time `json:"cast_at"`
}

// Result is the persisted outcome of the latest tabulation.
type Result struct {
	WinningCandidates []string  `json:"winning_candidates"`
	Tied              bool      `json:"tied"`
	TiedCandidates    []string  `json:"tied_candidates,omitempty"`
	NumberOfRounds    int       `json:"number_of_rounds"`
	Summary           string    `json:"summary"`
	ComputedAt        time.Time `json:"computed_at"`
}
