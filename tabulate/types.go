// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

// Ballot is one voter's ranking, most preferred candidate first.
type Ballot []string

// ElectionConfig describes a single tabulation.
type ElectionConfig struct {
	// Candidates in canonical order. The order is used for every
	// deterministic fallback.
	Candidates      []string
	Strategy        Strategy
	NumberOfWinners int
	AllowTies       bool

	// Threshold overrides the strategy quota when non-zero.
	// Values in (0, 1) are a share of all voters, values >= 1 a vote count.
	Threshold float64
}

// Tally is one candidate's first-preference count in a round.
type Tally struct {
	Candidate string `json:"candidate"`
	Votes     int    `json:"votes"`
}

// Round records what happened in one evaluation round.
type Round struct {
	Number        int      `json:"number"`
	ActiveBallots int      `json:"active_ballots"`
	Threshold     int      `json:"threshold"`
	Tallies       []Tally  `json:"tallies"`
	Elected       []string `json:"elected,omitempty"`
	Eliminated    []string `json:"eliminated,omitempty"`
	TieBroken     bool     `json:"tie_broken,omitempty"`
}

// Result is the outcome of one tabulation. It is never modified after
// Run returns.
type Result struct {
	Winners        []string `json:"winners"`
	Tied           bool     `json:"tied"`
	TiedCandidates []string `json:"tied_candidates,omitempty"`
	RoundCount     int      `json:"round_count"`
	Rounds         []Round  `json:"rounds"`
	Summary        string   `json:"summary"`
}

// TieError returns a *TieUnresolvedError when the election stopped on a
// permitted tie, nil otherwise.
func (r Result) TieError() error {
	if !r.Tied {
		return nil
	}
	return &TieUnresolvedError{
		Round:      r.RoundCount,
		Candidates: append([]string(nil), r.TiedCandidates...),
	}
}

// Input is the call contract used by the storage layer.
type Input struct {
	Candidates      []string
	Ballots         [][]string
	VotingStrategy  string
	NumberOfWinners int
	AllowTies       bool
	Threshold       float64
}
