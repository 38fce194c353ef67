// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tabulate implements ranked-choice election tabulation.

# Entry Point

Tabulate validates raw input, selects a strategy and runs the count:

	res, err := tabulate.Tabulate(tabulate.Input{
		Candidates:      []string{"A", "B", "C"},
		Ballots:         [][]string{{"A", "B"}, {"C", "A"}},
		VotingStrategy:  tabulate.InstantRunoff,
		NumberOfWinners: 1,
		AllowTies:       true,
	})

# Strategies

  - instant-runoff: one seat, majority of active ballots
  - preferential-block: several seats, majority of active ballots per round
  - single-transferable: several seats, Droop quota fixed at round 1;
    quota ballots are retired when they elect someone and the surplus
    moves on at full value

# Rounds

Every round counts first preferences among the remaining candidates, then
either stops, elects the candidates at or above the quota, or eliminates
every candidate sharing the lowest count. A round where all remaining
candidates share one count is a full tie: with AllowTies it ends the count
(Result.Tied), otherwise ResolveTie elects one candidate by Borda score.

# Errors

	ErrValidation      (*ValidationError)
	ErrUnknownStrategy (*UnknownStrategyError)
	ErrTieUnresolved   (*TieUnresolvedError, from Result.TieError)

Tabulation is pure and synchronous. Inputs are copied on entry; callers
serialize tabulations of the same election.
*/
package tabulate
