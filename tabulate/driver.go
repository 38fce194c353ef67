// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"cmp"
	"math"
	"slices"
)

// Tabulate validates raw input and runs the selected strategy.
func Tabulate(in Input) (Result, error) {
	strategy, err := Select(in.VotingStrategy)
	if err != nil {
		return Result{}, err
	}
	if err := ValidateConfig(in.Candidates, strategy, in.NumberOfWinners); err != nil {
		return Result{}, err
	}
	ballots, err := Normalize(in.Candidates, in.Ballots)
	if err != nil {
		return Result{}, err
	}
	return Run(ElectionConfig{
		Candidates:      in.Candidates,
		Strategy:        strategy,
		NumberOfWinners: in.NumberOfWinners,
		AllowTies:       in.AllowTies,
		Threshold:       in.Threshold,
	}, ballots)
}

// Run evaluates rounds until every seat is filled or a permitted tie stops
// the count. Each round elects or eliminates at least one candidate, so the
// loop ends after at most len(cfg.Candidates) rounds. Neither cfg nor
// ballots are modified.
func Run(cfg ElectionConfig, ballots []Ballot) (Result, error) {
	if cfg.Strategy.quota == nil {
		return Result{}, invalidf("voting strategy is required")
	}
	if err := ValidateConfig(cfg.Candidates, cfg.Strategy, cfg.NumberOfWinners); err != nil {
		return Result{}, err
	}
	if len(ballots) == 0 {
		return Result{}, invalidf("no ballots have been cast")
	}
	if cfg.Threshold < 0 || math.IsNaN(cfg.Threshold) || math.IsInf(cfg.Threshold, 0) {
		return Result{}, invalidf("threshold override must be a positive number")
	}

	state := newRoundState(cfg.Candidates, ballots)
	seats := cfg.NumberOfWinners

	fixed := 0
	switch {
	case cfg.Threshold > 0:
		fixed = overrideThreshold(cfg.Threshold, len(ballots))
	case cfg.Strategy.fixedQuota:
		fixed = cfg.Strategy.Quota(state.activeBallots(), seats)
	}

	result := Result{Winners: []string{}}
	elect := func(round *Round, counts map[string]int, threshold int, names ...string) {
		for _, name := range names {
			if cfg.Strategy.retireBallots {
				state.retire(name, min(counts[name], threshold))
			}
			round.Elected = append(round.Elected, name)
			result.Winners = append(result.Winners, name)
		}
		state.remove(names...)
	}

	for {
		counts := CountFirstPreferences(state.remaining, state.ballots)
		active := state.activeBallots()
		threshold := fixed
		if threshold == 0 {
			threshold = cfg.Strategy.Quota(active, seats)
		}

		round := Round{
			Number:        state.number,
			ActiveBallots: active,
			Threshold:     threshold,
			Tallies:       tallies(state.remaining, counts),
		}
		open := seats - len(result.Winners)
		done := false

		switch {
		case len(state.remaining) <= open:
			elect(&round, counts, threshold, byVotes(state.remaining, counts)...)
			done = true

		case allEqual(state.remaining, counts):
			if cfg.AllowTies {
				result.Tied = true
				result.TiedCandidates = append([]string(nil), state.remaining...)
				done = true
				break
			}
			round.TieBroken = true
			elect(&round, counts, threshold, ResolveTie(state.remaining, state.ballots))
			done = len(result.Winners) == seats

		default:
			if reached := reachedQuota(state.remaining, counts, threshold); len(reached) > 0 {
				if len(reached) > open {
					reached = reached[:open]
				}
				elect(&round, counts, threshold, reached...)
				done = len(result.Winners) == seats
				break
			}

			lowest := minimumGroup(state.remaining, counts)
			if len(state.remaining)-len(lowest) < open {
				// Eliminating the whole group would leave seats unfilled.
				leaders := slices.DeleteFunc(slices.Clone(state.remaining), func(c string) bool {
					return slices.Contains(lowest, c)
				})
				elect(&round, counts, threshold, byVotes(leaders, counts)...)
				break
			}
			round.Eliminated = lowest
			state.remove(lowest...)
		}

		result.Rounds = append(result.Rounds, round)
		if done {
			break
		}
		state.number++
	}

	result.RoundCount = len(result.Rounds)
	result.Summary = summarize(result)
	return result, nil
}

func overrideThreshold(t float64, voters int) int {
	if t < 1 {
		return int(math.Floor(t*float64(voters))) + 1
	}
	return int(math.Floor(t))
}

func tallies(remaining []string, counts map[string]int) []Tally {
	out := make([]Tally, 0, len(remaining))
	for _, c := range byVotes(remaining, counts) {
		out = append(out, Tally{Candidate: c, Votes: counts[c]})
	}
	return out
}

// byVotes orders candidates by descending count, keeping canonical order
// among equal counts.
func byVotes(candidates []string, counts map[string]int) []string {
	out := slices.Clone(candidates)
	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return out
}

func allEqual(remaining []string, counts map[string]int) bool {
	if len(remaining) < 2 {
		return false
	}
	first := counts[remaining[0]]
	for _, c := range remaining[1:] {
		if counts[c] != first {
			return false
		}
	}
	return true
}

func reachedQuota(remaining []string, counts map[string]int, threshold int) []string {
	var reached []string
	for _, c := range byVotes(remaining, counts) {
		if counts[c] >= threshold {
			reached = append(reached, c)
		}
	}
	return reached
}

// minimumGroup returns every candidate sharing the lowest count, in
// canonical order.
func minimumGroup(remaining []string, counts map[string]int) []string {
	lowest := math.MaxInt
	for _, c := range remaining {
		lowest = min(lowest, counts[c])
	}
	var group []string
	for _, c := range remaining {
		if counts[c] == lowest {
			group = append(group, c)
		}
	}
	return group
}
