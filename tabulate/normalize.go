// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import "strings"

// ValidateConfig checks the candidate list and seat count against a strategy.
func ValidateConfig(candidates []string, strategy Strategy, numberOfWinners int) error {
	if len(candidates) < 2 {
		return invalidf("there must be at least 2 candidates")
	}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if strings.TrimSpace(c) == "" {
			return invalidf("candidate names cannot be empty")
		}
		if seen[c] {
			return invalidf("duplicate candidate %q", c)
		}
		seen[c] = true
	}
	if numberOfWinners < 1 {
		return invalidf("number of winners must be at least 1")
	}
	if numberOfWinners >= len(candidates) {
		return invalidf("number of winners must be less than the number of candidates")
	}
	if !strategy.MultiWinner && numberOfWinners != 1 {
		return invalidf("%s can only have 1 winner", strategy.Name)
	}
	return nil
}

// Normalize checks raw rankings against the candidate set and returns
// copies of them. Partial rankings are accepted.
func Normalize(candidates []string, rawBallots [][]string) ([]Ballot, error) {
	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c] = true
	}

	ballots := make([]Ballot, 0, len(rawBallots))
	for i, raw := range rawBallots {
		seen := make(map[string]bool, len(raw))
		b := make(Ballot, 0, len(raw))
		for _, name := range raw {
			if !known[name] {
				return nil, invalidf("ballot %d: unknown candidate %q", i+1, name)
			}
			if seen[name] {
				return nil, invalidf("ballot %d: duplicate candidate %q", i+1, name)
			}
			seen[name] = true
			b = append(b, name)
		}
		ballots = append(ballots, b)
	}
	return ballots, nil
}
