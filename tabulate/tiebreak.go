// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

// BordaScores scores each candidate by rank position. On every ballot the
// i-th listed candidate (counting only members of candidates, from 0) gets
// len(candidates) - i points; unlisted candidates get nothing.
func BordaScores(candidates []string, ballots []Ballot) map[string]int {
	scores := make(map[string]int, len(candidates))
	for _, c := range candidates {
		scores[c] = 0
	}
	n := len(candidates)
	for _, b := range ballots {
		pos := 0
		for _, c := range b {
			if _, ok := scores[c]; !ok {
				continue
			}
			if pts := n - pos; pts > 0 {
				scores[c] += pts
			}
			pos++
		}
	}
	return scores
}

// ResolveTie picks a single winner among tied candidates by Borda score.
// Equal scores fall back to the first candidate in the given order.
func ResolveTie(candidates []string, ballots []Ballot) string {
	if len(candidates) == 0 {
		return ""
	}
	scores := BordaScores(candidates, ballots)
	best := candidates[0]
	for _, c := range candidates[1:] {
		if scores[c] > scores[best] {
			best = c
		}
	}
	return best
}
