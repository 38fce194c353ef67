// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

// CountFirstPreferences counts, for every remaining candidate, the ballots
// whose highest ranked remaining choice is that candidate. Exhausted ballots
// count for nobody. Every remaining candidate is present in the result.
func CountFirstPreferences(remaining []string, ballots []Ballot) map[string]int {
	counts := make(map[string]int, len(remaining))
	for _, c := range remaining {
		counts[c] = 0
	}
	for _, b := range ballots {
		if top, ok := firstPreference(b, counts); ok {
			counts[top]++
		}
	}
	return counts
}

func firstPreference(b Ballot, remaining map[string]int) (string, bool) {
	for _, c := range b {
		if _, ok := remaining[c]; ok {
			return c, true
		}
	}
	return "", false
}

// roundState is the mutable view of one tabulation. It is created per call
// and never shared.
type roundState struct {
	// remaining keeps canonical order.
	remaining []string
	ballots   []Ballot
	number    int
}

func newRoundState(candidates []string, ballots []Ballot) *roundState {
	s := &roundState{
		remaining: append([]string(nil), candidates...),
		ballots:   make([]Ballot, len(ballots)),
		number:    1,
	}
	for i, b := range ballots {
		s.ballots[i] = append(Ballot(nil), b...)
	}
	return s
}

func (s *roundState) activeBallots() int {
	n := 0
	for _, b := range s.ballots {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

// remove drops candidates from the remaining set and strips them from
// every ballot.
func (s *roundState) remove(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	kept := s.remaining[:0]
	for _, c := range s.remaining {
		if !drop[c] {
			kept = append(kept, c)
		}
	}
	s.remaining = kept

	for i, b := range s.ballots {
		stripped := b[:0]
		for _, c := range b {
			if !drop[c] {
				stripped = append(stripped, c)
			}
		}
		s.ballots[i] = stripped
	}
}

// retire takes up to n ballots currently counting for candidate out of play,
// in input order.
func (s *roundState) retire(candidate string, n int) {
	for i, b := range s.ballots {
		if n == 0 {
			return
		}
		if len(b) > 0 && b[0] == candidate {
			s.ballots[i] = nil
			n--
		}
	}
}
