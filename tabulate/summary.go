// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// summarize renders a round-by-round transcript for display. Callers that
// need structured data should read Rounds instead.
func summarize(r Result) string {
	var sb strings.Builder
	for _, round := range r.Rounds {
		fmt.Fprintf(&sb, "ROUND %d (%s active ballots, %s needed)\n",
			round.Number, humanize.Comma(int64(round.ActiveBallots)), humanize.Comma(int64(round.Threshold)))
		for _, t := range round.Tallies {
			fmt.Fprintf(&sb, "  %-24s %8s\n", t.Candidate, humanize.Comma(int64(t.Votes)))
		}
		if round.TieBroken {
			sb.WriteString("  full tie broken by Borda score\n")
		}
		if len(round.Elected) > 0 {
			fmt.Fprintf(&sb, "  elected: %s\n", strings.Join(round.Elected, ", "))
		}
		if len(round.Eliminated) > 0 {
			fmt.Fprintf(&sb, "  eliminated: %s\n", strings.Join(round.Eliminated, ", "))
		}
	}

	switch {
	case r.Tied && len(r.Winners) > 0:
		fmt.Fprintf(&sb, "Elected %s, then tied in the %s round between %s",
			strings.Join(r.Winners, ", "), humanize.Ordinal(r.RoundCount), strings.Join(r.TiedCandidates, ", "))
	case r.Tied:
		fmt.Fprintf(&sb, "Tied in the %s round between %s",
			humanize.Ordinal(r.RoundCount), strings.Join(r.TiedCandidates, ", "))
	default:
		fmt.Fprintf(&sb, "Elected %s after %d %s",
			strings.Join(r.Winners, ", "), r.RoundCount, plural(r.RoundCount, "round", "rounds"))
	}
	return sb.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
