// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import "strings"

// Strategy names
const (
	InstantRunoff      = "instant-runoff"
	PreferentialBlock  = "preferential-block"
	SingleTransferable = "single-transferable"
)

// Strategy fixes how a tabulation terminates and how many seats it fills.
type Strategy struct {
	Name        string
	MultiWinner bool

	// fixedQuota computes the quota once, from the round 1 ballots.
	fixedQuota bool
	// retireBallots removes quota ballots from play once they elect someone.
	retireBallots bool
	quota         func(active, seats int) int
}

// Quota returns the votes a candidate needs given the active ballots and seats.
func (s Strategy) Quota(active, seats int) int {
	return s.quota(active, seats)
}

func majorityQuota(active, _ int) int {
	return active/2 + 1
}

func droopQuota(active, seats int) int {
	return active/(seats+1) + 1
}

var strategies = map[string]Strategy{
	InstantRunoff: {
		Name:  InstantRunoff,
		quota: majorityQuota,
	},
	PreferentialBlock: {
		Name:        PreferentialBlock,
		MultiWinner: true,
		quota:       majorityQuota,
	},
	SingleTransferable: {
		Name:          SingleTransferable,
		MultiWinner:   true,
		fixedQuota:    true,
		retireBallots: true,
		quota:         droopQuota,
	},
}

// Select returns the strategy registered under name. Underscore spellings
// such as "instant_runoff" are accepted.
func Select(name string) (Strategy, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	s, ok := strategies[key]
	if !ok {
		return Strategy{}, &UnknownStrategyError{Name: name}
	}
	return s, nil
}

// StrategyNames lists the registered strategies in a stable order.
func StrategyNames() []string {
	return []string{InstantRunoff, PreferentialBlock, SingleTransferable}
}
