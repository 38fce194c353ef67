// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation      = errors.New("invalid election input")
	ErrUnknownStrategy = errors.New("unknown voting strategy")
	ErrTieUnresolved   = errors.New("election ended in a tie")
)

// ValidationError reports malformed candidates, ballots or configuration.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Msg)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UnknownStrategyError reports a strategy name missing from the registry.
type UnknownStrategyError struct {
	Name string
}

func (e *UnknownStrategyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %q", ErrUnknownStrategy.Error(), e.Name)
}

func (e *UnknownStrategyError) Unwrap() error { return ErrUnknownStrategy }

// TieUnresolvedError describes a full tie that was left standing because
// the election allows ties. It is an outcome, not a failure.
type TieUnresolvedError struct {
	Round      int
	Candidates []string
}

func (e *TieUnresolvedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s in round %d between %s",
		ErrTieUnresolved.Error(), e.Round, strings.Join(e.Candidates, ", "))
}

func (e *TieUnresolvedError) Unwrap() error { return ErrTieUnresolved }

func invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
