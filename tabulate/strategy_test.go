// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tabulate

import (
	"errors"
	"testing"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		input       string
		want        string
		multiWinner bool
	}{
		{"instant-runoff", InstantRunoff, false},
		{"instant_runoff", InstantRunoff, false},
		{"preferential-block", PreferentialBlock, true},
		{"Single_Transferable", SingleTransferable, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := Select(tt.input)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}
			if s.Name != tt.want || s.MultiWinner != tt.multiWinner {
				t.Errorf("Select() = %s (multi %v), want %s (multi %v)", s.Name, s.MultiWinner, tt.want, tt.multiWinner)
			}
		})
	}

	for _, name := range []string{"borda", ""} {
		if _, err := Select(name); !errors.Is(err, ErrUnknownStrategy) {
			t.Errorf("Select(%q) error = %v, want ErrUnknownStrategy", name, err)
		}
	}
}

func TestQuota(t *testing.T) {
	irv, _ := Select(InstantRunoff)
	stv, _ := Select(SingleTransferable)

	if q := irv.Quota(4, 1); q != 3 {
		t.Errorf("majority quota of 4 = %d, want 3", q)
	}
	if q := irv.Quota(5, 1); q != 3 {
		t.Errorf("majority quota of 5 = %d, want 3", q)
	}
	if q := stv.Quota(100, 3); q != 26 {
		t.Errorf("Droop quota of 100 for 3 seats = %d, want 26", q)
	}
}
