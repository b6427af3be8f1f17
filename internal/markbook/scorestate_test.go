// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package markbook

import "testing"

func f(v float64) *float64 { return &v }

func TestInterpret(t *testing.T) {
	tests := []struct {
		name     string
		status   StoredStatus
		rawValue *float64
		want     ScoreState
	}{
		{"noMark", StatusNoMark, nil, NoMarkState()},
		{"zero", StatusZero, f(5), ZeroState()},
		{"scoredWithValue", StatusScored, f(7.5), ScoredState(7.5)},
		{"scoredWithoutValueDefaultsZero", StatusScored, nil, ScoredState(0)},
		{"unknownStatusWithValue", StoredStatus("legacy"), f(42), ScoredState(42)},
		{"unknownStatusWithoutValue", StoredStatus("legacy"), nil, NoMarkState()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.status, tt.rawValue)
			if got != tt.want {
				t.Errorf("Interpret(%q, %v) = %+v, want %+v", tt.status, tt.rawValue, got, tt.want)
			}
		})
	}
}

func TestInterpretLegacy(t *testing.T) {
	tests := []struct {
		name string
		raw  float64
		want ScoreState
	}{
		{"zeroIsNoMark", 0, NoMarkState()},
		{"negativeIsZero", -1, ZeroState()},
		{"positiveIsScored", 85, ScoredState(85)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InterpretLegacy(tt.raw); got != tt.want {
				t.Errorf("InterpretLegacy(%v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}
