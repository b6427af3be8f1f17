// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "testing"

func TestRoundOff1(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"roundsDown", 3.54, 3.5},
		{"roundsUp", 3.55, 3.6},
		{"longDecimal", 35.6818, 35.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundOff1(tt.in); !almostEqual(got, tt.want) {
				t.Errorf("RoundOff1(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundOff1Idempotent(t *testing.T) {
	for _, v := range []float64{0, 3.54, 3.55, 35.6818, 100, -4.2} {
		once := RoundOff1(v)
		twice := RoundOff1(once)
		if !almostEqual(once, twice) {
			t.Errorf("RoundOff1 not idempotent for %v: %v vs %v", v, once, twice)
		}
	}
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{3.54, 35},
		{3.55, 36},
		{100, 1000},
	}
	for _, tt := range tests {
		if got := BucketKey(tt.in); got != tt.want {
			t.Errorf("BucketKey(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
