// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package calc is the mark-calculation and mark-summary engine: the filter
// pipeline, the per-student inner loop, and the five final-mark
// calculation methods described in spec §4. Every exported function here
// is pure: given the same inputs it always returns the same outputs, per
// spec §8's round-trip law.
package calc

import "math"

// FloatTolerance is the float-tolerant equality epsilon used throughout
// the engine (spec §4.1).
const FloatTolerance = 1e-9

// RoundOff1 reproduces the legacy rounding rule exactly:
// floor(10*x + 0.5) / 10. Intermediate accumulations are never rounded;
// only published values (per-assessment averages, category aggregates,
// final marks) pass through this function.
func RoundOff1(x float64) float64 {
	return math.Floor(10*x+0.5) / 10
}

// BucketKey derives the integer bucket key used only by the standalone
// generic weighted-mode helper (spec §4.1/§4.7): round(roundOff1(v) * 10).
func BucketKey(v float64) int {
	return int(math.Round(RoundOff1(v) * 10))
}

// almostEqual compares two floats within FloatTolerance.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= FloatTolerance
}

// almostGTE reports whether a >= b within FloatTolerance.
func almostGTE(a, b float64) bool {
	return a > b || almostEqual(a, b)
}
