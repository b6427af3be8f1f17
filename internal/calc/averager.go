// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"sort"

	"github.com/markbookdev/markbookd/internal/markbook"
)

// AssessmentStats is the per-assessment average/count record from spec
// §4.2/§4.8. Rounding is applied by the caller, never here.
type AssessmentStats struct {
	AvgRaw       float64
	AvgPercent   float64
	MedianPercent float64
	ScoredCount  int
	ZeroCount    int
	NoMarkCount  int
}

// AverageScores folds a stream of three-valued scores into an
// AssessmentStats record, per spec §4.2. The denominator is
// scoredCount+zeroCount; avgRaw is sumRaw/denom (0 if denom==0);
// avgPercent is 100*avgRaw/outOf when outOf>0, else 0.
func AverageScores(states []markbook.ScoreState, outOf float64) AssessmentStats {
	var stats AssessmentStats
	var sumRaw float64
	percents := make([]float64, 0, len(states))

	for _, s := range states {
		switch s.Kind {
		case markbook.NoMark:
			stats.NoMarkCount++
		case markbook.Zero:
			stats.ZeroCount++
			percents = append(percents, 0)
		case markbook.Scored:
			stats.ScoredCount++
			sumRaw += s.Value
			if outOf > 0 {
				percents = append(percents, 100*s.Value/outOf)
			} else {
				percents = append(percents, 0)
			}
		}
	}

	denom := stats.ScoredCount + stats.ZeroCount
	if denom > 0 {
		stats.AvgRaw = sumRaw / float64(denom)
	}
	if outOf > 0 {
		stats.AvgPercent = 100 * stats.AvgRaw / outOf
	}
	stats.MedianPercent = classicalMedian(percents)

	return stats
}

// classicalMedian returns the standard median of a float64 slice (average
// of the two middle values for even-length input), or 0 for an empty
// slice.
func classicalMedian(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
