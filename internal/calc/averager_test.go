// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"testing"

	"github.com/markbookdev/markbookd/internal/markbook"
)

func TestAverageScores(t *testing.T) {
	states := []markbook.ScoreState{
		markbook.NoMarkState(),
		markbook.ZeroState(),
		markbook.ScoredState(80),
		markbook.ScoredState(40),
	}
	stats := AverageScores(states, 100)

	if stats.NoMarkCount != 1 {
		t.Errorf("NoMarkCount = %d, want 1", stats.NoMarkCount)
	}
	if stats.ZeroCount != 1 {
		t.Errorf("ZeroCount = %d, want 1", stats.ZeroCount)
	}
	if stats.ScoredCount != 2 {
		t.Errorf("ScoredCount = %d, want 2", stats.ScoredCount)
	}
	denom := stats.ScoredCount + stats.ZeroCount
	if denom != 3 {
		t.Errorf("denominator = %d, want 3 (scoredCount+zeroCount)", denom)
	}
	wantAvgRaw := (0 + 80 + 40) / 3.0
	if !almostEqual(stats.AvgRaw, wantAvgRaw) {
		t.Errorf("AvgRaw = %v, want %v", stats.AvgRaw, wantAvgRaw)
	}
	wantAvgPercent := 100 * wantAvgRaw / 100
	if !almostEqual(stats.AvgPercent, wantAvgPercent) {
		t.Errorf("AvgPercent = %v, want %v", stats.AvgPercent, wantAvgPercent)
	}
	if !almostEqual(stats.AvgRaw*100, stats.AvgPercent*100) {
		t.Error("avgRaw*100 should equal avgPercent*outOf when outOf=100")
	}
}

func TestAverageScoresEmptyDenominator(t *testing.T) {
	stats := AverageScores([]markbook.ScoreState{markbook.NoMarkState()}, 100)
	if stats.AvgRaw != 0 || stats.AvgPercent != 0 {
		t.Errorf("expected zero averages with empty denominator, got %+v", stats)
	}
}

func TestAverageScoresZeroOutOf(t *testing.T) {
	stats := AverageScores([]markbook.ScoreState{markbook.ScoredState(50)}, 0)
	if stats.AvgPercent != 0 {
		t.Errorf("AvgPercent with outOf=0 should be 0, got %v", stats.AvgPercent)
	}
}
