// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"testing"

	"github.com/markbookdev/markbookd/internal/markbook"
)

// TestSelectForCalculationExclusionCounters exercises the entries list
// construction in isolation from any final-mark method, per
// SPEC_FULL.md's supplemented "entries clone roundtrip" scenario: given a
// fixed assessment fixture, each exclusion counter is asserted directly.
func TestSelectForCalculationExclusionCounters(t *testing.T) {
	cs := NewCategorySet([]markbook.Category{
		{Name: "A", Weight: 100},
		{Name: "B", Weight: 0},
	})
	assessments := []markbook.Assessment{
		{ID: "ok", CategoryName: "A", Weight: 1},
		{ID: "weightless", CategoryName: "A", Weight: 0},
		{ID: "zeroCatWeight", CategoryName: "B", Weight: 1},
		{ID: "unknownCategory", CategoryName: "Nonexistent", Weight: 1},
	}

	selected, counts := SelectForCalculation(assessments, cs, markbook.WeightCategory)

	if len(selected) != 1 || selected[0].ID != "ok" {
		t.Fatalf("selected = %+v, want only 'ok'", selected)
	}
	if counts.ExcludedByWeight != 1 {
		t.Errorf("ExcludedByWeight = %d, want 1", counts.ExcludedByWeight)
	}
	if counts.ExcludedByCategoryWeight != 1 {
		t.Errorf("ExcludedByCategoryWeight = %d, want 1", counts.ExcludedByCategoryWeight)
	}
	if counts.ExcludedByUnknownCategory != 1 {
		t.Errorf("ExcludedByUnknownCategory = %d, want 1", counts.ExcludedByUnknownCategory)
	}
}

func TestBuildEntriesScoreCounts(t *testing.T) {
	cs := NewCategorySet([]markbook.Category{{Name: "A", Weight: 1}})
	assessments := []markbook.Assessment{
		{ID: "noMark", CategoryName: "A", Weight: 1, OutOf: 100},
		{ID: "zero", CategoryName: "A", Weight: 1, OutOf: 100},
		{ID: "scored", CategoryName: "A", Weight: 1, OutOf: 100},
	}
	rawVal := 80.0
	scores := map[string]markbook.Score{
		"zero":   {Status: markbook.StatusZero},
		"scored": {Status: markbook.StatusScored, RawValue: &rawVal},
	}
	lookup := func(assessmentID string) (markbook.Score, bool) {
		s, ok := scores[assessmentID]
		return s, ok
	}

	entries, catSum, catWSum, catHasNonzero, counts := BuildEntries(assessments, cs, false, lookup)

	if counts.NoMarkCount != 1 || counts.ZeroCount != 1 || counts.ScoredCount != 1 {
		t.Fatalf("counts = %+v, want {scored:1 zero:1 noMark:1}", counts)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (NoMark excluded)", len(entries))
	}
	if !catHasNonzero[0] {
		t.Error("catHasNonzero[0] should be true: the scored entry is nonzero")
	}
	if catWSum[0] != 2 {
		t.Errorf("catWSum[0] = %v, want 2", catWSum[0])
	}
	wantCatSum := zeroSentinel + 80.0
	if !almostEqual(catSum[0], wantCatSum) {
		t.Errorf("catSum[0] = %v, want %v", catSum[0], wantCatSum)
	}
}
