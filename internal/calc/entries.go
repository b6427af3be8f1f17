// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "github.com/markbookdev/markbookd/internal/markbook"

// Entry is one assessment's contribution to a student's final-mark
// calculation, per spec §4.6.
type Entry struct {
	Pct     float64
	EntryWt float64
	CatIdx  int
}

// ScoreLookup resolves a student's score on a given assessment.
type ScoreLookup func(assessmentID string) (markbook.Score, bool)

// SelectionCounts tags why calculation-selected assessments were dropped
// before the per-student inner loop, per spec §4.6.
type SelectionCounts struct {
	ExcludedByWeight         int
	ExcludedByCategoryWeight int
	ExcludedByUnknownCategory int
}

// SelectForCalculation narrows filter-selected assessments down to the
// calculation-selected set, per spec §4.6's three exclusion rules, applied
// in order:
//
//  1. weight <= 0
//  2. if wrkWtMeth == WeightCategory, the category's declared weight <= 0
//  3. category name (defaulted to Uncategorized) not declared
func SelectForCalculation(filterSelected []markbook.Assessment, cs CategorySet, wrkWtMeth markbook.WeightMethod) ([]markbook.Assessment, SelectionCounts) {
	var counts SelectionCounts
	out := make([]markbook.Assessment, 0, len(filterSelected))

	for _, a := range filterSelected {
		if a.Weight <= 0 {
			counts.ExcludedByWeight++
			continue
		}
		idx, ok := cs.Lookup(a.CategoryName)
		if !ok {
			counts.ExcludedByUnknownCategory++
			continue
		}
		if wrkWtMeth == markbook.WeightCategory && cs.Categories[idx].Weight <= 0 {
			counts.ExcludedByCategoryWeight++
			continue
		}
		out = append(out, a)
	}

	return out, counts
}

// SelectForModeCats rebuilds the per-category entry list used by
// blended-mode (calc method 3), per spec §4.6/§9 "ModeCats". It
// deliberately ignores the types-mask filter, applying only the term
// filter and the weight>0 / category-weight>0 predicates, against ALL of
// the mark set's assessments (not the filter-selected subset) restricted
// to categoryIdx.
func SelectForModeCats(allAssessments []markbook.Assessment, cs CategorySet, wrkWtMeth markbook.WeightMethod, categoryIdx int, termFilter *int) []markbook.Assessment {
	out := make([]markbook.Assessment, 0, len(allAssessments))
	for _, a := range allAssessments {
		if !matchesTerm(a.Term, termFilter) {
			continue
		}
		if a.Weight <= 0 {
			continue
		}
		idx, ok := cs.Lookup(a.CategoryName)
		if !ok || idx != categoryIdx {
			continue
		}
		if wrkWtMeth == markbook.WeightCategory && cs.Categories[idx].Weight <= 0 {
			continue
		}
		out = append(out, a)
	}
	return out
}

// StudentCounts tallies how a student's scores resolved across the
// calculation-selected assessments, per spec §4.6/§4.8.
type StudentCounts struct {
	ScoredCount int
	ZeroCount   int
	NoMarkCount int
}

// zeroSentinel is the non-zero placeholder percent used for Zero scores
// in entry assembly, per spec §4.6/§9: it keeps the entry in category
// denominators while still rounding to a visible 0.0 on display.
const zeroSentinel = 0.001

// BuildEntries runs the per-student inner loop (spec §4.6) over a set of
// calculation-selected assessments for one student, accumulating entries
// plus per-category sums. entryWeightEqual forces every entry weight to 1
// (the "equal" weighting effect is realised here, upstream of wrkWtMeth).
func BuildEntries(selected []markbook.Assessment, cs CategorySet, entryWeightEqual bool, scores ScoreLookup) (entries []Entry, catSum []float64, catWSum []float64, catHasNonzero []bool, counts StudentCounts) {
	n := cs.Len()
	catSum = make([]float64, n)
	catWSum = make([]float64, n)
	catHasNonzero = make([]bool, n)
	entries = make([]Entry, 0, len(selected))

	for _, a := range selected {
		idx, ok := cs.Lookup(a.CategoryName)
		if !ok {
			continue
		}

		score, found := scores(a.ID)
		var state markbook.ScoreState
		if found {
			state = markbook.Interpret(score.Status, score.RawValue)
		} else {
			state = markbook.NoMarkState()
		}

		var pct float64
		switch state.Kind {
		case markbook.NoMark:
			counts.NoMarkCount++
			continue
		case markbook.Zero:
			counts.ZeroCount++
			pct = zeroSentinel
		case markbook.Scored:
			counts.ScoredCount++
			if state.Value > 0 {
				catHasNonzero[idx] = true
			}
			if a.OutOf > 0 {
				pct = 100 * state.Value / a.OutOf
			} else {
				pct = 0
			}
		}

		entryWt := a.Weight
		if entryWeightEqual {
			entryWt = 1
		}

		entries = append(entries, Entry{Pct: pct, EntryWt: entryWt, CatIdx: idx})
		catSum[idx] += pct * entryWt
		catWSum[idx] += entryWt
	}

	return entries, catSum, catWSum, catHasNonzero, counts
}

// CategoryAverage returns a category's reporting average (catSum/catWSum),
// forcing the 0.001 sentinel when the category has entries but none with
// a nonzero scored value, per spec §4.6. ok is false when catWSum[c] <= 0
// (no data at all).
func CategoryAverage(catSum, catWSum []float64, catHasNonzero []bool, idx int) (avg float64, ok bool) {
	if idx < 0 || idx >= len(catWSum) || catWSum[idx] <= 0 {
		return 0, false
	}
	avg = catSum[idx] / catWSum[idx]
	if !catHasNonzero[idx] {
		avg = zeroSentinel
	}
	return avg, true
}

// TotalWeight computes totalWt0 (spec §4.6): the sum, over non-BONUS
// categories with catWSum>0, of wrkCatWt[cat] (wrkWtMeth==WeightCategory)
// or catWSum[cat] (otherwise).
func TotalWeight(cs CategorySet, catWSum []float64, wrkCatWt []float64, wrkWtMeth markbook.WeightMethod) float64 {
	var total float64
	for i := range cs.Categories {
		if i == cs.BonusIdx {
			continue
		}
		if catWSum[i] <= 0 {
			continue
		}
		if wrkWtMeth == markbook.WeightCategory {
			total += wrkCatWt[i]
		} else {
			total += catWSum[i]
		}
	}
	return total
}
