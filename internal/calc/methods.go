// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "github.com/markbookdev/markbookd/internal/markbook"

// CategoryValue is a single declared category's reporting value for one
// student, per spec §4.8 step 7.
type CategoryValue struct {
	Value   *float64
	Weight  float64
	HasData bool
}

// StudentResult is one student's final-mark outcome plus the counters and
// per-category breakdown the summary assembler reports alongside it.
type StudentResult struct {
	FinalMark  *float64
	Counts     StudentCounts
	Categories []CategoryValue // indexed like CategorySet.Categories
}

// StudentInputs bundles everything ComputeStudentFinalMark needs for one
// student, per spec §4.6.
type StudentInputs struct {
	ValidMember    bool
	CalcSelected   []markbook.Assessment // already filtered + exclusions applied, per §4.6
	AllAssessments []markbook.Assessment // the mark set's full assessment list, for ModeCats rebuild
	CalcMethod     markbook.CalcMethod
	RawWeightMethod markbook.WeightMethod // the (possibly safety-fallback-adjusted) declared weight method
	WrkWtMeth      markbook.WeightMethod  // resolved 0 (entry) or 1 (category)
	TermFilter     *int                   // from the effective calc filter, for ModeCats
	Scores         ScoreLookup
	ModeConfig     ModeConfig
}

// ComputeStudentFinalMark runs the per-student inner loop and dispatches
// to the calc-method-specific final-mark formula, per spec §4.6.
func ComputeStudentFinalMark(cs CategorySet, in StudentInputs) StudentResult {
	blankCategories := func() []CategoryValue {
		out := make([]CategoryValue, cs.Len())
		for i, c := range cs.Categories {
			out[i] = CategoryValue{Weight: c.Weight}
		}
		return out
	}

	if !in.ValidMember {
		return StudentResult{FinalMark: nil, Categories: blankCategories()}
	}

	entryWeightEqual := in.RawWeightMethod == markbook.WeightEqual
	entries, catSum, catWSum, catHasNonzero, counts := BuildEntries(in.CalcSelected, cs, entryWeightEqual, in.Scores)

	result := StudentResult{Counts: counts, Categories: blankCategories()}

	for i := range cs.Categories {
		avg, ok := CategoryAverage(catSum, catWSum, catHasNonzero, i)
		if ok {
			v := RoundOff1(avg)
			result.Categories[i] = CategoryValue{Value: &v, Weight: cs.Categories[i].Weight, HasData: true}
		}
	}

	if counts.ScoredCount == 0 && counts.ZeroCount == 0 && counts.NoMarkCount == 0 {
		return result
	}

	if counts.ScoredCount == 0 && counts.ZeroCount > 0 {
		zero := RoundOff1(0)
		result.FinalMark = &zero
		return result
	}

	wrkCatWt := make([]float64, cs.Len())
	for i, c := range cs.Categories {
		wrkCatWt[i] = WorkingWeight(c, in.RawWeightMethod)
	}
	totalWt0 := TotalWeight(cs, catWSum, wrkCatWt, in.WrkWtMeth)
	if totalWt0 <= 0 {
		return result
	}

	wctx := WeightContext{
		RawWeightMethod: in.RawWeightMethod,
		WrkWtMeth:       in.WrkWtMeth,
		CatWSum:         catWSum,
		WrkCatWt:        wrkCatWt,
		TotalWt0:        totalWt0,
	}

	var mark float64
	switch in.CalcMethod {
	case markbook.CalcAverage:
		mark = averageMethod(cs, catSum, catWSum, catHasNonzero, wrkCatWt, totalWt0, in.WrkWtMeth)
	case markbook.CalcMedian:
		if v, ok := VB6Median(entries, nil, wctx); ok {
			mark = v
		} else {
			return result
		}
	case markbook.CalcMode:
		if v, ok := VB6Mode(entries, nil, wctx, in.ModeConfig); ok {
			mark = v
		} else {
			return result
		}
	case markbook.CalcBlendedMode:
		mark = blendedMethod(cs, in, wrkCatWt, totalWt0, true)
	case markbook.CalcBlendedMedian:
		mark = blendedMethod(cs, in, wrkCatWt, totalWt0, false)
	default:
		return result
	}

	rounded := RoundOff1(mark)
	result.FinalMark = &rounded
	return result
}

// averageMethod implements spec §4.6 Method 0.
func averageMethod(cs CategorySet, catSum, catWSum []float64, catHasNonzero []bool, wrkCatWt []float64, totalWt0 float64, wrkWtMeth markbook.WeightMethod) float64 {
	var base float64
	for i := range cs.Categories {
		if i == cs.BonusIdx {
			continue
		}
		avg, ok := CategoryAverage(catSum, catWSum, catHasNonzero, i)
		if !ok {
			continue
		}
		var share float64
		if wrkWtMeth == markbook.WeightCategory {
			share = wrkCatWt[i] / totalWt0
		} else {
			share = catWSum[i] / totalWt0
		}
		base += avg * share
	}

	if cs.BonusIdx >= 0 {
		if bonusAvg, ok := CategoryAverage(catSum, catWSum, catHasNonzero, cs.BonusIdx); ok {
			base += bonusAvg * (wrkCatWt[cs.BonusIdx] / 100)
		}
	}

	return base
}

// blendedMethod implements spec §4.6 Methods 3/4: per-category
// mode/median, then a category-weighted mean. isMode selects blended-mode
// (true, which rebuilds a ModeCats entry list ignoring the types-mask
// filter) versus blended-median (false, which rebuilds the student's
// entries from the calculation-selected assessments and so honours every
// filter).
func blendedMethod(cs CategorySet, in StudentInputs, wrkCatWt []float64, totalWt0 float64, isMode bool) float64 {
	var total float64
	entryWeightEqual := in.RawWeightMethod == markbook.WeightEqual

	var medianEntries []Entry
	var medianCatWSum []float64
	if !isMode {
		medianEntries, _, medianCatWSum, _, _ = BuildEntries(in.CalcSelected, cs, entryWeightEqual, in.Scores)
	}

	for i := range cs.Categories {
		if wrkCatWt[i] <= 0 {
			continue
		}

		idx := i
		var catMark float64
		var ok bool

		if isMode {
			// Blended-mode rebuilds a ModeCats entry list per category,
			// deliberately ignoring the types-mask filter (spec §9).
			selected := SelectForModeCats(in.AllAssessments, cs, in.WrkWtMeth, i, in.TermFilter)
			entries, _, catWSum, _, _ := BuildEntries(selected, cs, entryWeightEqual, in.Scores)
			if catWSum[i] <= 0 {
				continue
			}
			wctx := WeightContext{
				RawWeightMethod: in.RawWeightMethod,
				WrkWtMeth:       in.WrkWtMeth,
				CatWSum:         catWSum,
				WrkCatWt:        wrkCatWt,
				TotalWt0:        totalWt0,
			}
			catMark, ok = VB6Mode(entries, &idx, wctx, in.ModeConfig)
		} else {
			if medianCatWSum[i] <= 0 {
				continue
			}
			wctx := WeightContext{
				RawWeightMethod: in.RawWeightMethod,
				WrkWtMeth:       in.WrkWtMeth,
				CatWSum:         medianCatWSum,
				WrkCatWt:        wrkCatWt,
				TotalWt0:        totalWt0,
			}
			catMark, ok = VB6Median(medianEntries, &idx, wctx)
		}

		if !ok || catMark <= 0 {
			continue
		}

		total += catMark * (wrkCatWt[i] / totalWt0)
	}

	return total
}
