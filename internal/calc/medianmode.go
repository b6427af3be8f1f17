// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"sort"

	"github.com/markbookdev/markbookd/internal/markbook"
)

// WeightContext bundles the per-student weighting inputs shared by the
// median and mode helpers (spec §4.7): the raw declared weight method
// (needed because "equal" has its own classical-median special case even
// though it is mapped to entry-weighting everywhere else), the resolved
// wrkWtMeth (0 entry, 1 category), the per-category weight sums, the
// working category weights, and the overall denominator totalWt0.
type WeightContext struct {
	RawWeightMethod markbook.WeightMethod
	WrkWtMeth       markbook.WeightMethod
	CatWSum         []float64
	WrkCatWt        []float64
	TotalWt0        float64
}

func filterEntries(entries []Entry, catFilter *int) []Entry {
	if catFilter == nil {
		out := make([]Entry, len(entries))
		copy(out, entries)
		return out
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.CatIdx == *catFilter {
			out = append(out, e)
		}
	}
	return out
}

// VB6Median reproduces vb6MedianMark from spec §4.7.
func VB6Median(entries []Entry, catFilter *int, wctx WeightContext) (float64, bool) {
	filtered := filterEntries(entries, catFilter)
	if len(filtered) == 0 {
		return 0, false
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Pct < filtered[j].Pct })

	if wctx.RawWeightMethod == markbook.WeightEqual {
		pcts := make([]float64, len(filtered))
		for i, e := range filtered {
			pcts[i] = e.Pct
		}
		return classicalMedian(pcts), true
	}

	if len(filtered) == 2 && almostEqual(filtered[0].EntryWt, filtered[1].EntryWt) {
		return (filtered[0].Pct + filtered[1].Pct) / 2, true
	}

	denom := wctx.TotalWt0
	if catFilter != nil {
		denom = wctx.CatWSum[*catFilter]
	}
	if denom <= 0 {
		return 0, false
	}

	var countTo50 float64
	for i, e := range filtered {
		jump := medianJump(e, catFilter, wctx, denom)
		countTo50 += jump
		if countTo50 >= 50 || almostEqual(countTo50, 50) {
			if almostEqual(countTo50, 50) && i+1 < len(filtered) {
				return (e.Pct + filtered[i+1].Pct) / 2, true
			}
			return e.Pct, true
		}
	}

	return filtered[len(filtered)-1].Pct, true
}

func medianJump(e Entry, catFilter *int, wctx WeightContext, denom float64) float64 {
	switch {
	case wctx.WrkWtMeth == markbook.WeightCategory && catFilter != nil:
		return 100 * e.EntryWt / wctx.CatWSum[*catFilter]
	case wctx.WrkWtMeth == markbook.WeightCategory:
		cat := e.CatIdx
		if wctx.CatWSum[cat] <= 0 || wctx.TotalWt0 <= 0 {
			return 0
		}
		return 100 * (e.EntryWt / wctx.CatWSum[cat]) * (wctx.WrkCatWt[cat] / wctx.TotalWt0)
	default:
		return 100 * e.EntryWt / denom
	}
}

// VB6Mode reproduces vb6ModeMark from spec §4.7.
func VB6Mode(entries []Entry, catFilter *int, wctx WeightContext, cfg ModeConfig) (float64, bool) {
	filtered := filterEntries(entries, catFilter)
	if len(filtered) == 0 {
		return 0, false
	}

	var levelTotals [modeLevelValsSize]float64
	var total float64

	for _, e := range filtered {
		modeVal := modeValue(e, catFilter, wctx)
		if modeVal <= 0 {
			continue
		}
		lvl := LevelFromMark(cfg, e.Pct)
		levelTotals[lvl] += modeVal
		total += modeVal
	}

	if total <= 0 {
		return 0, false
	}

	chosenLvl := 0
	var chosenPct float64 = -1
	for lvl := 0; lvl <= cfg.ActiveLevels; lvl++ {
		pct := RoundOff1(100 * levelTotals[lvl] / total)
		if pct > chosenPct || almostEqual(pct, chosenPct) {
			chosenPct = pct
			chosenLvl = lvl
		}
	}

	return MidrangeMode(cfg, chosenLvl), true
}

func modeValue(e Entry, catFilter *int, wctx WeightContext) float64 {
	switch {
	case wctx.WrkWtMeth == markbook.WeightCategory && catFilter != nil:
		if wctx.CatWSum[*catFilter] <= 0 {
			return 0
		}
		return 100 * (e.EntryWt / wctx.CatWSum[*catFilter])
	case wctx.WrkWtMeth == markbook.WeightCategory:
		cat := e.CatIdx
		if wctx.CatWSum[cat] <= 0 || wctx.TotalWt0 <= 0 {
			return 0
		}
		return 100 * (e.EntryWt / wctx.CatWSum[cat]) * (wctx.WrkCatWt[cat] / wctx.TotalWt0)
	default:
		if wctx.TotalWt0 <= 0 {
			return 0
		}
		return 100 * e.EntryWt / wctx.TotalWt0
	}
}
