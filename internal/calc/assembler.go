// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/markbook"
	"github.com/markbookdev/markbookd/internal/store"
)

// ClassInfo is the minimal class record a summary echoes back, per spec §6.
type ClassInfo struct {
	ID   string
	Name string
}

// AssessmentStat is one filter-selected assessment's published statistics
// (rounded), alongside the assessment's stored fields, per spec §4.8 step 5.
type AssessmentStat struct {
	Assessment    markbook.Assessment
	AvgRaw        float64
	AvgPercent    float64
	MedianPercent float64
	ScoredCount   int
	ZeroCount     int
	NoMarkCount   int
}

// CategoryAggregate is a mark set's per-category class-level summary, per
// spec §4.8 step 8 plus the classreport.go reporting extension named in
// SPEC_FULL.md's supplemented features.
type CategoryAggregate struct {
	Category          markbook.Category
	ClassAvg          *float64 // nil if no valid member has data in this category
	ClassMedian       *float64
	ClassMode         *float64
	AssessmentCount   int // from the calculation-selected assessments
}

// StudentSummary is one student's published final-mark result, per spec
// §4.8 step 7.
type StudentSummary struct {
	StudentID string
	FinalMark *float64
	Counts    StudentCounts
}

// SettingsApplied is the effective settings block a summary echoes back,
// per spec §4.8 step 2 and §6.
type SettingsApplied struct {
	WeightMethodApplied markbook.WeightMethod
	CalcMethodApplied   markbook.CalcMethod
	WrkWtMeth           markbook.WeightMethod
	ModeConfig          ModeConfig
}

// Summary is the complete mark-set summary model, per spec §6 "Summary
// model shape".
type Summary struct {
	Class                ClassInfo
	MarkSet              markbook.MarkSet
	Filters              Filter
	Categories           []markbook.Category
	Assessments          []markbook.Assessment // filter-selected, stored fields
	PerAssessment        []AssessmentStat
	PerCategory          []CategoryAggregate
	PerStudent           []StudentSummary
	PerStudentCategories map[string][]CategoryValue // keyed by student id
	SettingsApplied      SettingsApplied
	Diagnostics          *Diagnostics // nil outside debug builds
}

// AssembleSummary runs the full pipeline from spec §4.8: load inputs from
// the store, fork into per-assessment statistics and per-student
// calculation, and return the complete summary model. It is the only
// place in the engine that talks to store.Reader.
func AssembleSummary(r store.Reader, classID, markSetID string, rawFilter *RawFilter) (Summary, error) {
	className, ok, err := r.GetClassName(classID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading class", err)
	}
	if !ok {
		return Summary{}, calcerr.NotFound("class not found", map[string]any{"classId": classID})
	}

	ms, ok, err := r.GetMarkSet(classID, markSetID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading mark set", err)
	}
	if !ok {
		return Summary{}, calcerr.NotFound("mark set not found", map[string]any{"markSetId": markSetID})
	}

	students, err := r.ListStudents(classID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading students", err)
	}
	categories, err := r.ListCategories(markSetID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading categories", err)
	}
	assessments, err := r.ListAssessments(markSetID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading assessments", err)
	}

	cs := NewCategorySet(categories)

	pairs := make([]store.ScoreKey, 0, len(assessments)*len(students))
	for _, a := range assessments {
		for _, s := range students {
			pairs = append(pairs, store.ScoreKey{AssessmentID: a.ID, StudentID: s.ID})
		}
	}
	scoreMap, err := r.BulkLoadScores(pairs)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading scores", err)
	}

	modeCfg, err := LoadModeConfig(r, classID)
	if err != nil {
		return Summary{}, calcerr.DBQueryFailed("loading mode config", err)
	}

	calcMethodApplied, weightMethodApplied, wrkWtMeth := resolveAppliedSettings(ms, cs)

	filter, err := ParseFilter(rawFilter)
	if err != nil {
		return Summary{}, err
	}
	filterSelected := ApplyFilter(assessments, filter)

	effectiveFilter := EffectiveCalcFilter(filter, calcMethodApplied)
	calcView := ApplyFilter(assessments, effectiveFilter)
	calcSelected, _ := SelectForCalculation(calcView, cs, wrkWtMeth)

	perAssessment := make([]AssessmentStat, 0, len(filterSelected))
	for _, a := range filterSelected {
		states := make([]markbook.ScoreState, 0, len(students))
		for _, stu := range students {
			if !ValidKid(stu.Active, stu.Mask, ms.SortOrder) {
				continue
			}
			score, found := scoreMap[store.ScoreKey{AssessmentID: a.ID, StudentID: stu.ID}]
			if found {
				states = append(states, markbook.Interpret(score.Status, score.RawValue))
			} else {
				states = append(states, markbook.NoMarkState())
			}
		}
		stats := AverageScores(states, a.OutOf)
		perAssessment = append(perAssessment, AssessmentStat{
			Assessment:    a,
			AvgRaw:        RoundOff1(stats.AvgRaw),
			AvgPercent:    RoundOff1(stats.AvgPercent),
			MedianPercent: RoundOff1(stats.MedianPercent),
			ScoredCount:   stats.ScoredCount,
			ZeroCount:     stats.ZeroCount,
			NoMarkCount:   stats.NoMarkCount,
		})
	}

	perStudent := make([]StudentSummary, 0, len(students))
	perStudentCategories := make(map[string][]CategoryValue, len(students))
	validByStudent := make(map[string]bool, len(students))

	for _, stu := range students {
		valid := ValidKid(stu.Active, stu.Mask, ms.SortOrder)
		validByStudent[stu.ID] = valid

		studentID := stu.ID
		lookup := func(assessmentID string) (markbook.Score, bool) {
			sc, found := scoreMap[store.ScoreKey{AssessmentID: assessmentID, StudentID: studentID}]
			return sc, found
		}

		in := StudentInputs{
			ValidMember:     valid,
			CalcSelected:    calcSelected,
			AllAssessments:  assessments,
			CalcMethod:      calcMethodApplied,
			RawWeightMethod: weightMethodApplied,
			WrkWtMeth:       wrkWtMeth,
			TermFilter:      effectiveFilter.Term,
			Scores:          lookup,
			ModeConfig:      modeCfg,
		}

		result := ComputeStudentFinalMark(cs, in)
		perStudent = append(perStudent, StudentSummary{
			StudentID: stu.ID,
			FinalMark: result.FinalMark,
			Counts:    result.Counts,
		})
		perStudentCategories[stu.ID] = result.Categories
	}

	assessmentCounts := make([]int, cs.Len())
	for _, a := range calcSelected {
		if idx, ok := cs.Lookup(a.CategoryName); ok {
			assessmentCounts[idx]++
		}
	}

	perCategory := make([]CategoryAggregate, cs.Len())
	for i, c := range categories {
		values := make([]float64, 0, len(students))
		for _, stu := range students {
			if !validByStudent[stu.ID] {
				continue
			}
			cvs := perStudentCategories[stu.ID]
			if i < len(cvs) && cvs[i].HasData {
				values = append(values, *cvs[i].Value)
			}
		}

		agg := CategoryAggregate{Category: c, AssessmentCount: assessmentCounts[i]}
		if len(values) > 0 {
			var sum float64
			for _, v := range values {
				sum += v
			}
			avg := RoundOff1(sum / float64(len(values)))
			agg.ClassAvg = &avg

			if med, ok := WeightedMedian(values); ok {
				rounded := RoundOff1(med)
				agg.ClassMedian = &rounded
			}
			if mode, ok := WeightedMode(values); ok {
				rounded := RoundOff1(mode)
				agg.ClassMode = &rounded
			}
		}
		perCategory[i] = agg
	}

	return Summary{
		Class:                ClassInfo{ID: classID, Name: className},
		MarkSet:              ms,
		Filters:              effectiveFilter,
		Categories:           categories,
		Assessments:          filterSelected,
		PerAssessment:        perAssessment,
		PerCategory:          perCategory,
		PerStudent:           perStudent,
		PerStudentCategories: perStudentCategories,
		SettingsApplied: SettingsApplied{
			WeightMethodApplied: weightMethodApplied,
			CalcMethodApplied:   calcMethodApplied,
			WrkWtMeth:           wrkWtMeth,
			ModeConfig:          modeCfg,
		},
		Diagnostics: newDiagnostics(filterSelected, calcSelected, perStudent),
	}, nil
}

// AssessmentStatsOnly serves the calc.assessmentStats request method (spec
// §6). It runs the full AssembleSummary pipeline, per-student computation
// included, and returns only its per-assessment statistics.
func AssessmentStatsOnly(r store.Reader, classID, markSetID string, rawFilter *RawFilter) ([]AssessmentStat, error) {
	summary, err := AssembleSummary(r, classID, markSetID, rawFilter)
	if err != nil {
		return nil, err
	}
	return summary.PerAssessment, nil
}

// resolveAppliedSettings implements spec §4.8 step 2.
func resolveAppliedSettings(ms markbook.MarkSet, cs CategorySet) (calcMethodApplied markbook.CalcMethod, weightMethodApplied, wrkWtMeth markbook.WeightMethod) {
	calcMethodApplied = ms.CalcMethod
	if calcMethodApplied < markbook.CalcAverage || calcMethodApplied > markbook.CalcBlendedMedian {
		calcMethodApplied = markbook.CalcAverage
	}

	switch {
	case calcMethodApplied == markbook.CalcBlendedMode || calcMethodApplied == markbook.CalcBlendedMedian:
		weightMethodApplied = markbook.WeightCategory
	case ms.WeightMethod == markbook.WeightCategory && nonBonusCategoryWeightSum(cs) == 0:
		weightMethodApplied = markbook.WeightEntry
	default:
		weightMethodApplied = ms.WeightMethod
	}

	if weightMethodApplied == markbook.WeightCategory {
		wrkWtMeth = markbook.WeightCategory
	} else {
		wrkWtMeth = markbook.WeightEntry
	}

	return calcMethodApplied, weightMethodApplied, wrkWtMeth
}

func nonBonusCategoryWeightSum(cs CategorySet) float64 {
	var sum float64
	for i, c := range cs.Categories {
		if i == cs.BonusIdx {
			continue
		}
		sum += c.Weight
	}
	return sum
}
