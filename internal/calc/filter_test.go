// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"testing"

	"github.com/markbookdev/markbookd/internal/markbook"
)

func TestParseFilterAllSentinel(t *testing.T) {
	raw := &RawFilter{Term: "all", CategoryName: "ALL"}
	f, err := ParseFilter(raw)
	if err != nil {
		t.Fatalf("ParseFilter returned error: %v", err)
	}
	if f.Term != nil || f.CategoryName != nil {
		t.Errorf("ParseFilter(%+v) = %+v, want zero-value Filter", raw, f)
	}
}

func TestParseFilterNil(t *testing.T) {
	f, err := ParseFilter(nil)
	if err != nil || f.Term != nil || f.CategoryName != nil || f.TypesMask != nil {
		t.Errorf("ParseFilter(nil) = %+v, %v, want empty Filter, nil", f, err)
	}
}

func TestParseFilterTermFromJSONNumber(t *testing.T) {
	raw := &RawFilter{Term: float64(2)}
	f, err := ParseFilter(raw)
	if err != nil {
		t.Fatalf("ParseFilter returned error: %v", err)
	}
	if f.Term == nil || *f.Term != 2 {
		t.Errorf("f.Term = %v, want 2", f.Term)
	}
}

func TestParseFilterTermNonIntegralFloatRejected(t *testing.T) {
	_, err := ParseFilter(&RawFilter{Term: 1.5})
	if err == nil {
		t.Fatal("expected an error for a non-integral term")
	}
}

func TestParseFilterCategoryNameNormalized(t *testing.T) {
	f, err := ParseFilter(&RawFilter{CategoryName: "  Homework  "})
	if err != nil {
		t.Fatalf("ParseFilter returned error: %v", err)
	}
	if f.CategoryName == nil || *f.CategoryName != "homework" {
		t.Errorf("f.CategoryName = %v, want \"homework\"", f.CategoryName)
	}
}

func TestParseFilterRejectsWrongTypes(t *testing.T) {
	if _, err := ParseFilter(&RawFilter{Term: true}); err == nil {
		t.Error("expected an error for a non-integer, non-string term")
	}
	if _, err := ParseFilter(&RawFilter{CategoryName: 5}); err == nil {
		t.Error("expected an error for a non-string categoryName")
	}
}

func TestMatchesTypeMask(t *testing.T) {
	legacyType := 3
	mask := 1 << 3
	if !matchesType(&legacyType, &mask) {
		t.Error("expected bit 3 set in the mask to match legacyType 3")
	}
	otherMask := 1 << 4
	if matchesType(&legacyType, &otherMask) {
		t.Error("expected bit 4 mask to not match legacyType 3")
	}
	if !matchesType(&legacyType, nil) {
		t.Error("nil mask should always match")
	}
	if matchesType(nil, &mask) {
		t.Error("nil legacyType should never match a non-nil mask")
	}
	outOfRange := 63
	if matchesType(&outOfRange, &mask) {
		t.Error("legacyType 63 is out of range and should never match")
	}
}

func TestApplyFilterCombinesConstraints(t *testing.T) {
	term1 := 1
	assessments := []markbook.Assessment{
		{ID: "a", CategoryName: "Tests", Term: &term1},
		{ID: "b", CategoryName: "Homework", Term: &term1},
		{ID: "c", CategoryName: "Tests", Term: nil},
	}
	catFilter := "tests"
	f := Filter{Term: &term1, CategoryName: &catFilter}
	got := ApplyFilter(assessments, f)
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("ApplyFilter = %+v, want only assessment \"a\"", got)
	}
}

func TestEffectiveCalcFilterClearsCategoryForBlended(t *testing.T) {
	cat := "tests"
	f := Filter{CategoryName: &cat}

	blendedMode := EffectiveCalcFilter(f, markbook.CalcBlendedMode)
	if blendedMode.CategoryName != nil {
		t.Error("expected category filter cleared for CalcBlendedMode")
	}

	blendedMedian := EffectiveCalcFilter(f, markbook.CalcBlendedMedian)
	if blendedMedian.CategoryName != nil {
		t.Error("expected category filter cleared for CalcBlendedMedian")
	}

	unaffected := EffectiveCalcFilter(f, markbook.CalcAverage)
	if unaffected.CategoryName == nil || *unaffected.CategoryName != cat {
		t.Error("expected category filter preserved for CalcAverage")
	}
}
