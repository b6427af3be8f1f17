// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"testing"

	"github.com/markbookdev/markbookd/internal/markbook"
)

func TestCategorySetLookupDefaultsUncategorized(t *testing.T) {
	cs := NewCategorySet([]markbook.Category{
		{Name: "Uncategorized", Weight: 1},
		{Name: "Tests", Weight: 1},
	})
	idx, ok := cs.Lookup("")
	if !ok || idx != 0 {
		t.Errorf("Lookup(\"\") = %d, %v, want 0, true", idx, ok)
	}
	idx, ok = cs.Lookup("  Tests ")
	if !ok || idx != 1 {
		t.Errorf("Lookup(\"  Tests \") = %d, %v, want 1, true", idx, ok)
	}
	if _, ok := cs.Lookup("Nonexistent"); ok {
		t.Error("Lookup of an undeclared category should report ok=false")
	}
}

func TestCategorySetBonusIdx(t *testing.T) {
	cs := NewCategorySet([]markbook.Category{{Name: "Tests", Weight: 1}})
	if cs.BonusIdx != -1 {
		t.Errorf("BonusIdx = %d, want -1 with no BONUS category declared", cs.BonusIdx)
	}

	cs = NewCategorySet([]markbook.Category{{Name: "Tests", Weight: 1}, {Name: "BONUS", Weight: 10}})
	if cs.BonusIdx != 1 {
		t.Errorf("BonusIdx = %d, want 1", cs.BonusIdx)
	}
}

func TestWorkingWeight(t *testing.T) {
	c := markbook.Category{Weight: 30}
	if got := WorkingWeight(c, markbook.WeightEntry); got != 30 {
		t.Errorf("WorkingWeight(entry) = %v, want 30", got)
	}
	if got := WorkingWeight(c, markbook.WeightEqual); got != 1 {
		t.Errorf("WorkingWeight(equal, weight>0) = %v, want 1", got)
	}
	zero := markbook.Category{Weight: 0}
	if got := WorkingWeight(zero, markbook.WeightEqual); got != 0 {
		t.Errorf("WorkingWeight(equal, weight=0) = %v, want 0 (a disabled category stays disabled)", got)
	}
}
