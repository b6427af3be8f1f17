// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"strings"

	"github.com/markbookdev/markbookd/internal/markbook"
)

// CategorySet indexes a mark set's declared categories by their
// normalized (trimmed, lower-cased) name, in declaration sort order. It is
// built once per summary computation and shared by the per-assessment and
// per-student forks of the pipeline.
type CategorySet struct {
	Categories []markbook.Category // in sort order
	indexByName map[string]int
	BonusIdx   int // -1 if no BONUS category declared
}

// NewCategorySet builds a CategorySet from a mark set's declared
// categories, which must already be ordered by sort order.
func NewCategorySet(categories []markbook.Category) CategorySet {
	cs := CategorySet{
		Categories:  categories,
		indexByName: make(map[string]int, len(categories)),
		BonusIdx:    -1,
	}
	for i, c := range categories {
		key := markbook.NormalizedName(c.Name)
		cs.indexByName[key] = i
		if markbook.IsBonus(c.Name) {
			cs.BonusIdx = i
		}
	}
	return cs
}

// effectiveCategoryName defaults an assessment's stored category to
// Uncategorized, per spec §4.6 exclusion rule 3.
func effectiveCategoryName(stored string) string {
	if strings.TrimSpace(stored) == "" {
		return markbook.UncategorizedName
	}
	return stored
}

// Lookup returns the category index for an assessment's (defaulted)
// category name, and whether it is present among the declared categories.
func (cs CategorySet) Lookup(assessmentCategoryName string) (int, bool) {
	name := effectiveCategoryName(assessmentCategoryName)
	idx, ok := cs.indexByName[markbook.NormalizedName(name)]
	return idx, ok
}

func (cs CategorySet) Len() int { return len(cs.Categories) }

// WorkingWeight returns a category's effective weight for weighting
// purposes: the declared weight, or 1 if weightMethod is WeightEqual and
// the declared weight is > 0 (spec §4.6's wrkCatWt).
func WorkingWeight(c markbook.Category, weightMethod markbook.WeightMethod) float64 {
	if weightMethod == markbook.WeightEqual && c.Weight > 0 {
		return 1
	}
	return c.Weight
}
