// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"strings"

	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/markbook"
)

// RawFilter is the optional filter bundle accepted over the
// request/response surface (spec §4.4/§6). Each field accepts nil, or the
// sentinel "ALL" (case-insensitive for strings), as "no constraint".
type RawFilter struct {
	Term         any // nil, int, or the string "ALL"
	CategoryName any // nil, string, or "ALL"
	TypesMask    *int
}

// Filter is a RawFilter after parsing: nil pointers/strings mean "no
// constraint".
type Filter struct {
	Term         *int
	CategoryName *string // already trimmed + lower-cased
	TypesMask    *int
}

// ParseFilter parses an optional filter bundle, applying the "ALL"
// sentinel and type checks from spec §4.4. A nil raw filter is treated as
// an empty filter (no constraints).
func ParseFilter(raw *RawFilter) (Filter, error) {
	if raw == nil {
		return Filter{}, nil
	}

	var f Filter

	switch v := raw.Term.(type) {
	case nil:
		// no constraint
	case string:
		if !strings.EqualFold(v, "ALL") {
			return Filter{}, calcerr.BadParams("term must be an integer or \"ALL\"", map[string]any{"term": v})
		}
	case int:
		t := v
		f.Term = &t
	case int32:
		t := int(v)
		f.Term = &t
	case int64:
		t := int(v)
		f.Term = &t
	case float64:
		// JSON numbers decode as float64; accept only integral values.
		if v != float64(int(v)) {
			return Filter{}, calcerr.BadParams("term must be an integer or \"ALL\"", map[string]any{"term": v})
		}
		t := int(v)
		f.Term = &t
	default:
		return Filter{}, calcerr.BadParams("term must be an integer or \"ALL\"", map[string]any{"term": v})
	}

	switch v := raw.CategoryName.(type) {
	case nil:
		// no constraint
	case string:
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed != "" && trimmed != "all" {
			f.CategoryName = &trimmed
		}
	default:
		return Filter{}, calcerr.BadParams("categoryName must be a string or \"ALL\"", map[string]any{"categoryName": v})
	}

	if raw.TypesMask != nil {
		m := *raw.TypesMask
		f.TypesMask = &m
	}

	return f, nil
}

// matchesType reports whether an assessment's legacy type satisfies a
// types-mask filter: legacyType must be in [0,62] and bit
// (1 << legacyType) must be set in the mask. Any negative or >= 63 type is
// excluded. A nil typesMask always matches.
func matchesType(legacyType *int, typesMask *int) bool {
	if typesMask == nil {
		return true
	}
	if legacyType == nil {
		return false
	}
	t := *legacyType
	if t < 0 || t > 62 {
		return false
	}
	return (*typesMask)&(1<<uint(t)) != 0
}

// matchesCategory reports whether an assessment's category (defaulted to
// Uncategorized) satisfies a category-name filter. A nil filter always
// matches.
func matchesCategory(categoryName string, filter *string) bool {
	if filter == nil {
		return true
	}
	name := categoryName
	if strings.TrimSpace(name) == "" {
		name = markbook.UncategorizedName
	}
	return strings.ToLower(strings.TrimSpace(name)) == *filter
}

// matchesTerm reports whether an assessment's term satisfies a term
// filter. A nil filter always matches; an assessment with no term never
// matches a non-nil filter.
func matchesTerm(term *int, filter *int) bool {
	if filter == nil {
		return true
	}
	if term == nil {
		return false
	}
	return *term == *filter
}

// ApplyFilter returns the subset of assessments matching f, per the
// per-assessment-statistics view of spec §4.4 (the raw filter set, no
// blended-method adjustment).
func ApplyFilter(assessments []markbook.Assessment, f Filter) []markbook.Assessment {
	out := make([]markbook.Assessment, 0, len(assessments))
	for _, a := range assessments {
		if matchesTerm(a.Term, f.Term) && matchesCategory(a.CategoryName, f.CategoryName) && matchesType(a.LegacyType, f.TypesMask) {
			out = append(out, a)
		}
	}
	return out
}

// EffectiveCalcFilter applies the blended-method adjustment from spec
// §4.4: for calc methods 3/4 (blended), the category filter is forcibly
// cleared before the filter is used for the calculation view. The matching
// weight-method override (forced to WeightCategory) is applied separately,
// by resolveAppliedSettings in assembler.go.
func EffectiveCalcFilter(f Filter, calcMethod markbook.CalcMethod) Filter {
	if calcMethod == markbook.CalcBlendedMode || calcMethod == markbook.CalcBlendedMedian {
		f.CategoryName = nil
	}
	return f
}
