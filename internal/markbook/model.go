// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package markbook holds the data model shared by the calculation engine
// and the workspace store: classes, students, mark sets, categories,
// assessments and scores, per spec §3. The core never mutates these during
// computation; it only reads them through store.Reader (see internal/store).
package markbook

import (
	"strings"
	"time"
)

// WeightMethod is a mark set's weighting strategy.
type WeightMethod int

const (
	WeightEntry    WeightMethod = 0
	WeightCategory WeightMethod = 1
	WeightEqual    WeightMethod = 2
)

// CalcMethod is a mark set's final-mark calculation strategy.
type CalcMethod int

const (
	CalcAverage      CalcMethod = 0
	CalcMedian       CalcMethod = 1
	CalcMode         CalcMethod = 2
	CalcBlendedMode  CalcMethod = 3
	CalcBlendedMedian CalcMethod = 4
)

// BonusCategoryName is the case-insensitive, trimmed category name that
// receives special handling: excluded from the overall denominator and,
// in CalcAverage only, added on top as a bonus. There is deliberately no
// separate boolean flag in the model; the name is the key.
const BonusCategoryName = "bonus"

// UncategorizedName is the default category label used when an
// assessment has no stored category name (empty or blank). A stored name
// that matches no declared category is not defaulted.
const UncategorizedName = "Uncategorized"

// Class is identified by a stable opaque identifier (a UUID string) and
// owns students, mark sets, and a free-form config blob store keyed by
// string (see store.Reader.GetConfigValue).
type Class struct {
	ID   string
	Name string
}

// Student belongs to exactly one class. SortOrder is dense and contiguous
// 0..n-1 within the class; reorder operations must preserve that density.
// Mask is the raw membership mask string: "", "TBA" (case-insensitive), or
// a string of '0'/'1' characters indexed by a mark set's SortOrder.
type Student struct {
	ID          string
	ClassID     string
	LastName    string
	FirstName   string
	SortOrder   int
	Active      bool
	Mask        string
}

// MarkSet is a single gradebook sheet within a class.
type MarkSet struct {
	ID           string
	ClassID      string
	Code         string
	Description  string
	FullCode     string
	Room         string
	Day          string
	Period       string
	SortOrder    int
	WeightMethod WeightMethod
	CalcMethod   CalcMethod
}

// Category groups assessments within a mark set. Name is the
// case-insensitive key within a mark set; Weight is >= 0.
type Category struct {
	MarkSetID string
	Name      string
	Weight    float64
	SortOrder int
}

// NormalizedName returns the trimmed, lower-cased comparison key for a
// category name.
func NormalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsBonus reports whether name is the special BONUS category, after
// trimming and case-folding.
func IsBonus(name string) bool {
	return NormalizedName(name) == BonusCategoryName
}

// Assessment is a single gradeable item within a mark set.
type Assessment struct {
	ID           string
	MarkSetID    string
	Idx          int
	Date         *time.Time
	CategoryName string // "" if none declared
	Title        string
	Term         *int
	LegacyType   *int // nil if none; else >= 0
	Weight       float64
	OutOf        float64 // 0 means "percentage not defined"
}

// StoredStatus is the status string as persisted by the store.
type StoredStatus string

const (
	StatusNoMark StoredStatus = "no_mark"
	StatusZero   StoredStatus = "zero"
	StatusScored StoredStatus = "scored"
)

// Score is composite-keyed on (AssessmentID, StudentID).
type Score struct {
	AssessmentID string
	StudentID    string
	Status       StoredStatus
	RawValue     *float64
}
