// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store declares the narrow read (and config-write) surface the
// calculation engine and mode-config loader consume, per spec §6. The
// sqlx/squirrel/sqlite3-backed implementation lives in sqlite.go;
// internal/calc depends only on this interface, never on the concrete
// store, so the engine stays a pure function of whatever satisfies it.
package store

import "github.com/markbookdev/markbookd/internal/markbook"

// ScoreKey composite-keys a bulk score lookup result, per spec §6 "Bulk
// load scores by (assessment-id set × student-id set)".
type ScoreKey struct {
	AssessmentID string
	StudentID    string
}

// Reader is the store read interface required by the core, per spec §6.
type Reader interface {
	// GetClassName looks up a class's display name by id. ok is false if
	// no such class exists.
	GetClassName(classID string) (name string, ok bool, err error)

	// GetMarkSet looks up a mark set's fields by (markSetID, classID). ok
	// is false if no such mark set exists in that class.
	GetMarkSet(classID, markSetID string) (markbook.MarkSet, bool, error)

	// ListStudents returns a class's students ordered by sort order.
	ListStudents(classID string) ([]markbook.Student, error)

	// ListCategories returns a mark set's categories ordered by sort
	// order.
	ListCategories(markSetID string) ([]markbook.Category, error)

	// ListAssessments returns a mark set's assessments ordered by index.
	ListAssessments(markSetID string) ([]markbook.Assessment, error)

	// BulkLoadScores loads every stored score for the given (assessment,
	// student) pairs in one round trip, per spec §4.8 step 4. Pairs with
	// no stored row are simply absent from the result map.
	BulkLoadScores(pairs []ScoreKey) (map[ScoreKey]markbook.Score, error)

	// GetConfigValue reads a free-form JSON configuration value by string
	// key, scoped to a class. ok is false if the key is unset.
	GetConfigValue(classID, key string) ([]byte, bool, error)
}

// SettingsPatch is the mutable subset of a mark set's settings accepted by
// markset.settings.update, per spec §6. Nil fields are left unchanged.
type SettingsPatch struct {
	FullCode     *string
	Room         *string
	Day          *string
	Period       *string
	WeightMethod *markbook.WeightMethod
	CalcMethod   *markbook.CalcMethod
}

// Writer is the narrow store write surface markset.settings.update needs.
// It is deliberately separate from Reader: the calc engine never writes.
type Writer interface {
	UpdateMarkSetSettings(classID, markSetID string, patch SettingsPatch) error
}
