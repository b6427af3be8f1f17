// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"github.com/google/uuid"

	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/markbook"
)

// CreateClass inserts a new class with a freshly generated opaque id, per
// spec §3 ("Class ... Identified by a stable opaque identifier"). CRUD is
// out of the core engine's scope (spec §1), but the store still needs an
// id strategy for the handful of entry points that create top-level
// entities; google/uuid is the id strategy SPEC_FULL.md's domain stack
// commits to.
func (s *SQLiteStore) CreateClass(name string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec(`INSERT INTO classes (id, name) VALUES (?, ?)`, id, name); err != nil {
		return "", calcerr.DBQueryFailed("creating class", err)
	}
	return id, nil
}

// CreateMarkSet inserts a new mark set owned by classID, defaulting to
// WeightEntry/CalcAverage per spec §3, at the given sort order.
func (s *SQLiteStore) CreateMarkSet(classID, code, description string, sortOrder int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO mark_sets (id, class_id, code, description, sort_order, weight_method, calc_method)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, classID, code, description, sortOrder, markbook.WeightEntry, markbook.CalcAverage,
	)
	if err != nil {
		return "", calcerr.DBQueryFailed("creating mark set", err)
	}
	return id, nil
}

// CreateStudent inserts a new student in classID at the given sort order,
// with the default "TBA" membership mask (spec §3: "default-member" until
// explicitly restricted).
func (s *SQLiteStore) CreateStudent(classID, lastName, firstName string, sortOrder int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO students (id, class_id, last_name, first_name, sort_order, active, mask)
		 VALUES (?, ?, ?, ?, ?, 1, 'TBA')`,
		id, classID, lastName, firstName, sortOrder,
	)
	if err != nil {
		return "", calcerr.DBQueryFailed("creating student", err)
	}
	return id, nil
}
