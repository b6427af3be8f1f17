// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package store

import (
	"database/sql"
	"encoding/json"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/markbook"
)

// SQLiteStore is the workspace store's sqlx/squirrel-backed implementation
// of Reader and Writer, per spec §6. A single *sqlx.DB is held for the
// lifetime of the process (spec §5: "store is exclusively held by the
// process").
type SQLiteStore struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

// Open opens (but does not migrate — see internal/migrate) a sqlite
// database at dsn.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, calcerr.DBQueryFailed("opening store", err)
	}
	db.SetMaxOpenConns(1) // sqlite3 driver + single-held-connection model, spec §5
	return &SQLiteStore{db: db, qb: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) GetClassName(classID string) (string, bool, error) {
	var name string
	err := s.db.Get(&name, `SELECT name FROM classes WHERE id = ?`, classID)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, calcerr.DBQueryFailed("querying class name", err)
	}
	return name, true, nil
}

type markSetRow struct {
	ID           string  `db:"id"`
	ClassID      string  `db:"class_id"`
	Code         string  `db:"code"`
	Description  string  `db:"description"`
	FullCode     *string `db:"full_code"`
	Room         *string `db:"room"`
	Day          *string `db:"day"`
	Period       *string `db:"period"`
	SortOrder    int     `db:"sort_order"`
	WeightMethod int     `db:"weight_method"`
	CalcMethod   int     `db:"calc_method"`
}

func (s *SQLiteStore) GetMarkSet(classID, markSetID string) (markbook.MarkSet, bool, error) {
	var row markSetRow
	err := s.db.Get(&row, `SELECT id, class_id, code, description, full_code, room, day, period, sort_order, weight_method, calc_method
		FROM mark_sets WHERE id = ? AND class_id = ?`, markSetID, classID)
	if err == sql.ErrNoRows {
		return markbook.MarkSet{}, false, nil
	}
	if err != nil {
		return markbook.MarkSet{}, false, calcerr.DBQueryFailed("querying mark set", err)
	}

	ms := markbook.MarkSet{
		ID:           row.ID,
		ClassID:      row.ClassID,
		Code:         row.Code,
		Description:  row.Description,
		SortOrder:    row.SortOrder,
		WeightMethod: markbook.WeightMethod(row.WeightMethod),
		CalcMethod:   markbook.CalcMethod(row.CalcMethod),
	}
	if row.FullCode != nil {
		ms.FullCode = *row.FullCode
	}
	if row.Room != nil {
		ms.Room = *row.Room
	}
	if row.Day != nil {
		ms.Day = *row.Day
	}
	if row.Period != nil {
		ms.Period = *row.Period
	}
	return ms, true, nil
}

type studentRow struct {
	ID        string `db:"id"`
	ClassID   string `db:"class_id"`
	LastName  string `db:"last_name"`
	FirstName string `db:"first_name"`
	SortOrder int    `db:"sort_order"`
	Active    bool   `db:"active"`
	Mask      *string `db:"mask"`
}

func (s *SQLiteStore) ListStudents(classID string) ([]markbook.Student, error) {
	query, args, err := s.qb.Select("id, class_id, last_name, first_name, sort_order, active, mask").
		From("students").Where(sq.Eq{"class_id": classID}).OrderBy("sort_order").ToSql()
	if err != nil {
		return nil, calcerr.DBQueryFailed("building students query", err)
	}

	var rows []studentRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, calcerr.DBQueryFailed("querying students", err)
	}

	out := make([]markbook.Student, len(rows))
	for i, r := range rows {
		mask := "TBA"
		if r.Mask != nil {
			mask = *r.Mask
		}
		out[i] = markbook.Student{
			ID: r.ID, ClassID: r.ClassID, LastName: r.LastName, FirstName: r.FirstName,
			SortOrder: r.SortOrder, Active: r.Active, Mask: mask,
		}
	}
	return out, nil
}

type categoryRow struct {
	MarkSetID string   `db:"mark_set_id"`
	Name      string   `db:"name"`
	Weight    *float64 `db:"weight"`
	SortOrder int      `db:"sort_order"`
}

func (s *SQLiteStore) ListCategories(markSetID string) ([]markbook.Category, error) {
	query, args, err := s.qb.Select("mark_set_id, name, weight, sort_order").
		From("categories").Where(sq.Eq{"mark_set_id": markSetID}).OrderBy("sort_order").ToSql()
	if err != nil {
		return nil, calcerr.DBQueryFailed("building categories query", err)
	}

	var rows []categoryRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, calcerr.DBQueryFailed("querying categories", err)
	}

	out := make([]markbook.Category, len(rows))
	for i, r := range rows {
		var weight float64
		if r.Weight != nil {
			weight = *r.Weight
		}
		out[i] = markbook.Category{MarkSetID: r.MarkSetID, Name: r.Name, Weight: weight, SortOrder: r.SortOrder}
	}
	return out, nil
}

type assessmentRow struct {
	ID           string   `db:"id"`
	MarkSetID    string   `db:"mark_set_id"`
	Idx          int      `db:"idx"`
	Date         *string  `db:"date"`
	CategoryName *string  `db:"category_name"`
	Title        string   `db:"title"`
	Term         *int     `db:"term"`
	LegacyType   *int     `db:"legacy_type"`
	Weight       *float64 `db:"weight"`
	OutOf        *float64 `db:"out_of"`
}

func (s *SQLiteStore) ListAssessments(markSetID string) ([]markbook.Assessment, error) {
	query, args, err := s.qb.Select("id, mark_set_id, idx, date, category_name, title, term, legacy_type, weight, out_of").
		From("assessments").Where(sq.Eq{"mark_set_id": markSetID}).OrderBy("idx").ToSql()
	if err != nil {
		return nil, calcerr.DBQueryFailed("building assessments query", err)
	}

	var rows []assessmentRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, calcerr.DBQueryFailed("querying assessments", err)
	}

	out := make([]markbook.Assessment, len(rows))
	for i, r := range rows {
		a := markbook.Assessment{
			ID: r.ID, MarkSetID: r.MarkSetID, Idx: r.Idx, Title: r.Title,
			Term: r.Term, LegacyType: r.LegacyType, Weight: 1,
		}
		if r.Date != nil {
			if t, err := time.Parse(time.RFC3339, *r.Date); err == nil {
				a.Date = &t
			}
		}
		if r.CategoryName != nil {
			a.CategoryName = *r.CategoryName
		}
		if r.Weight != nil {
			a.Weight = *r.Weight
		}
		if r.OutOf != nil {
			a.OutOf = *r.OutOf
		}
		out[i] = a
	}
	return out, nil
}

type scoreRow struct {
	AssessmentID string   `db:"assessment_id"`
	StudentID    string   `db:"student_id"`
	Status       string   `db:"status"`
	RawValue     *float64 `db:"raw_value"`
}

// BulkLoadScores loads every stored score across the assessment/student
// pairs in one query, built with squirrel's dynamic IN(...) clauses rather
// than one query per pair (spec §4.8 step 4).
func (s *SQLiteStore) BulkLoadScores(pairs []ScoreKey) (map[ScoreKey]markbook.Score, error) {
	out := make(map[ScoreKey]markbook.Score, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	assessmentIDs := make(map[string]struct{}, len(pairs))
	studentIDs := make(map[string]struct{}, len(pairs))
	for _, p := range pairs {
		assessmentIDs[p.AssessmentID] = struct{}{}
		studentIDs[p.StudentID] = struct{}{}
	}

	query, args, err := s.qb.Select("assessment_id, student_id, status, raw_value").
		From("scores").
		Where(sq.Eq{"assessment_id": keys(assessmentIDs)}).
		Where(sq.Eq{"student_id": keys(studentIDs)}).
		ToSql()
	if err != nil {
		return nil, calcerr.DBQueryFailed("building scores query", err)
	}

	var rows []scoreRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, calcerr.DBQueryFailed("querying scores", err)
	}

	for _, r := range rows {
		out[ScoreKey{AssessmentID: r.AssessmentID, StudentID: r.StudentID}] = markbook.Score{
			AssessmentID: r.AssessmentID,
			StudentID:    r.StudentID,
			Status:       markbook.StoredStatus(r.Status),
			RawValue:     r.RawValue,
		}
	}
	return out, nil
}

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func (s *SQLiteStore) GetConfigValue(classID, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.db.Get(&raw, `SELECT value FROM config_kv WHERE class_id = ? AND key = ?`, classID, key)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, calcerr.DBQueryFailed("querying config value", err)
	}
	return raw, true, nil
}

// SetConfigValue writes a free-form JSON configuration value, replacing
// any existing value for (classID, key). Not part of Reader or Writer;
// UpdateMarkSetSettings does not go through it.
func (s *SQLiteStore) SetConfigValue(classID, key string, value json.RawMessage) error {
	_, err := s.db.Exec(`INSERT INTO config_kv (class_id, key, value) VALUES (?, ?, ?)
		ON CONFLICT (class_id, key) DO UPDATE SET value = excluded.value`, classID, key, []byte(value))
	if err != nil {
		return calcerr.DBQueryFailed("writing config value", err)
	}
	return nil
}

// UpdateMarkSetSettings applies a settings patch, building the UPDATE
// statement dynamically from the patch's present fields with squirrel, per
// SPEC_FULL.md's domain-stack wiring.
func (s *SQLiteStore) UpdateMarkSetSettings(classID, markSetID string, patch SettingsPatch) error {
	b := s.qb.Update("mark_sets").Where(sq.Eq{"id": markSetID, "class_id": classID})

	set := false
	if patch.FullCode != nil {
		b = b.Set("full_code", *patch.FullCode)
		set = true
	}
	if patch.Room != nil {
		b = b.Set("room", *patch.Room)
		set = true
	}
	if patch.Day != nil {
		b = b.Set("day", *patch.Day)
		set = true
	}
	if patch.Period != nil {
		b = b.Set("period", *patch.Period)
		set = true
	}
	if patch.WeightMethod != nil {
		b = b.Set("weight_method", int(*patch.WeightMethod))
		set = true
	}
	if patch.CalcMethod != nil {
		b = b.Set("calc_method", int(*patch.CalcMethod))
		set = true
	}
	if !set {
		return nil
	}

	query, args, err := b.ToSql()
	if err != nil {
		return calcerr.DBQueryFailed("building settings update", err)
	}
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return calcerr.DBQueryFailed("updating mark set settings", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return calcerr.DBQueryFailed("checking settings update result", err)
	}
	if n == 0 {
		return calcerr.NotFound("mark set not found", map[string]any{"markSetId": markSetID})
	}
	return nil
}
