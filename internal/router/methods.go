// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package router

import (
	"encoding/json"

	"github.com/markbookdev/markbookd/internal/calc"
	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/store"
)

// filterParams mirrors the wire shape of the optional filter bundle from
// spec §6: each key accepts null, a concrete value, or "ALL".
type filterParams struct {
	Term         any `json:"term"`
	CategoryName any `json:"categoryName"`
	TypesMask    *int `json:"typesMask"`
}

func (f *filterParams) toRawFilter() *calc.RawFilter {
	if f == nil {
		return nil
	}
	return &calc.RawFilter{Term: f.Term, CategoryName: f.CategoryName, TypesMask: f.TypesMask}
}

type summaryParams struct {
	ClassID   string        `json:"classId"`
	MarkSetID string        `json:"markSetId"`
	Filters   *filterParams `json:"filters"`
}

// NewRegistry builds the method registry named in spec §6:
// calc.assessmentStats, calc.markSetSummary, markset.settings.update.
func NewRegistry(r store.Reader, w store.Writer) Registry {
	return Registry{
		"calc.assessmentStats": func(raw json.RawMessage) (any, error) {
			var p summaryParams
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, calcerr.BadParams("invalid params", map[string]any{"cause": err.Error()})
			}
			stats, err := calc.AssessmentStatsOnly(r, p.ClassID, p.MarkSetID, p.Filters.toRawFilter())
			if err != nil {
				return nil, err
			}
			return map[string]any{"assessments": stats}, nil
		},
		"calc.markSetSummary": func(raw json.RawMessage) (any, error) {
			var p summaryParams
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, calcerr.BadParams("invalid params", map[string]any{"cause": err.Error()})
			}
			return calc.AssembleSummary(r, p.ClassID, p.MarkSetID, p.Filters.toRawFilter())
		},
		"markset.settings.update": func(raw json.RawMessage) (any, error) {
			var p struct {
				ClassID   string               `json:"classId"`
				MarkSetID string               `json:"markSetId"`
				Patch     calc.RawSettingsPatch `json:"patch"`
			}
			if err := json.Unmarshal(raw, &p); err != nil {
				return nil, calcerr.BadParams("invalid params", map[string]any{"cause": err.Error()})
			}
			patch, err := calc.ParseSettingsPatch(p.Patch)
			if err != nil {
				return nil, err
			}
			if err := w.UpdateMarkSetSettings(p.ClassID, p.MarkSetID, patch); err != nil {
				return nil, err
			}
			return map[string]any{"ok": true}, nil
		},
	}
}
