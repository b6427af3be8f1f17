// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build debug

package calc

import "github.com/markbookdev/markbookd/internal/markbook"

func buildDiagnostics(filterSelected, calcSelected []markbook.Assessment, perStudent []StudentSummary) *Diagnostics {
	d := &Diagnostics{
		FilterSelectedCount: len(filterSelected),
		CalcSelectedCount:   len(calcSelected),
	}
	for _, s := range perStudent {
		if s.FinalMark == nil {
			d.NullFinalMarkCount++
		} else if almostEqual(*s.FinalMark, 0) {
			d.ZeroFinalMarkCount++
		}
	}
	return d
}
