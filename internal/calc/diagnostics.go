// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "github.com/markbookdev/markbookd/internal/markbook"

// Diagnostics is the parity-diagnostics block attached to a summary in
// debug builds only, per spec §4.8 step 9 / §9 "Diagnostics in debug
// builds only". Its presence is never treated as a contract by callers —
// it exists to speed up investigating a reported mismatch against the
// legacy engine.
type Diagnostics struct {
	FilterSelectedCount int
	CalcSelectedCount   int
	NullFinalMarkCount  int
	ZeroFinalMarkCount  int
}

// newDiagnostics is implemented twice, gated by the "debug" build tag: see
// diagnostics_debug.go and diagnostics_release.go.
func newDiagnostics(filterSelected, calcSelected []markbook.Assessment, perStudent []StudentSummary) *Diagnostics {
	return buildDiagnostics(filterSelected, calcSelected, perStudent)
}
