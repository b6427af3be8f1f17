// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package markbook

import "strings"

// ScoreKind tags a ScoreState as NoMark, Zero, or Scored.
type ScoreKind int

const (
	NoMark ScoreKind = iota
	Zero
	Scored
)

// ScoreState is the three-valued score model from spec §3/§4.2. Value is
// only meaningful when Kind == Scored.
type ScoreState struct {
	Kind  ScoreKind
	Value float64
}

func NoMarkState() ScoreState { return ScoreState{Kind: NoMark} }
func ZeroState() ScoreState   { return ScoreState{Kind: Zero} }
func ScoredState(v float64) ScoreState { return ScoreState{Kind: Scored, Value: v} }

// Interpret maps a stored status plus raw value onto the three-valued
// score model, per spec §4.2:
//
//	"no_mark"     -> NoMark
//	"zero"        -> Zero
//	"scored"      -> Scored(rawValue ?? 0)
//	anything else -> Scored(rawValue) if present, else NoMark
func Interpret(status StoredStatus, rawValue *float64) ScoreState {
	switch strings.ToLower(string(status)) {
	case string(StatusNoMark):
		return NoMarkState()
	case string(StatusZero):
		return ZeroState()
	case string(StatusScored):
		if rawValue != nil {
			return ScoredState(*rawValue)
		}
		return ScoredState(0)
	default:
		if rawValue != nil {
			return ScoredState(*rawValue)
		}
		return NoMarkState()
	}
}

// InterpretLegacy reproduces the legacy-file raw-value convention named in
// spec §3: raw == 0 maps to NoMark, raw < 0 maps to Zero, raw > 0 maps to
// Scored. The calculation engine never calls this; it reads explicit
// stored statuses through Interpret.
func InterpretLegacy(raw float64) ScoreState {
	switch {
	case raw == 0:
		return NoMarkState()
	case raw < 0:
		return ZeroState()
	default:
		return ScoredState(raw)
	}
}

func (s ScoreState) IsNoMark() bool { return s.Kind == NoMark }
func (s ScoreState) IsZero() bool   { return s.Kind == Zero }
func (s ScoreState) IsScored() bool { return s.Kind == Scored }
