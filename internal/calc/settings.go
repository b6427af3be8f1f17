// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	"github.com/markbookdev/markbookd/internal/calcerr"
	"github.com/markbookdev/markbookd/internal/markbook"
	"github.com/markbookdev/markbookd/internal/store"
)

// RawSettingsPatch is the optional patch bundle accepted by
// markset.settings.update, per spec §6: any of fullCode/room/day/period/
// weightMethod/calcMethod, each nil meaning "leave unchanged".
type RawSettingsPatch struct {
	FullCode     *string
	Room         *string
	Day          *string
	Period       *string
	WeightMethod *int
	CalcMethod   *int
}

// ParseSettingsPatch validates a raw settings patch against spec §6's
// range checks (weightMethod ∈ [0,2], calcMethod ∈ [0,4]) and converts it
// to the store's typed patch shape. A patch with no fields set is valid
// and simply a no-op.
func ParseSettingsPatch(raw RawSettingsPatch) (store.SettingsPatch, error) {
	patch := store.SettingsPatch{
		FullCode: raw.FullCode,
		Room:     raw.Room,
		Day:      raw.Day,
		Period:   raw.Period,
	}

	if raw.WeightMethod != nil {
		wm := markbook.WeightMethod(*raw.WeightMethod)
		if wm < markbook.WeightEntry || wm > markbook.WeightEqual {
			return store.SettingsPatch{}, calcerr.BadParams("weightMethod out of range", map[string]any{"weightMethod": *raw.WeightMethod})
		}
		patch.WeightMethod = &wm
	}

	if raw.CalcMethod != nil {
		cm := markbook.CalcMethod(*raw.CalcMethod)
		if cm < markbook.CalcAverage || cm > markbook.CalcBlendedMedian {
			return store.SettingsPatch{}, calcerr.BadParams("calcMethod out of range", map[string]any{"calcMethod": *raw.CalcMethod})
		}
		patch.CalcMethod = &cm
	}

	return patch, nil
}
