// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package configschema

import "encoding/json"

// ModeLevelsBlob is the decoded shape of a user_cfg.mode_levels /
// user_cfg.override.mode_levels blob.
type ModeLevelsBlob struct {
	ActiveLevels int   `json:"activeLevels"`
	Vals         []int `json:"vals"`
}

// RoffBlob is the decoded shape of a user_cfg.roff /
// user_cfg.override.roff blob.
type RoffBlob struct {
	Roff bool `json:"roff"`
}

// DecodeModeLevels validates raw against the mode-levels schema and
// decodes it. Callers should treat a non-nil error as "blob absent" and
// fall through to defaults, per spec §4.5/§7.
func DecodeModeLevels(raw []byte) (ModeLevelsBlob, error) {
	var v ModeLevelsBlob
	if err := Validate(ModeLevels, raw); err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeRoff validates raw against the roff schema and decodes it.
func DecodeRoff(raw []byte) (RoffBlob, error) {
	var v RoffBlob
	if err := Validate(Roff, raw); err != nil {
		return v, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, err
	}
	return v, nil
}
