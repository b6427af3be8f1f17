// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import (
	cclog "github.com/markbookdev/markbookd/internal/cclog"
	"github.com/markbookdev/markbookd/internal/configschema"
)

const (
	maxModeLevels     = 21
	modeLevelValsSize = 22
)

// ModeConfig holds per-workspace mode level thresholds and the rounding
// flag, per spec §3/§4.5.
type ModeConfig struct {
	ActiveLevels int
	LevelVals    [modeLevelValsSize]int
	Roff         bool
}

// DefaultModeConfig returns the engine's built-in defaults: activeLevels=4,
// thresholds=[0,50,60,70,80,...0], roff=true.
func DefaultModeConfig() ModeConfig {
	cfg := ModeConfig{ActiveLevels: 4, Roff: true}
	cfg.LevelVals[0] = 0
	cfg.LevelVals[1] = 50
	cfg.LevelVals[2] = 60
	cfg.LevelVals[3] = 70
	cfg.LevelVals[4] = 80
	return cfg
}

// ConfigBlobReader is the narrow slice of store.Reader the mode config
// loader needs: free-form JSON configuration lookup by key (spec §6).
type ConfigBlobReader interface {
	GetConfigValue(classID, key string) ([]byte, bool, error)
}

// LoadModeConfig loads a workspace's mode level thresholds and rounding
// flag, per spec §4.5. Lookup order is
// user_cfg.override.mode_levels, then user_cfg.mode_levels (analogously
// for roff); any missing or invalid piece falls back to DefaultModeConfig.
func LoadModeConfig(store ConfigBlobReader, classID string) (ModeConfig, error) {
	cfg := DefaultModeConfig()

	if raw, ok, err := lookupBlob(store, classID, "user_cfg.override.mode_levels", "user_cfg.mode_levels"); err != nil {
		return ModeConfig{}, err
	} else if ok {
		applyModeLevels(&cfg, raw)
	}

	if raw, ok, err := lookupBlob(store, classID, "user_cfg.override.roff", "user_cfg.roff"); err != nil {
		return ModeConfig{}, err
	} else if ok {
		applyRoff(&cfg, raw)
	}

	return cfg, nil
}

func lookupBlob(store ConfigBlobReader, classID string, keys ...string) ([]byte, bool, error) {
	for _, k := range keys {
		raw, ok, err := store.GetConfigValue(classID, k)
		if err != nil {
			return nil, false, err
		}
		if ok && len(raw) > 0 {
			return raw, true, nil
		}
	}
	return nil, false, nil
}

func applyModeLevels(cfg *ModeConfig, raw []byte) {
	v, err := configschema.DecodeModeLevels(raw)
	if err != nil {
		cclog.ComponentWarn("Calc", "ignoring invalid mode_levels blob:", err.Error())
		return
	}
	active := v.ActiveLevels
	if active < 1 {
		active = 1
	}
	if active > maxModeLevels {
		active = maxModeLevels
	}
	cfg.ActiveLevels = active

	var vals [modeLevelValsSize]int
	for i := 0; i < modeLevelValsSize && i < len(v.Vals); i++ {
		vals[i] = v.Vals[i]
	}
	cfg.LevelVals = vals
}

func applyRoff(cfg *ModeConfig, raw []byte) {
	v, err := configschema.DecodeRoff(raw)
	if err != nil {
		cclog.ComponentWarn("Calc", "ignoring invalid roff blob:", err.Error())
		return
	}
	cfg.Roff = v.Roff
}

// LevelFromMark returns the highest level index lvl (0..activeLevels) for
// which levelVals[lvl] <= the comparison value, per spec §4.5. The
// comparison value is roundOff1(markPct) when cfg.Roff is set, else
// markPct directly.
func LevelFromMark(cfg ModeConfig, markPct float64) int {
	cmp := markPct
	if cfg.Roff {
		cmp = RoundOff1(markPct)
	}

	lvl := 0
	for l := 0; l <= cfg.ActiveLevels; l++ {
		if almostGTE(cmp, float64(cfg.LevelVals[l])) {
			lvl = l
		}
	}
	return lvl
}

// MidrangeMode returns the midpoint of the range [levelVals[lvl], top)
// where top is 100 if lvl >= activeLevels, else levelVals[lvl+1].
func MidrangeMode(cfg ModeConfig, lvl int) float64 {
	top := 100.0
	if lvl < cfg.ActiveLevels {
		top = float64(cfg.LevelVals[lvl+1])
	}
	return float64(cfg.LevelVals[lvl]) + (top-float64(cfg.LevelVals[lvl]))/2
}
