// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "testing"

type fakeConfigBlobReader map[string][]byte

func (f fakeConfigBlobReader) GetConfigValue(classID, key string) ([]byte, bool, error) {
	raw, ok := f[key]
	return raw, ok, nil
}

func TestLoadModeConfigDefaults(t *testing.T) {
	got, err := LoadModeConfig(fakeConfigBlobReader{}, "class-1")
	if err != nil {
		t.Fatalf("LoadModeConfig returned error: %v", err)
	}
	want := DefaultModeConfig()
	if got != want {
		t.Errorf("LoadModeConfig with no blobs = %+v, want defaults %+v", got, want)
	}
}

func TestLoadModeConfigOverrideTakesPrecedence(t *testing.T) {
	store := fakeConfigBlobReader{
		"user_cfg.mode_levels":          []byte(`{"activeLevels":4,"vals":[0,40,50,60,70]}`),
		"user_cfg.override.mode_levels": []byte(`{"activeLevels":3,"vals":[0,30,60,90]}`),
	}
	got, err := LoadModeConfig(store, "class-1")
	if err != nil {
		t.Fatalf("LoadModeConfig returned error: %v", err)
	}
	if got.ActiveLevels != 3 {
		t.Errorf("ActiveLevels = %d, want 3 (override should win over base)", got.ActiveLevels)
	}
	if got.LevelVals[1] != 30 {
		t.Errorf("LevelVals[1] = %d, want 30", got.LevelVals[1])
	}
}

func TestLoadModeConfigClampsActiveLevels(t *testing.T) {
	store := fakeConfigBlobReader{
		"user_cfg.mode_levels": []byte(`{"activeLevels":21,"vals":[0]}`),
	}
	got, err := LoadModeConfig(store, "class-1")
	if err != nil {
		t.Fatalf("LoadModeConfig returned error: %v", err)
	}
	if got.ActiveLevels != maxModeLevels {
		t.Errorf("ActiveLevels = %d, want clamp to %d", got.ActiveLevels, maxModeLevels)
	}
}

func TestLoadModeConfigInvalidBlobFallsBackToDefaults(t *testing.T) {
	store := fakeConfigBlobReader{
		"user_cfg.mode_levels": []byte(`not json`),
	}
	got, err := LoadModeConfig(store, "class-1")
	if err != nil {
		t.Fatalf("LoadModeConfig should not fail on an invalid blob, got: %v", err)
	}
	if got != DefaultModeConfig() {
		t.Errorf("LoadModeConfig with invalid blob = %+v, want defaults", got)
	}
}

func TestLoadModeConfigRoff(t *testing.T) {
	store := fakeConfigBlobReader{
		"user_cfg.roff": []byte(`{"roff":false}`),
	}
	got, err := LoadModeConfig(store, "class-1")
	if err != nil {
		t.Fatalf("LoadModeConfig returned error: %v", err)
	}
	if got.Roff {
		t.Error("expected Roff=false from the user_cfg.roff blob")
	}
}

func TestLevelFromMark(t *testing.T) {
	cfg := DefaultModeConfig()
	tests := []struct {
		mark float64
		want int
	}{
		{0, 0},
		{49.9, 0},
		{50, 1},
		{59, 1},
		{60, 2},
		{69.9, 2},
		{70, 3},
		{79.9, 3},
		{80, 4},
		{100, 4},
	}
	for _, tt := range tests {
		if got := LevelFromMark(cfg, tt.mark); got != tt.want {
			t.Errorf("LevelFromMark(%v) = %d, want %d", tt.mark, got, tt.want)
		}
	}
}

func TestMidrangeMode(t *testing.T) {
	cfg := DefaultModeConfig()
	tests := []struct {
		lvl  int
		want float64
	}{
		{0, 25},  // midpoint of [0,50)
		{1, 55},  // midpoint of [50,60)
		{4, 90},  // top level: midpoint of [80,100)
	}
	for _, tt := range tests {
		if got := MidrangeMode(cfg, tt.lvl); !almostEqual(got, tt.want) {
			t.Errorf("MidrangeMode(%d) = %v, want %v", tt.lvl, got, tt.want)
		}
	}
}
