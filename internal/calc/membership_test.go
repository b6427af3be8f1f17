// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "testing"

func TestValidKid(t *testing.T) {
	tests := []struct {
		name      string
		active    bool
		mask      string
		sortOrder int
		want      bool
	}{
		{"inactiveAlwaysFalse", false, "1", 0, false},
		{"emptyMaskDefaultsMember", true, "", 0, true},
		{"tbaMaskDefaultsMember", true, "TBA", 3, true},
		{"tbaCaseInsensitive", true, "tba", 0, true},
		{"unrecognisedCharDefaultsMember", true, "01x1", 2, true},
		{"outOfRangeDefaultsMember", true, "01", 5, true},
		{"maskBitOneIsMember", true, "010", 1, true},
		{"maskBitZeroExcludesMember", true, "010", 0, false},
		{"maskBitZeroAtEnd", true, "010", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidKid(tt.active, tt.mask, tt.sortOrder); got != tt.want {
				t.Errorf("ValidKid(%v, %q, %d) = %v, want %v", tt.active, tt.mask, tt.sortOrder, got, tt.want)
			}
		})
	}
}
