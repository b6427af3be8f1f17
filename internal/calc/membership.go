// Copyright (C) markbookd authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package calc

import "strings"

// ValidKid implements the membership predicate from spec §4.3. It returns
// false if the student is not active. Otherwise it inspects the
// membership mask:
//
//   - empty string or "TBA" (case-insensitive)        -> true
//   - any character outside {'0', '1'}                -> true (unrecognised mask defaults to member)
//   - markSetSortOrder out of range                    -> true (defensive default)
//   - otherwise, mask[markSetSortOrder] == '1' -> true, == '0' -> false
func ValidKid(active bool, mask string, markSetSortOrder int) bool {
	if !active {
		return false
	}

	trimmed := strings.TrimSpace(mask)
	if trimmed == "" || strings.EqualFold(trimmed, "TBA") {
		return true
	}

	for _, c := range mask {
		if c != '0' && c != '1' {
			return true
		}
	}

	if markSetSortOrder < 0 || markSetSortOrder >= len(mask) {
		return true
	}

	return mask[markSetSortOrder] == '1'
}
