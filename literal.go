// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package withings

import (
	"fmt"
	"strconv"
	"strings"
)

// parseIntArray parses a bracketed integer-sequence literal such as
// "[60, 60, 30]" or "[]". Only digits, an optional leading sign, commas,
// whitespace and one pair of brackets are accepted; anything else is
// rejected rather than evaluated.
func parseIntArray(s string) ([]int64, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return nil, fmt.Errorf("not a bracketed array literal: %q", s)
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return []int64{}, nil
	}

	parts := strings.Split(inner, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		elem := strings.TrimSpace(part)
		if elem == "" {
			return nil, fmt.Errorf("empty element in array literal: %q", s)
		}
		v, err := strconv.ParseInt(elem, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("non-integer element %q in array literal: %w", elem, err)
		}
		out = append(out, v)
	}

	return out, nil
}
