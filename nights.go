// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package withings

import "time"

// DefaultNightGap is the sample gap at which GapSplitter starts a new night.
const DefaultNightGap = 6 * time.Hour

// NightSplitter partitions a merged multi-night table into one sub-table
// per sleep night, in chronological order. Each segment retains the
// parent's column set and index location; segments do not overlap.
type NightSplitter interface {
	Split(t *Table) []*Table
}

// GapSplitter splits a recording wherever consecutive samples are at least
// MinGap apart. The sleep monitor only records while someone is in bed, so
// a long silence separates two nights.
type GapSplitter struct {
	// MinGap is the minimum silence between two nights. Zero means
	// DefaultNightGap.
	MinGap time.Duration
}

func (s GapSplitter) Split(t *Table) []*Table {
	if t.Len() == 0 {
		return nil
	}

	minGap := s.MinGap
	if minGap <= 0 {
		minGap = DefaultNightGap
	}

	var nights []*Table
	lo := 0
	for i := 1; i < t.Len(); i++ {
		if t.Times[i].Sub(t.Times[i-1]) >= minGap {
			nights = append(nights, t.slice(lo, i))
			lo = i
		}
	}
	nights = append(nights, t.slice(lo, t.Len()))

	return nights
}
