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
	"math"
	"sort"
	"time"
)

// Resample projects the table onto a step-aligned grid spanning its own
// timestamp range and linearly interpolates each column between its known
// samples. Grid instants outside a column's first/last known sample stay
// NaN; interpolation never extrapolates. Columns with no data at all remain
// entirely NaN.
func (t *Table) Resample(step time.Duration) *Table {
	if t.Len() == 0 || step <= 0 {
		return &Table{Columns: cloneEmptyColumns(t.Columns)}
	}

	first, last := t.Times[0], t.Times[t.Len()-1]
	loc := first.Location()

	start := first.Truncate(step)
	if start.Before(first) {
		start = start.Add(step)
	}

	var times []time.Time
	for g := start; !g.After(last); g = g.Add(step) {
		times = append(times, g.In(loc))
	}

	out := &Table{Times: times}
	for _, col := range t.Columns {
		values := make([]float64, len(times))
		for i, g := range times {
			values[i] = interpolate(t.Times, col.Values, g)
		}
		out.Columns = append(out.Columns, Column{Kind: col.Kind, Values: values})
	}

	return out
}

// interpolate evaluates a column at instant g by linear interpolation
// between the nearest known (non-NaN) samples. Returns NaN outside the
// column's known range.
func interpolate(times []time.Time, values []float64, g time.Time) float64 {
	// Index of the first sample at or after g.
	i := sort.Search(len(times), func(i int) bool { return !times[i].Before(g) })

	if i < len(times) && times[i].Equal(g) && !math.IsNaN(values[i]) {
		return values[i]
	}

	// Nearest known sample strictly before g.
	lo := i - 1
	for lo >= 0 && math.IsNaN(values[lo]) {
		lo--
	}
	// Nearest known sample at or after g (skipping a NaN exact match).
	hi := i
	for hi < len(times) && (math.IsNaN(values[hi]) || times[hi].Equal(g)) {
		if times[hi].Equal(g) && !math.IsNaN(values[hi]) {
			return values[hi]
		}
		hi++
	}

	if lo < 0 || hi >= len(times) {
		return math.NaN()
	}

	span := times[hi].Sub(times[lo]).Seconds()
	if span == 0 {
		return values[lo]
	}
	frac := g.Sub(times[lo]).Seconds() / span
	return values[lo] + frac*(values[hi]-values[lo])
}

func cloneEmptyColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, col := range cols {
		out = append(out, Column{Kind: col.Kind})
	}
	return out
}
