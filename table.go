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

// Column is one biosignal column of a merged table. Values are aligned with
// the table's time index; NaN marks instants where the stream has no sample.
type Column struct {
	Kind   Kind
	Values []float64
}

// Table is a time-indexed wide table with one column per biosignal. The
// index is sorted ascending and free of duplicates.
type Table struct {
	Times   []time.Time
	Columns []Column
}

// Merge outer-joins the given series into a single table. The time index is
// the sorted union of all sample timestamps; columns appear in argument
// order. When two series map to the same column name the first one wins at
// colliding timestamps.
func Merge(series ...*Series) *Table {
	seen := make(map[int64]struct{})
	var times []time.Time
	for _, s := range series {
		for _, sample := range s.Samples {
			key := sample.Time.UnixNano()
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				times = append(times, sample.Time)
			}
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	index := make(map[int64]int, len(times))
	for i, t := range times {
		index[t.UnixNano()] = i
	}

	table := &Table{Times: times}
	for _, s := range series {
		col, ok := table.Column(s.Kind)
		if !ok {
			values := make([]float64, len(times))
			for i := range values {
				values[i] = math.NaN()
			}
			table.Columns = append(table.Columns, Column{Kind: s.Kind, Values: values})
			col = &table.Columns[len(table.Columns)-1]
		}
		for _, sample := range s.Samples {
			i := index[sample.Time.UnixNano()]
			if math.IsNaN(col.Values[i]) {
				col.Values[i] = float64(sample.Value)
			}
		}
	}

	return table
}

// Column returns the column for the given biosignal kind, if present.
func (t *Table) Column(kind Kind) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Kind == kind {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.Times)
}

// slice returns the sub-table covering rows [lo, hi). Columns and the index
// location are retained; the backing slices are shared with the parent.
func (t *Table) slice(lo, hi int) *Table {
	out := &Table{Times: t.Times[lo:hi]}
	for _, col := range t.Columns {
		out.Columns = append(out.Columns, Column{Kind: col.Kind, Values: col.Values[lo:hi]})
	}
	return out
}
