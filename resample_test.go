// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package withings_test

import (
	"math"
	"testing"
	"time"

	"github.com/OpenPSG/withings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleInterpolatesGaps(t *testing.T) {
	t0 := time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC)
	table := &withings.Table{
		Times: []time.Time{t0, t0.Add(10 * time.Minute)},
		Columns: []withings.Column{
			{Kind: withings.KindHeartRate, Values: []float64{0, 100}},
		},
	}

	resampled := table.Resample(time.Minute)
	require.Equal(t, 11, resampled.Len())

	col, ok := resampled.Column(withings.KindHeartRate)
	require.True(t, ok)
	for i := 0; i <= 10; i++ {
		assert.True(t, resampled.Times[i].Equal(t0.Add(time.Duration(i)*time.Minute)), "grid point %d", i)
		assert.InDelta(t, float64(i*10), col.Values[i], 1e-9, "grid point %d", i)
	}
}

func TestResampleStaysInsideSegment(t *testing.T) {
	// An unaligned segment start pulls the grid forward to the next whole
	// minute; nothing is produced outside the segment's own range.
	t0 := time.Date(2021, 1, 1, 22, 0, 30, 0, time.UTC)
	table := &withings.Table{
		Times: []time.Time{t0, t0.Add(3 * time.Minute)},
		Columns: []withings.Column{
			{Kind: withings.KindHeartRate, Values: []float64{60, 66}},
		},
	}

	resampled := table.Resample(time.Minute)
	require.Equal(t, 3, resampled.Len())
	assert.True(t, resampled.Times[0].Equal(time.Date(2021, 1, 1, 22, 1, 0, 0, time.UTC)))
	assert.True(t, resampled.Times[2].Equal(time.Date(2021, 1, 1, 22, 3, 0, 0, time.UTC)))

	col, ok := resampled.Column(withings.KindHeartRate)
	require.True(t, ok)
	assert.InDelta(t, 61.0, col.Values[0], 1e-9)
	assert.InDelta(t, 63.0, col.Values[1], 1e-9)
	assert.InDelta(t, 65.0, col.Values[2], 1e-9)
}

func TestResampleDoesNotExtrapolate(t *testing.T) {
	t0 := time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC)
	table := &withings.Table{
		Times: []time.Time{t0, t0.Add(2 * time.Minute), t0.Add(4 * time.Minute)},
		Columns: []withings.Column{
			// Only known in the middle of the segment.
			{Kind: withings.KindSnoring, Values: []float64{math.NaN(), 100, math.NaN()}},
			// No data at all.
			{Kind: withings.KindSleepState, Values: []float64{math.NaN(), math.NaN(), math.NaN()}},
		},
	}

	resampled := table.Resample(time.Minute)
	require.Equal(t, 5, resampled.Len())

	snoring, ok := resampled.Column(withings.KindSnoring)
	require.True(t, ok)
	assert.True(t, math.IsNaN(snoring.Values[0]))
	assert.True(t, math.IsNaN(snoring.Values[1]))
	assert.Equal(t, 100.0, snoring.Values[2])
	assert.True(t, math.IsNaN(snoring.Values[3]))
	assert.True(t, math.IsNaN(snoring.Values[4]))

	state, ok := resampled.Column(withings.KindSleepState)
	require.True(t, ok)
	for i, v := range state.Values {
		assert.True(t, math.IsNaN(v), "grid point %d", i)
	}
}

func TestResampleEmptyTable(t *testing.T) {
	table := &withings.Table{
		Columns: []withings.Column{{Kind: withings.KindHeartRate}},
	}

	resampled := table.Resample(time.Minute)
	assert.Equal(t, 0, resampled.Len())
	require.Len(t, resampled.Columns, 1)
	assert.Equal(t, withings.KindHeartRate, resampled.Columns[0].Kind)
}
