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
	"testing"
	"time"

	"github.com/OpenPSG/withings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct(t *testing.T) {
	start := time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC)
	samples, err := withings.Reconstruct(withings.RawRow{
		Start:     start,
		Durations: []int64{60, 60, 30},
		Values:    []int64{55, 58, 60},
	})
	require.NoError(t, err)
	require.Len(t, samples, 3)

	// The i-th timestamp is start plus the sum of the preceding durations.
	assert.True(t, samples[0].Time.Equal(start))
	assert.True(t, samples[1].Time.Equal(start.Add(60*time.Second)))
	assert.True(t, samples[2].Time.Equal(start.Add(120*time.Second)))
	assert.Equal(t, int64(55), samples[0].Value)
	assert.Equal(t, int64(58), samples[1].Value)
	assert.Equal(t, int64(60), samples[2].Value)
}

func TestReconstructKeepsSubSecondPrecision(t *testing.T) {
	start := time.Date(2021, 1, 1, 22, 0, 0, 500_000_000, time.UTC)
	samples, err := withings.Reconstruct(withings.RawRow{
		Start:     start,
		Durations: []int64{60},
		Values:    []int64{55},
	})
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.True(t, samples[0].Time.Equal(start))
}

func TestReconstructZeroDurations(t *testing.T) {
	start := time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC)
	samples, err := withings.Reconstruct(withings.RawRow{
		Start:     start,
		Durations: []int64{0, 60},
		Values:    []int64{1, 2},
	})
	require.NoError(t, err)
	require.Len(t, samples, 2)

	// Zero durations collapse onto the same timestamp.
	assert.True(t, samples[0].Time.Equal(start))
	assert.True(t, samples[1].Time.Equal(start))
}

func TestReconstructEmptyRow(t *testing.T) {
	samples, err := withings.Reconstruct(withings.RawRow{
		Start: time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestReconstructLengthMismatch(t *testing.T) {
	_, err := withings.Reconstruct(withings.RawRow{
		Start:     time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC),
		Durations: []int64{60, 60},
		Values:    []int64{55},
	})
	var perr *withings.ParseError
	require.ErrorAs(t, err, &perr)
}
