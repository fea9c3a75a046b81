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
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/OpenPSG/withings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() *withings.Table {
	return &withings.Table{
		Times: []time.Time{
			time.Date(2021, 1, 1, 22, 0, 0, 0, time.UTC),
			time.Date(2021, 1, 1, 22, 0, 30, 0, time.UTC),
			time.Date(2021, 1, 1, 22, 1, 0, 0, time.UTC),
		},
		Columns: []withings.Column{
			{Kind: withings.KindHeartRate, Values: []float64{55, math.NaN(), 58}},
			{Kind: withings.KindSnoring, Values: []float64{math.NaN(), 100, math.NaN()}},
		},
	}
}

func TestSaveTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, withings.SaveTable(&buf, testTable()))

	assert.Equal(t,
		"time,heart_rate,snoring\n"+
			"2021-01-01T22:00:00Z,55,\n"+
			"2021-01-01T22:00:30Z,,100\n"+
			"2021-01-01T22:01:00Z,58,\n",
		buf.String())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	var first bytes.Buffer
	require.NoError(t, withings.SaveTable(&first, testTable()))

	loaded, err := withings.LoadTable(bytes.NewReader(first.Bytes()))
	require.NoError(t, err)

	// Saving the reloaded table reproduces the original bytes exactly.
	var second bytes.Buffer
	require.NoError(t, withings.SaveTable(&second, loaded))
	assert.Equal(t, first.String(), second.String())
}

func TestLoadTable(t *testing.T) {
	loaded, err := withings.LoadTable(strings.NewReader(
		"time,heart_rate\n" +
			"2021-01-01T22:00:00Z,55\n" +
			"2021-01-01T22:01:00Z,\n"))
	require.NoError(t, err)

	require.Equal(t, 2, loaded.Len())
	col, ok := loaded.Column(withings.KindHeartRate)
	require.True(t, ok)
	assert.Equal(t, 55.0, col.Values[0])
	assert.True(t, math.IsNaN(col.Values[1]))
}

func TestLoadTableRejectsUnknownIndex(t *testing.T) {
	_, err := withings.LoadTable(strings.NewReader("timestamp,heart_rate\n"))
	var perr *withings.ParseError
	require.ErrorAs(t, err, &perr)
}

func TestSaveEndpoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, withings.SaveEndpoints(&buf, testTable()))
	assert.True(t, strings.HasPrefix(buf.String(), "time,"))

	// Structured endpoint collections are reported as unimplemented, not
	// silently dropped.
	err := withings.SaveEndpoints(&buf, map[string]any{"sleep_onset": "22:10"})
	require.ErrorIs(t, err, withings.ErrNotImplemented)
}
