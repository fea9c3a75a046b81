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

// Reconstruct expands a raw export row into one timestamped sample per
// duration/value pair. The i-th sample lands at Start plus the sum of the
// durations preceding it, so the first sample carries Start exactly
// (sub-second precision included). Zero durations produce back-to-back
// samples on the same timestamp; timestamps are therefore monotonically
// non-decreasing but not necessarily unique.
func Reconstruct(row RawRow) ([]Sample, error) {
	if len(row.Durations) != len(row.Values) {
		return nil, &ParseError{
			Msg: "duration and value arrays differ in length",
		}
	}

	samples := make([]Sample, len(row.Values))
	var offset int64
	for i, v := range row.Values {
		samples[i] = Sample{
			Time:  row.Start.Add(time.Duration(offset) * time.Second),
			Value: v,
		}
		offset += row.Durations[i]
	}

	return samples, nil
}
