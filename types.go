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

// Kind identifies one of the biosignals recorded by the Withings Sleep
// Analyzer. It doubles as the canonical column name in merged tables.
type Kind string

const (
	KindHeartRate       Kind = "heart_rate"       // beats per minute
	KindRespirationRate Kind = "respiration_rate" // breaths per minute
	KindSleepState      Kind = "sleep_state"      // see SleepState* constants
	KindSnoring         Kind = "snoring"          // 0 or 100
)

// Sleep states reported in the sleep_state stream.
const (
	SleepStateAwake = 0
	SleepStateLight = 1
	SleepStateDeep  = 2
	SleepStateREM   = 3
)

// Snoring stream values.
const (
	SnoringAbsent  = 0
	SnoringPresent = 100
)

// Kinds lists all supported biosignal kinds.
func Kinds() []Kind {
	return []Kind{KindHeartRate, KindRespirationRate, KindSleepState, KindSnoring}
}

// Valid reports whether k is one of the supported biosignal kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindHeartRate, KindRespirationRate, KindSleepState, KindSnoring:
		return true
	default:
		return false
	}
}

// rawDataSources maps the suffix in a raw export filename
// (raw_sleep-monitor_<suffix>.csv) to the biosignal it contains.
var rawDataSources = map[string]Kind{
	"hr":               KindHeartRate,
	"respiratory-rate": KindRespirationRate,
	"sleep-state":      KindSleepState,
	"snoring":          KindSnoring,
}

// RawRow is one row of a raw export file: a recording burst starting at
// Start, holding one sample per Durations/Values entry.
type RawRow struct {
	Start     time.Time // Start of the burst
	Durations []int64   // Per-sample durations in seconds
	Values    []int64   // Per-sample values, same length as Durations
}

// Sample is one reconstructed measurement.
type Sample struct {
	Time  time.Time
	Value int64
}

// Series is a single biosignal stream with samples sorted ascending by time
// and duplicate timestamps removed.
type Series struct {
	Kind    Kind
	Samples []Sample
}
