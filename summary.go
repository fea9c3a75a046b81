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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// SleepSummary holds the per-night endpoints from a Withings sleep summary
// export. Onset instants are absolute; *Minutes fields are whole minutes,
// rounded down from the vendor's second-valued totals.
type SleepSummary struct {
	Time       time.Time // Start of the recording
	SleepOnset time.Time // First transition into sleep
	WakeOnset  time.Time // Final transition out of sleep

	TotalDurationSeconds int // Time in bed, in seconds

	TotalSleepMinutes   int // Time asleep between onset and wake
	LightSleepMinutes   int
	DeepSleepMinutes    int
	REMSleepMinutes     int
	AwakeMinutes        int
	SleepOnsetLatency   int // Minutes from record start to sleep onset
	GetupLatency        int // Minutes from wake onset to getting up
	WakeAfterSleepOnset int // Minutes awake between onset and wake

	WakeBouts       int
	SnoringEpisodes int
	SnoringMinutes  int

	HeartRateAvg int
	HeartRateMin int
	HeartRateMax int
}

// Vendor column names in summary exports. The export localizes some of
// them to German regardless of account language.
const (
	summaryColFrom            = "von"
	summaryColUntil           = "bis"
	summaryColLight           = "leicht (s)"
	summaryColDeep            = "tief (s)"
	summaryColREM             = "rem (s)"
	summaryColAwake           = "wach (s)"
	summaryColWakeBouts       = "Aufwachen"
	summaryColOnsetLatency    = "Duration to sleep (s)"
	summaryColGetupLatency    = "Duration to wake up (s)"
	summaryColSnoringEpisodes = "Snoring episodes"
	summaryColSnoring         = "Snoring (s)"
	summaryColHeartRateAvg    = "Average heart rate"
	summaryColHeartRateMin    = "Heart rate (min)"
	summaryColHeartRateMax    = "Heart rate (max)"
)

// LoadSummary parses a sleep summary export and derives the endpoint fields
// (sleep onset, wake onset, wake after sleep onset, total sleep duration)
// from the vendor's raw latencies. Naive timestamps are interpreted as UTC
// and converted to loc. Rows are returned in file order.
func LoadSummary(r io.Reader, loc *time.Location) ([]SleepSummary, error) {
	if loc == nil {
		loc = time.UTC
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Msg: "empty file"}
	} else if err != nil {
		return nil, &ParseError{Msg: "reading header", Err: err}
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	required := []string{
		summaryColFrom, summaryColUntil,
		summaryColLight, summaryColDeep, summaryColREM, summaryColAwake,
		summaryColWakeBouts, summaryColOnsetLatency, summaryColGetupLatency,
		summaryColSnoringEpisodes, summaryColSnoring,
		summaryColHeartRateAvg, summaryColHeartRateMin, summaryColHeartRateMax,
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, &ParseError{Msg: fmt.Sprintf("missing column %q", name)}
		}
	}

	var summaries []SleepSummary
	for rowNum := 1; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "reading record", Err: err}
		}
		if len(record) < len(header) {
			return nil, &ParseError{Row: rowNum, Msg: "record has too few fields"}
		}

		field := func(name string) string { return record[cols[name]] }
		intField := func(name string) (int, error) {
			v, err := strconv.Atoi(field(name))
			if err != nil {
				return 0, &ParseError{Row: rowNum, Msg: fmt.Sprintf("malformed %q", name), Err: err}
			}
			return v, nil
		}

		from, err := parseStart(field(summaryColFrom))
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed timestamp", Err: err}
		}
		until, err := parseStart(field(summaryColUntil))
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed timestamp", Err: err}
		}
		from, until = from.In(loc), until.In(loc)

		var (
			s       SleepSummary
			lightS  int
			deepS   int
			remS    int
			awakeS  int
			onsetS  int
			getupS  int
			snoreS  int
			parseTo = []struct {
				name string
				dst  *int
			}{
				{summaryColLight, &lightS},
				{summaryColDeep, &deepS},
				{summaryColREM, &remS},
				{summaryColAwake, &awakeS},
				{summaryColWakeBouts, &s.WakeBouts},
				{summaryColOnsetLatency, &onsetS},
				{summaryColGetupLatency, &getupS},
				{summaryColSnoringEpisodes, &s.SnoringEpisodes},
				{summaryColSnoring, &snoreS},
				{summaryColHeartRateAvg, &s.HeartRateAvg},
				{summaryColHeartRateMin, &s.HeartRateMin},
				{summaryColHeartRateMax, &s.HeartRateMax},
			}
		)
		for _, p := range parseTo {
			if *p.dst, err = intField(p.name); err != nil {
				return nil, err
			}
		}

		s.Time = from
		s.TotalDurationSeconds = int(until.Sub(from) / time.Second)
		s.SleepOnset = from.Add(time.Duration(onsetS) * time.Second)
		s.WakeOnset = until.Add(-time.Duration(getupS) * time.Second)

		s.LightSleepMinutes = lightS / 60
		s.DeepSleepMinutes = deepS / 60
		s.REMSleepMinutes = remS / 60
		s.AwakeMinutes = awakeS / 60
		s.SleepOnsetLatency = onsetS / 60
		s.GetupLatency = getupS / 60
		s.SnoringMinutes = snoreS / 60
		s.WakeAfterSleepOnset = (awakeS - onsetS - getupS) / 60
		s.TotalSleepMinutes = (s.TotalDurationSeconds - onsetS - getupS) / 60

		summaries = append(summaries, s)
	}

	return summaries, nil
}

// SaveSummary writes summary rows as flat CSV with the time index as the
// first column, onset columns leading the data columns.
func SaveSummary(w io.Writer, summaries []SleepSummary) error {
	cw := csv.NewWriter(w)

	header := []string{
		"time", "sleep_onset", "wake_onset",
		"total_sleep_duration", "total_duration",
		"total_time_light_sleep", "total_time_deep_sleep", "total_time_rem_sleep", "total_time_awake",
		"sleep_onset_latency", "getup_latency", "wake_after_sleep_onset",
		"num_wake_bouts", "count_snoring_episodes", "total_time_snoring",
		"heart_rate_avg", "heart_rate_min", "heart_rate_max",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, s := range summaries {
		record := []string{
			s.Time.Format(time.RFC3339Nano),
			s.SleepOnset.Format(time.RFC3339Nano),
			s.WakeOnset.Format(time.RFC3339Nano),
			strconv.Itoa(s.TotalSleepMinutes),
			strconv.Itoa(s.TotalDurationSeconds),
			strconv.Itoa(s.LightSleepMinutes),
			strconv.Itoa(s.DeepSleepMinutes),
			strconv.Itoa(s.REMSleepMinutes),
			strconv.Itoa(s.AwakeMinutes),
			strconv.Itoa(s.SleepOnsetLatency),
			strconv.Itoa(s.GetupLatency),
			strconv.Itoa(s.WakeAfterSleepOnset),
			strconv.Itoa(s.WakeBouts),
			strconv.Itoa(s.SnoringEpisodes),
			strconv.Itoa(s.SnoringMinutes),
			strconv.Itoa(s.HeartRateAvg),
			strconv.Itoa(s.HeartRateMin),
			strconv.Itoa(s.HeartRateMax),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
