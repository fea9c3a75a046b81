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
	"sort"
	"time"
)

// Timestamp layouts seen in Withings exports. Naive layouts are interpreted
// as UTC before conversion to the caller's location.
var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ReadRaw parses one raw export stream (columns start, duration, value) and
// returns the reconstructed series for the given biosignal kind. Naive
// timestamps are interpreted as UTC and then converted to loc; the instants
// themselves are unaffected. Samples are sorted ascending by time with
// duplicate timestamps dropped, keeping the first occurrence.
func ReadRaw(r io.Reader, kind Kind, loc *time.Location) (*Series, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStream, kind)
	}
	if loc == nil {
		loc = time.UTC
	}

	rows, err := readRawRows(r)
	if err != nil {
		return nil, err
	}

	// Stable, so bursts sharing a start keep their file order.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})

	var samples []Sample
	for _, row := range rows {
		expanded, err := Reconstruct(row)
		if err != nil {
			return nil, err
		}
		samples = append(samples, expanded...)
	}

	for i := range samples {
		samples[i].Time = samples[i].Time.In(loc)
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Time.Before(samples[j].Time)
	})
	samples = dedupKeepFirst(samples)

	return &Series{Kind: kind, Samples: samples}, nil
}

// readRawRows parses the CSV body into raw rows, in file order.
func readRawRows(r io.Reader) ([]RawRow, error) {
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
	for _, name := range []string{"start", "duration", "value"} {
		if _, ok := cols[name]; !ok {
			return nil, &ParseError{Msg: fmt.Sprintf("missing column %q", name)}
		}
	}

	var rows []RawRow
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

		start, err := parseStart(record[cols["start"]])
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed timestamp", Err: err}
		}
		durations, err := parseIntArray(record[cols["duration"]])
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed duration array", Err: err}
		}
		values, err := parseIntArray(record[cols["value"]])
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed value array", Err: err}
		}
		if len(durations) != len(values) {
			return nil, &ParseError{Row: rowNum, Msg: "duration and value arrays differ in length"}
		}

		rows = append(rows, RawRow{Start: start, Durations: durations, Values: values})
	}

	return rows, nil
}

// parseStart parses an export timestamp, treating zone-less forms as UTC.
func parseStart(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range startLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// dedupKeepFirst drops samples whose timestamp duplicates an earlier one.
// Samples must already be sorted by time.
func dedupKeepFirst(samples []Sample) []Sample {
	if len(samples) < 2 {
		return samples
	}
	out := samples[:1]
	for _, s := range samples[1:] {
		if !s.Time.Equal(out[len(out)-1].Time) {
			out = append(out, s)
		}
	}
	return out
}
