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
	"math"
	"strconv"
	"time"
)

// SaveTable writes the table as flat CSV with the time index as the first
// column. Missing values are written as empty fields, integral values
// without a fractional part. Saving the same in-memory table twice yields
// byte-identical output.
func SaveTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.Columns)+1)
	header = append(header, "time")
	for _, col := range t.Columns {
		header = append(header, string(col.Kind))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	record := make([]string, len(header))
	for i, ts := range t.Times {
		record[0] = ts.Format(time.RFC3339Nano)
		for j, col := range t.Columns {
			record[j+1] = formatValue(col.Values[i])
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// LoadTable reads a table previously written by SaveTable.
func LoadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ParseError{Msg: "empty file"}
	} else if err != nil {
		return nil, &ParseError{Msg: "reading header", Err: err}
	}
	if len(header) == 0 || header[0] != "time" {
		return nil, &ParseError{Msg: `first column must be "time"`}
	}

	table := &Table{}
	for _, name := range header[1:] {
		table.Columns = append(table.Columns, Column{Kind: Kind(name)})
	}

	for rowNum := 1; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "reading record", Err: err}
		}
		if len(record) != len(header) {
			return nil, &ParseError{Row: rowNum, Msg: "record length does not match header"}
		}

		ts, err := time.Parse(time.RFC3339Nano, record[0])
		if err != nil {
			return nil, &ParseError{Row: rowNum, Msg: "malformed timestamp", Err: err}
		}
		table.Times = append(table.Times, ts)

		for i := range table.Columns {
			v, err := parseValue(record[i+1])
			if err != nil {
				return nil, &ParseError{Row: rowNum, Msg: "malformed value", Err: err}
			}
			table.Columns[i].Values = append(table.Columns[i].Values, v)
		}
	}

	return table, nil
}

// SaveEndpoints writes a sleep endpoints collection. Flat forms (a table or
// summary rows) are written as CSV; structured collections are not
// supported and report ErrNotImplemented rather than being silently
// dropped.
func SaveEndpoints(w io.Writer, endpoints any) error {
	switch e := endpoints.(type) {
	case *Table:
		return SaveTable(w, e)
	case []SleepSummary:
		return SaveSummary(w, e)
	default:
		return fmt.Errorf("exporting %T sleep endpoints: %w", endpoints, ErrNotImplemented)
	}
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func parseValue(s string) (float64, error) {
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
