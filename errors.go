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
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedStream indicates a biosignal kind outside the
	// canonical set.
	ErrUnsupportedStream = errors.New("unsupported biosignal stream")

	// ErrEmptyFolder indicates a folder containing no raw export files.
	ErrEmptyFolder = errors.New("no raw sleep monitor files found")

	// ErrNotImplemented indicates an export path that is recognized but
	// deliberately unimplemented.
	ErrNotImplemented = errors.New("not implemented")
)

// ParseError describes a malformed raw export file. Row is the 1-based data
// row number, or 0 when the error is not tied to a specific row.
type ParseError struct {
	File string
	Row  int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.File != "" && e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", e.File, e.Row, msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, msg)
	case e.Row > 0:
		return fmt.Sprintf("row %d: %s", e.Row, msg)
	default:
		return msg
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
