// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 Damian Peckett <damian@pecke.tt>.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

// Package main implements the withings CLI for converting Withings Sleep
// Analyzer exports into flat time-series tables.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/OpenPSG/withings"
	"github.com/fatih/color"
	"go.uber.org/zap"
)

var (
	tzName  = flag.String("tz", "UTC", "IANA timezone to convert timestamps to (or set TZ)")
	split   = flag.Bool("split", false, "Split the recording into per-night tables resampled to 1min")
	out     = flag.String("out", "sleep", "Output path prefix for the generated CSV files")
	verbose = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <export-folder>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	dir := args[0]

	if *tzName == "UTC" && os.Getenv("TZ") != "" {
		*tzName = os.Getenv("TZ")
	}
	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		color.Red("Unknown timezone %q: %v", *tzName, err)
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync() //nolint:errcheck

	loader := withings.NewLoader(withings.WithLogger(logger))

	if *split {
		nights, err := loader.LoadRawFolderNights(dir, loc)
		if err != nil {
			color.Red("Failed to load %s: %v", dir, err)
			os.Exit(1)
		}
		for i, night := range nights {
			path := fmt.Sprintf("%s_night_%02d.csv", *out, i+1)
			if err := saveTable(path, night); err != nil {
				color.Red("Failed to write %s: %v", path, err)
				os.Exit(1)
			}
			color.Green("Wrote %s (%d rows)", path, night.Len())
		}
		return
	}

	table, err := loader.LoadRawFolder(dir, loc)
	if err != nil {
		color.Red("Failed to load %s: %v", dir, err)
		os.Exit(1)
	}
	path := *out + ".csv"
	if err := saveTable(path, table); err != nil {
		color.Red("Failed to write %s: %v", path, err)
		os.Exit(1)
	}
	color.Green("Wrote %s (%d rows)", path, table.Len())
}

func saveTable(path string, table *withings.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := withings.SaveTable(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
