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
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	rawFilePrefix = "raw_sleep-monitor_"
	rawFileSuffix = ".csv"
)

// Loader reads Withings Sleep Analyzer exports from a filesystem.
type Loader struct {
	fs       afero.Fs
	logger   *zap.Logger
	splitter NightSplitter
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the filesystem to read from. Defaults to the OS filesystem;
// tests typically pass afero.NewMemMapFs().
func WithFS(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithNightSplitter sets the policy used to partition multi-night
// recordings. Defaults to GapSplitter{}.
func WithNightSplitter(s NightSplitter) Option {
	return func(l *Loader) {
		l.splitter = s
	}
}

// NewLoader creates a loader for Withings Sleep Analyzer exports.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if l.splitter == nil {
		l.splitter = GapSplitter{}
	}
	return l
}

// LoadRawFile loads a single raw export file as the given biosignal kind,
// with timestamps converted to loc.
func (l *Loader) LoadRawFile(path string, kind Kind, loc *time.Location) (*Series, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStream, kind)
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening raw file: %w", err)
	}
	defer f.Close()

	series, err := ReadRaw(f, kind, loc)
	if err != nil {
		if perr, ok := err.(*ParseError); ok && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}

	l.logger.Debug("loaded raw stream",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("samples", len(series.Samples)))

	return series, nil
}

// LoadSummaryFile loads a sleep summary export with timestamps converted
// to loc.
func (l *Loader) LoadSummaryFile(path string, loc *time.Location) ([]SleepSummary, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening summary file: %w", err)
	}
	defer f.Close()

	summaries, err := LoadSummary(f, loc)
	if err != nil {
		if perr, ok := err.(*ParseError); ok && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}

	l.logger.Debug("loaded sleep summary",
		zap.String("path", path),
		zap.Int("nights", len(summaries)))

	return summaries, nil
}

// LoadRawFolder loads every recognized raw export file in dir and
// outer-joins the streams into a single table indexed by time. Files with
// an unrecognized suffix are skipped; a folder with no recognized files is
// an error.
func (l *Loader) LoadRawFolder(dir string, loc *time.Location) (*Table, error) {
	series, err := l.loadRawStreams(dir, loc)
	if err != nil {
		return nil, err
	}
	return Merge(series...), nil
}

// LoadRawFolderNights loads a folder like LoadRawFolder, then partitions
// the merged table into per-night segments and resamples each onto a
// 1-minute grid.
func (l *Loader) LoadRawFolderNights(dir string, loc *time.Location) ([]*Table, error) {
	merged, err := l.LoadRawFolder(dir, loc)
	if err != nil {
		return nil, err
	}

	nights := l.splitter.Split(merged)
	for i, night := range nights {
		nights[i] = night.Resample(time.Minute)
	}

	l.logger.Debug("split recording into nights",
		zap.String("dir", dir),
		zap.Int("nights", len(nights)))

	return nights, nil
}

func (l *Loader) loadRawStreams(dir string, loc *time.Location) ([]*Series, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("error reading folder: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, rawFilePrefix) && strings.HasSuffix(name, rawFileSuffix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var series []*Series
	for _, name := range names {
		suffix := strings.TrimSuffix(strings.TrimPrefix(name, rawFilePrefix), rawFileSuffix)
		kind, ok := rawDataSources[suffix]
		if !ok {
			l.logger.Debug("skipping unrecognized raw stream",
				zap.String("name", name),
				zap.String("suffix", suffix))
			continue
		}

		s, err := l.LoadRawFile(filepath.Join(dir, name), kind, loc)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmptyFolder)
	}

	return series, nil
}
