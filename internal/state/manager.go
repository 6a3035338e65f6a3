// SPDX-License-Identifier: Apache-2.0

// Package state persists what the updater has observed across process restarts.
package state

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// LastCheckFileName is the record of the most recent update check.
const LastCheckFileName = "last-check.yaml"

// CheckRecord describes the most recent update check.
type CheckRecord struct {
	Executable string    `yaml:"executable" json:"executable"`
	Source     string    `yaml:"source" json:"source"`
	CheckedAt  time.Time `yaml:"checkedAt" json:"checkedAt"`
	// Count is the number of checks recorded since the state directory was created
	Count int `yaml:"count" json:"count"`
}

// Manager handles state persistence in a single directory.
type Manager struct {
	fs     afero.Fs
	dir    string
	now    func() time.Time
	logger *zerolog.Logger
}

type Option = func(m *Manager)

func WithFs(fs afero.Fs) Option {
	return func(m *Manager) {
		if fs != nil {
			m.fs = fs
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a new state manager storing its files in dir
func NewManager(dir string, opts ...Option) *Manager {
	nop := zerolog.Nop()
	m := &Manager{
		fs:     afero.NewOsFs(),
		dir:    dir,
		now:    time.Now,
		logger: &nop,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Manager) lastCheckPath() string {
	return filepath.Join(m.dir, LastCheckFileName)
}

// RecordCheck stores a record of an update check of executablePath against source.
func (m *Manager) RecordCheck(_ context.Context, executablePath string, source string) error {
	if err := m.fs.MkdirAll(m.dir, 0o755); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to create state directory %s", m.dir)
	}

	count := 0
	if prev, err := m.LastCheck(); err == nil {
		count = prev.Count
	} else if !errorx.IsOfType(err, errorx.DataUnavailable) {
		m.logger.Warn().Err(err).Str("path", m.lastCheckPath()).Msg("Ignoring unreadable check record")
	}

	rec := CheckRecord{
		Executable: executablePath,
		Source:     source,
		CheckedAt:  m.now().UTC(),
		Count:      count + 1,
	}

	data, err := yaml.Marshal(rec)
	if err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to marshal check record")
	}

	if err := m.writeFile(m.lastCheckPath(), data); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write check record %s", m.lastCheckPath())
	}

	m.logger.Info().
		Str("executable", executablePath).
		Str("source", source).
		Int("count", rec.Count).
		Msg("Recorded update check")

	return nil
}

// LastCheck returns the most recent check record.
// It returns an errorx.DataUnavailable error if no check has been recorded yet.
func (m *Manager) LastCheck() (*CheckRecord, error) {
	data, err := afero.ReadFile(m.fs, m.lastCheckPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorx.DataUnavailable.New("no update check has been recorded in %s", m.dir)
		}
		return nil, errorx.IllegalState.Wrap(err, "failed to read check record %s", m.lastCheckPath())
	}

	var rec CheckRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse check record %s", m.lastCheckPath())
	}

	return &rec, nil
}

// Remove deletes the state directory. A missing directory is not an error.
func (m *Manager) Remove() error {
	return m.fs.RemoveAll(m.dir)
}

// writeFile writes through a temporary file in the same directory so readers never see a partial record.
func (m *Manager) writeFile(path string, data []byte) error {
	tmp, err := afero.TempFile(m.fs, filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = m.fs.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = m.fs.Remove(tmp.Name())
		return err
	}

	return m.fs.Rename(tmp.Name(), path)
}
