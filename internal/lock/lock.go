// SPDX-License-Identifier: Apache-2.0

// Package lock keeps update runs of different processes from overlapping.
package lock

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

const DefaultFileName = "comet.lock"

// Lock is an exclusive, advisory file lock.
type Lock struct {
	path   string
	file   *flock.Flock
	logger *zerolog.Logger
}

// DefaultPath returns the lock file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), DefaultFileName)
}

func New(path string, logger *zerolog.Logger) *Lock {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	if path == "" {
		path = DefaultPath()
	}

	return &Lock{
		path:   path,
		file:   flock.New(path),
		logger: logger,
	}
}

func (l *Lock) Path() string {
	return l.path
}

// Acquire makes a single attempt to take the lock. A lock held by another process is reported right
// away as a concurrent update operation.
func (l *Lock) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errorx.IllegalState.Wrap(err, "cannot acquire file lock %q", l.path)
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errorx.ExternalError.Wrap(err, "failed to create lock directory for %q", l.path)
	}

	locked, err := l.file.TryLock()
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to acquire file lock %q", l.path)
	}

	if !locked {
		l.logger.Debug().Str("lockPath", l.path).Msg("Lock is held by another process")
		return updater.NewConcurrentOperationError(errorx.IllegalState.New("file lock %q is held by another process", l.path))
	}

	l.logger.Debug().Str("lockPath", l.path).Msg("Acquired lock")
	return nil
}

// Release unlocks the file. It is a no-op if the lock is not held.
func (l *Lock) Release() {
	if !l.file.Locked() {
		return
	}

	if err := l.file.Unlock(); err != nil {
		l.logger.Warn().Err(err).Str("lockPath", l.path).Msg("failed to unlock update lock")
	}
}
