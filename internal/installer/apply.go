// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

const (
	DefaultPollInterval = 250 * time.Millisecond
	BackupSuffix        = ".bak"
	executablePerm      = 0o755
)

var errFound = errors.New("found")

// Applier performs install requests once the requesting process has exited.
type Applier struct {
	pollInterval time.Duration
	alive        func(pid int) bool
	now          func() time.Time
	logger       *zerolog.Logger
}

type ApplierOption = func(a *Applier)

func WithPollInterval(interval time.Duration) ApplierOption {
	return func(a *Applier) {
		if interval > 0 {
			a.pollInterval = interval
		}
	}
}

// WithProcessCheck replaces the function that reports whether a process is still running.
func WithProcessCheck(alive func(pid int) bool) ApplierOption {
	return func(a *Applier) {
		if alive != nil {
			a.alive = alive
		}
	}
}

func WithApplierLogger(logger *zerolog.Logger) ApplierOption {
	return func(a *Applier) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewApplier(opts ...ApplierOption) *Applier {
	nop := zerolog.Nop()
	a := &Applier{
		pollInterval: DefaultPollInterval,
		alive:        processAlive,
		now:          time.Now,
		logger:       &nop,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// BackupPath returns where the previous executable is kept after a replacement.
func BackupPath(target string) string {
	return target + BackupSuffix
}

// Apply reads the request at requestFile, waits for the requester to exit and replaces the target
// executable. A result file is written next to the request whatever the outcome.
func (a *Applier) Apply(ctx context.Context, requestFile string) (err error) {
	req, err := ReadRequest(requestFile)
	if err != nil {
		return err
	}

	results := NewResultHandler(filepath.Dir(requestFile))
	defer func() {
		result := Result{Success: err == nil, ExecutedAt: a.now().UTC()}
		if err != nil {
			result.Error = err.Error()
		}

		if writeErr := results.Write(result); writeErr != nil {
			err = multierror.Append(err, writeErr).ErrorOrNil()
		}
	}()

	a.logger.Info().
		Str("id", req.ID).
		Int("pid", req.TargetPID).
		Str("target", req.TargetPath).
		Msg("Waiting for the requesting process to exit")

	if err = a.waitForExit(ctx, req.TargetPID); err != nil {
		return err
	}

	replacement, err := findReplacement(req)
	if err != nil {
		return err
	}

	if err = a.replace(replacement, req.TargetPath); err != nil {
		return err
	}

	a.logger.Info().
		Str("id", req.ID).
		Str("target", req.TargetPath).
		Str("backup", BackupPath(req.TargetPath)).
		Msg("Replaced executable")

	return nil
}

func (a *Applier) waitForExit(ctx context.Context, pid int) error {
	if !a.alive(pid) {
		return nil
	}

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return NewWaitError(ctx.Err(), pid)
		case <-ticker.C:
			if !a.alive(pid) {
				return nil
			}
		}
	}
}

// findReplacement looks for a file named like the target in the extracted directory, first at its
// top level and then anywhere below it.
func findReplacement(req updater.InstallRequest) (string, error) {
	name := filepath.Base(req.TargetPath)

	candidate := filepath.Join(req.ExtractedDir, name)
	if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
		return candidate, nil
	}

	var found string
	err := filepath.WalkDir(req.ExtractedDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == name && path != filepath.Join(req.ExtractedDir, RequestFileName) {
			found = path
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return "", NewReplacementMissingError(req.TargetPath, req.ExtractedDir)
	}

	if found == "" {
		return "", NewReplacementMissingError(req.TargetPath, req.ExtractedDir)
	}

	return found, nil
}

// replace moves target aside and writes replacement in its place. The previous binary is restored
// if the new one cannot be committed.
func (a *Applier) replace(replacement, target string) error {
	backup := BackupPath(target)
	perm := os.FileMode(executablePerm)

	info, statErr := os.Stat(target)
	hasTarget := statErr == nil
	if hasTarget {
		perm = info.Mode().Perm() | 0o111
		if err := os.Rename(target, backup); err != nil {
			return NewReplaceError(err, target)
		}
	}

	if err := writeExecutable(replacement, target, perm); err != nil {
		result := multierror.Append(nil, NewReplaceError(err, target))
		if hasTarget {
			if restoreErr := os.Rename(backup, target); restoreErr != nil {
				result = multierror.Append(result, NewReplaceError(restoreErr, backup))
			} else {
				a.logger.Warn().Str("target", target).Msg("Restored previous executable")
			}
		}
		return result.ErrorOrNil()
	}

	return nil
}

func writeExecutable(src, target string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	pendingFile, err := renameio.NewPendingFile(target, renameio.WithPermissions(perm))
	if err != nil {
		return err
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := io.Copy(pendingFile, in); err != nil {
		return err
	}

	return pendingFile.CloseAtomicallyReplace()
}
