// SPDX-License-Identifier: Apache-2.0

// Package workspace manages the temporary directories an update session downloads into.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	// RootDirName groups every workspace below the system temp directory
	RootDirName = "comet"

	DefaultDirPerm os.FileMode = 0o755
)

var (
	ErrorsNamespace     = errorx.NewNamespace("workspace")
	InvalidPathError    = ErrorsNamespace.NewType("invalid_path", errorx.IllegalArgument())
	DirectoryError      = ErrorsNamespace.NewType("directory_error")
	pathProperty        = errorx.RegisterPrintableProperty("path")
	invalidPathErrorMsg = "refusing to operate on path '%s'"
)

// Workspace creates and deletes directories on an afero filesystem.
type Workspace struct {
	fs     afero.Fs
	logger *zerolog.Logger
}

type Option = func(w *Workspace)

// WithFs overrides the filesystem, mostly used by tests with afero.NewMemMapFs.
func WithFs(fs afero.Fs) Option {
	return func(w *Workspace) {
		if fs != nil {
			w.fs = fs
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

func New(opts ...Option) *Workspace {
	nop := zerolog.Nop()
	w := &Workspace{
		fs:     afero.NewOsFs(),
		logger: &nop,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Fs returns the underlying filesystem.
func (w *Workspace) Fs() afero.Fs {
	return w.fs
}

// CreateDirectory creates path and any missing parents.
func (w *Workspace) CreateDirectory(path string) error {
	if err := validate(path); err != nil {
		return err
	}

	if err := w.fs.MkdirAll(path, DefaultDirPerm); err != nil {
		return DirectoryError.Wrap(err, "failed to create directory '%s'", path).
			WithProperty(pathProperty, path)
	}

	w.logger.Debug().Str("path", path).Msg("Created directory")
	return nil
}

// DeleteDirectory removes path recursively. A missing path is not an error.
func (w *Workspace) DeleteDirectory(path string) error {
	if err := validate(path); err != nil {
		return err
	}

	exists, err := afero.DirExists(w.fs, path)
	if err != nil {
		return DirectoryError.Wrap(err, "failed to stat directory '%s'", path).
			WithProperty(pathProperty, path)
	}
	if !exists {
		return nil
	}

	if err := w.fs.RemoveAll(path); err != nil {
		return DirectoryError.Wrap(err, "failed to delete directory '%s'", path).
			WithProperty(pathProperty, path)
	}

	w.logger.Debug().Str("path", path).Msg("Deleted directory")
	return nil
}

// Sweep deletes every path, continuing past failures. The returned error lists all of them.
func (w *Workspace) Sweep(paths ...string) error {
	var result *multierror.Error
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}

		isDir, err := afero.IsDir(w.fs, p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			result = multierror.Append(result, err)
			continue
		}

		if isDir {
			err = w.DeleteDirectory(p)
		} else {
			err = w.fs.Remove(p)
		}

		if err != nil && !os.IsNotExist(err) {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

// TempPath returns the workspace directory called name below root.
func TempPath(root, name string) string {
	return filepath.Join(root, RootDirName, name)
}

// validate rejects paths whose deletion would be catastrophic.
func validate(path string) error {
	p := strings.TrimSpace(path)
	if p == "" {
		return InvalidPathError.New(invalidPathErrorMsg, path).WithProperty(pathProperty, path)
	}

	clean := filepath.Clean(p)
	if clean == string(filepath.Separator) || clean == "." {
		return InvalidPathError.New(invalidPathErrorMsg, path).WithProperty(pathProperty, path)
	}

	return nil
}
