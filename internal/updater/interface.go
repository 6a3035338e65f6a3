// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=interface_mock.go -package=updater

// SourceProbe validates a source identifier before the session uses it.
type SourceProbe interface {
	// IsWellFormed returns true if source is a syntactically valid absolute URI.
	IsWellFormed(source string) bool
	// Exists returns true if source can be reached. A non-nil error is reported as unreachable.
	Exists(ctx context.Context, source string) (bool, error)
}

// VersionComparator decides whether the package at source is newer than the installed executable.
type VersionComparator interface {
	UpdateRequired(ctx context.Context, executablePath string, source string) (bool, error)
}

// CheckRecorder is notified once the preconditions of a check have passed.
// Its result is not consumed beyond success.
type CheckRecorder interface {
	RecordCheck(ctx context.Context, executablePath string, source string) error
}

// PackageResolver turns a source location into the package that should be downloaded.
type PackageResolver interface {
	Resolve(ctx context.Context, source string) (*Package, error)
}

// Transport moves the bytes of a remote package to a local destination.
type Transport interface {
	Download(ctx context.Context, location string, destination string) error
}

// Archiver extracts a downloaded archive into a directory.
type Archiver interface {
	Extract(ctx context.Context, archivePath string, destinationDir string) error
}

// Workspace owns the temporary download directory of a session.
type Workspace interface {
	CreateDirectory(path string) error
	// DeleteDirectory removes path recursively. A missing path is not an error.
	DeleteDirectory(path string) error
}

// Installer accepts an install request and arranges for it to be applied after the current process exits.
type Installer interface {
	Install(ctx context.Context, req InstallRequest) error
}
