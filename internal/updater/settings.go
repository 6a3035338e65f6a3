// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"strings"
)

// Settings is the configuration of an update session.
type Settings struct {
	// Source is the absolute URI of the remote package.
	Source string
	// DownloadDirectory is where the package lands and is extracted to.
	DownloadDirectory string
	// ExecutablePath is the installed binary being evaluated and replaced.
	ExecutablePath string
	// PackageDownloadPath is the file the package artifact is written to.
	// If empty, it is derived from DownloadDirectory and the source file name when downloading.
	PackageDownloadPath string
	// AutoUpdate starts the download as soon as an update is detected during Initialize.
	AutoUpdate bool
}

// DefaultSettings returns the settings used when only a source is known.
// The caller resolves tempPath and runningExecutable; auto update is disabled.
func DefaultSettings(source string, tempPath string, runningExecutable string) Settings {
	return Settings{
		Source:            source,
		DownloadDirectory: tempPath,
		ExecutablePath:    runningExecutable,
		AutoUpdate:        false,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
