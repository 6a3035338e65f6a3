// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"context"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const defaultPackageFileName = "package"

// Package references a remote update package.
type Package struct {
	// Source is the location the session was configured with
	Source string
	// Download is where the package payload is fetched from
	Download string
}

// DirectResolver treats the source location as the package payload itself.
type DirectResolver struct{}

func (DirectResolver) Resolve(_ context.Context, source string) (*Package, error) {
	return &Package{Source: source, Download: source}, nil
}

// InstallRequest describes a replacement of the running executable that an external
// installer performs once the process identified by TargetPID has exited.
type InstallRequest struct {
	ID           string    `yaml:"id" json:"id"`
	Source       string    `yaml:"source" json:"source"`
	Archive      string    `yaml:"archive" json:"archive"`
	ExtractedDir string    `yaml:"extractedDir" json:"extractedDir"`
	TargetPath   string    `yaml:"targetPath" json:"targetPath"`
	TargetPID    int       `yaml:"targetPid" json:"targetPid"`
	CreatedAt    time.Time `yaml:"createdAt" json:"createdAt"`
}

// packageFileName returns the last path element of source, or a fixed name if source has none.
func packageFileName(source string) string {
	u, err := url.Parse(source)
	if err != nil {
		return defaultPackageFileName
	}

	p := u.Path
	if p == "" {
		p = u.Opaque
	}

	name := path.Base(p)
	if name == "." || name == "/" || strings.TrimSpace(name) == "" {
		return defaultPackageFileName
	}

	return name
}

// defaultPackageDownloadPath places the package artifact inside the download directory.
func defaultPackageDownloadPath(downloadDirectory, source string) string {
	return filepath.Join(downloadDirectory, packageFileName(source))
}
