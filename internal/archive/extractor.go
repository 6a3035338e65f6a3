// SPDX-License-Identifier: Apache-2.0

// Package archive extracts downloaded update packages.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatTarGz = "tar.gz"
	FormatZip   = "zip"

	DefaultDirPerm = 0o755
)

// Extractor expands .tar.gz, .tgz and .zip archives.
type Extractor struct {
	logger *zerolog.Logger
}

type Option = func(e *Extractor)

func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewExtractor(opts ...Option) *Extractor {
	nop := zerolog.Nop()
	e := &Extractor{logger: &nop}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// DetectFormat returns the archive format implied by the file extension, or an empty string.
func DetectFormat(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	default:
		return ""
	}
}

// Extract expands archivePath into destDir. Entries that would land outside destDir fail the
// whole extraction. Cancellation is checked between entries.
func (e *Extractor) Extract(ctx context.Context, archivePath string, destDir string) error {
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return NewFileNotFoundError(archivePath)
		}
		return NewExtractionError(err, archivePath, destDir)
	}

	if err := os.MkdirAll(destDir, DefaultDirPerm); err != nil {
		return NewExtractionError(err, archivePath, destDir)
	}

	var count int
	var err error
	switch DetectFormat(archivePath) {
	case FormatTarGz:
		count, err = e.extractTarGz(ctx, archivePath, destDir)
	case FormatZip:
		count, err = e.extractZip(ctx, archivePath, destDir)
	default:
		return NewUnsupportedFormatError(archivePath)
	}
	if err != nil {
		return err
	}

	e.logger.Debug().
		Str("archive", archivePath).
		Str("destination", destDir).
		Int("entries", count).
		Msg("Extracted archive")

	return nil
}

func (e *Extractor) extractTarGz(ctx context.Context, archivePath, destDir string) (int, error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return 0, NewExtractionError(err, archivePath, destDir)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return 0, NewExtractionError(err, archivePath, destDir)
	}
	defer func() { _ = gz.Close() }()

	count := 0
	tarReader := tar.NewReader(gz)
	for {
		if err := ctx.Err(); err != nil {
			return count, NewExtractionError(err, archivePath, destDir)
		}

		hdr, err := tarReader.Next()
		if err == io.EOF {
			return count, nil
		}
		if err != nil {
			return count, NewExtractionError(err, archivePath, destDir)
		}

		target, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return count, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, DefaultDirPerm); err != nil {
				return count, NewExtractionError(err, archivePath, destDir)
			}
		case tar.TypeReg:
			if err := writeFile(target, tarReader, os.FileMode(hdr.Mode).Perm()); err != nil {
				return count, NewExtractionError(err, archivePath, destDir)
			}
		default:
			// links and devices are never part of a package
			e.logger.Debug().Str("entry", hdr.Name).Msg("Skipping unsupported archive entry")
			continue
		}
		count++
	}
}

func (e *Extractor) extractZip(ctx context.Context, archivePath, destDir string) (int, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return 0, NewExtractionError(err, archivePath, destDir)
	}
	defer func() { _ = r.Close() }()

	count := 0
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return count, NewExtractionError(err, archivePath, destDir)
		}

		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return count, err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, DefaultDirPerm); err != nil {
				return count, NewExtractionError(err, archivePath, destDir)
			}
			count++
			continue
		}

		if !f.Mode().IsRegular() {
			e.logger.Debug().Str("entry", f.Name).Msg("Skipping unsupported archive entry")
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return count, NewExtractionError(err, archivePath, destDir)
		}
		err = writeFile(target, rc, f.Mode().Perm())
		_ = rc.Close()
		if err != nil {
			return count, NewExtractionError(err, archivePath, destDir)
		}
		count++
	}

	return count, nil
}

// safeJoin resolves name below destDir and rejects names that escape it.
func safeJoin(destDir, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", NewPathTraversalError(name)
	}

	target := filepath.Join(destDir, name)
	rel, err := filepath.Rel(filepath.Clean(destDir), target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", NewPathTraversalError(name)
	}

	return target, nil
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), DefaultDirPerm); err != nil {
		return err
	}

	if perm == 0 {
		perm = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
