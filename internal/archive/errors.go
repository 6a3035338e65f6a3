// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace        = errorx.NewNamespace("archive")
	ExtractionError        = ErrorsNamespace.NewType("extraction_error")
	UnsupportedFormatError = ErrorsNamespace.NewType("unsupported_format")
	PathTraversalError     = ErrorsNamespace.NewType("path_traversal_error")
	FileNotFoundError      = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())

	filePathProperty = errorx.RegisterPrintableProperty("file_path")
	entryProperty    = errorx.RegisterPrintableProperty("entry")
)

const (
	extractionErrorMsg        = "failed to extract file '%s' to '%s'"
	unsupportedFormatErrorMsg = "unsupported archive format '%s' (expected .tar.gz, .tgz or .zip)"
	pathTraversalErrorMsg     = "path traversal detected: entry '%s' attempts to escape extraction directory"
	fileNotFoundErrorMsg      = "file not found: '%s'"
)

func NewExtractionError(cause error, filePath, destPath string) *errorx.Error {
	err := ExtractionError.New(extractionErrorMsg, filePath, destPath).
		WithProperty(filePathProperty, filePath)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewUnsupportedFormatError(filePath string) *errorx.Error {
	return UnsupportedFormatError.New(unsupportedFormatErrorMsg, filePath).
		WithProperty(filePathProperty, filePath)
}

func NewPathTraversalError(entryName string) *errorx.Error {
	return PathTraversalError.New(pathTraversalErrorMsg, entryName).
		WithProperty(entryProperty, entryName)
}

func NewFileNotFoundError(filePath string) *errorx.Error {
	return FileNotFoundError.New(fileNotFoundErrorMsg, filePath).
		WithProperty(filePathProperty, filePath)
}
