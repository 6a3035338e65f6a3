// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"strconv"

	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace   = errorx.NewNamespace("transport")
	DownloadError     = ErrorsNamespace.NewType("download_error")
	ChecksumError     = ErrorsNamespace.NewType("checksum_error")
	FileNotFoundError = ErrorsNamespace.NewType("file_not_found", errorx.NotFound())
	InvalidURLError   = ErrorsNamespace.NewType("invalid_url_error")

	urlProperty          = errorx.RegisterPrintableProperty("url")
	filePathProperty     = errorx.RegisterPrintableProperty("file_path")
	algorithmProperty    = errorx.RegisterPrintableProperty("algorithm")
	expectedHashProperty = errorx.RegisterPrintableProperty("expected_hash")
	actualHashProperty   = errorx.RegisterPrintableProperty("actual_hash")
	statusCodeProperty   = errorx.RegisterPrintableProperty("status_code")
)

const (
	downloadErrorMsg     = "failed to download from URL '%s'"
	checksumErrorMsg     = "checksum verification failed for file '%s' using algorithm '%s' [ expected = '%s', actual = '%s' ]"
	fileNotFoundErrorMsg = "file not found: '%s'"
	invalidURLErrorMsg   = "invalid or unsupported URL: '%s'"
)

func NewDownloadError(cause error, url string, statusCode int) *errorx.Error {
	msg := downloadErrorMsg
	if statusCode > 0 {
		msg += " (status " + strconv.Itoa(statusCode) + ")"
	}

	err := DownloadError.New(msg, url).
		WithProperty(urlProperty, url)

	if statusCode > 0 {
		err = err.WithProperty(statusCodeProperty, statusCode)
	}

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewChecksumError(filePath, algorithm, expectedHash, actualHash string) *errorx.Error {
	return ChecksumError.New(checksumErrorMsg, filePath, algorithm, expectedHash, actualHash).
		WithProperty(filePathProperty, filePath).
		WithProperty(algorithmProperty, algorithm).
		WithProperty(expectedHashProperty, expectedHash).
		WithProperty(actualHashProperty, actualHash)
}

func NewFileNotFoundError(filePath string) *errorx.Error {
	return FileNotFoundError.New(fileNotFoundErrorMsg, filePath).
		WithProperty(filePathProperty, filePath)
}

func NewInvalidURLError(url string) *errorx.Error {
	return InvalidURLError.New(invalidURLErrorMsg, url).
		WithProperty(urlProperty, url)
}
