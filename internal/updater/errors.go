// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace = errorx.NewNamespace("updater")

	// precondition failures of CheckForUpdate, in the order they are evaluated
	ConcurrentOperationError = ErrorsNamespace.NewType("concurrent_operation")
	MissingSourceError       = ErrorsNamespace.NewType("missing_source")
	MalformedSourceError     = ErrorsNamespace.NewType("malformed_source")
	SourceUnreachableError   = ErrorsNamespace.NewType("source_unreachable", errorx.NotFound())
	MissingDownloadPathError = ErrorsNamespace.NewType("missing_download_path")
	AlreadyCheckedError      = ErrorsNamespace.NewType("already_checked")

	// phase failures
	InvalidTransitionError  = ErrorsNamespace.NewType("invalid_transition")
	VersionCheckFailedError = ErrorsNamespace.NewType("version_check_failed")
	DownloadFailedError     = ErrorsNamespace.NewType("download_failed")
	ExtractFailedError      = ErrorsNamespace.NewType("extract_failed")
	InstallFailedError      = ErrorsNamespace.NewType("install_failed")

	sourceProperty = errorx.RegisterPrintableProperty("source")
	stateProperty  = errorx.RegisterPrintableProperty("state")
	pathProperty   = errorx.RegisterPrintableProperty("path")
)

const (
	concurrentOperationErrorMsg = "another update process is already in progress"
	missingSourceErrorMsg       = "the source must be set before checking for updates"
	malformedSourceErrorMsg     = "the source uri '%s' is not well formatted"
	sourceUnreachableErrorMsg   = "the remote source '%s' is not found"
	missingDownloadPathErrorMsg = "the download path is empty or whitespace"
	alreadyCheckedErrorMsg      = "already checked for updates (state = %s)"
	invalidTransitionErrorMsg   = "cannot %s while in state %s"
	versionCheckFailedErrorMsg  = "failed to compare '%s' against source '%s'"
	downloadFailedErrorMsg      = "failed to download '%s' to '%s'"
	extractFailedErrorMsg       = "failed to extract '%s' to '%s'"
	installFailedErrorMsg       = "failed to schedule installation of '%s' over '%s'"
)

func NewConcurrentOperationError(cause error) *errorx.Error {
	err := ConcurrentOperationError.New(concurrentOperationErrorMsg)
	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewMissingSourceError() *errorx.Error {
	return MissingSourceError.New(missingSourceErrorMsg).
		WithProperty(errorx.PropertyPayload(), "source")
}

func NewMalformedSourceError(source string) *errorx.Error {
	return MalformedSourceError.New(malformedSourceErrorMsg, source).
		WithProperty(sourceProperty, source)
}

func NewSourceUnreachableError(cause error, source string) *errorx.Error {
	err := SourceUnreachableError.New(sourceUnreachableErrorMsg, source).
		WithProperty(sourceProperty, source)

	if cause != nil {
		err = err.WithUnderlyingErrors(cause)
	}

	return err
}

func NewMissingDownloadPathError() *errorx.Error {
	return MissingDownloadPathError.New(missingDownloadPathErrorMsg).
		WithProperty(errorx.PropertyPayload(), "download-dir")
}

func NewAlreadyCheckedError(state State) *errorx.Error {
	return AlreadyCheckedError.New(alreadyCheckedErrorMsg, state).
		WithProperty(stateProperty, state.String())
}

func NewInvalidTransitionError(action string, state State) *errorx.Error {
	return InvalidTransitionError.New(invalidTransitionErrorMsg, action, state).
		WithProperty(stateProperty, state.String())
}

func NewVersionCheckFailedError(cause error, executablePath, source string) *errorx.Error {
	return VersionCheckFailedError.New(versionCheckFailedErrorMsg, executablePath, source).
		WithProperty(sourceProperty, source).
		WithProperty(pathProperty, executablePath).
		WithUnderlyingErrors(cause)
}

func NewDownloadFailedError(cause error, location, destination string) *errorx.Error {
	return DownloadFailedError.New(downloadFailedErrorMsg, location, destination).
		WithProperty(sourceProperty, location).
		WithProperty(pathProperty, destination).
		WithUnderlyingErrors(cause)
}

func NewExtractFailedError(cause error, archivePath, destination string) *errorx.Error {
	return ExtractFailedError.New(extractFailedErrorMsg, archivePath, destination).
		WithProperty(pathProperty, archivePath).
		WithUnderlyingErrors(cause)
}

func NewInstallFailedError(cause error, archivePath, targetPath string) *errorx.Error {
	return InstallFailedError.New(installFailedErrorMsg, archivePath, targetPath).
		WithProperty(pathProperty, targetPath).
		WithUnderlyingErrors(cause)
}

// IsPreconditionError returns true if err is one of the guard failures raised by CheckForUpdate.
func IsPreconditionError(err error) bool {
	for _, t := range []*errorx.Type{
		ConcurrentOperationError, MissingSourceError, MalformedSourceError,
		SourceUnreachableError, MissingDownloadPathError, AlreadyCheckedError,
	} {
		if errorx.IsOfType(err, t) {
			return true
		}
	}

	return false
}
