// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"github.com/joomcode/errorx"
)

var (
	ErrorsNamespace         = errorx.NewNamespace("installer")
	RequestError            = ErrorsNamespace.NewType("request_error")
	LaunchError             = ErrorsNamespace.NewType("launch_error")
	WaitError               = ErrorsNamespace.NewType("wait_error", errorx.Timeout())
	ReplacementMissingError = ErrorsNamespace.NewType("replacement_missing", errorx.NotFound())
	ReplaceError            = ErrorsNamespace.NewType("replace_error")

	pathProperty = errorx.RegisterPrintableProperty("path")
	pidProperty  = errorx.RegisterPrintableProperty("pid")
)

const (
	requestErrorMsg            = "failed to access install request '%s'"
	launchErrorMsg             = "failed to launch installer '%s'"
	waitErrorMsg               = "process %d did not exit"
	replacementMissingErrorMsg = "no replacement for '%s' found in '%s'"
	replaceErrorMsg            = "failed to replace '%s'"
)

func NewRequestError(cause error, path string) *errorx.Error {
	return RequestError.Wrap(cause, requestErrorMsg, path).
		WithProperty(pathProperty, path)
}

func NewLaunchError(cause error, executable string) *errorx.Error {
	return LaunchError.Wrap(cause, launchErrorMsg, executable).
		WithProperty(pathProperty, executable)
}

func NewWaitError(cause error, pid int) *errorx.Error {
	return WaitError.Wrap(cause, waitErrorMsg, pid).
		WithProperty(pidProperty, pid)
}

func NewReplacementMissingError(target, dir string) *errorx.Error {
	return ReplacementMissingError.New(replacementMissingErrorMsg, target, dir).
		WithProperty(pathProperty, target)
}

func NewReplaceError(cause error, target string) *errorx.Error {
	return ReplaceError.Wrap(cause, replaceErrorMsg, target).
		WithProperty(pathProperty, target)
}
