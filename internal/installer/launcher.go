// SPDX-License-Identifier: Apache-2.0

// Package installer replaces the running executable with an extracted update.
//
// The process that downloaded the update writes an install request and starts a detached copy of
// itself with "apply --request <file>". That process waits for the requester to exit, swaps the
// binary and leaves a result file next to the request.
package installer

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/hashgraph/comet/internal/updater"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// ApplyCommand is the subcommand the detached installer runs.
const ApplyCommand = "apply"

// Launcher implements updater.Installer by spawning a detached "apply" process.
type Launcher struct {
	executable string
	start      func(cmd *exec.Cmd) error
	logger     *zerolog.Logger
}

type LauncherOption = func(l *Launcher)

// WithCommandStarter replaces the function that starts the detached process.
func WithCommandStarter(start func(cmd *exec.Cmd) error) LauncherOption {
	return func(l *Launcher) {
		if start != nil {
			l.start = start
		}
	}
}

func WithLauncherLogger(logger *zerolog.Logger) LauncherOption {
	return func(l *Launcher) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLauncher returns a Launcher that runs executable to apply requests.
func NewLauncher(executable string, opts ...LauncherOption) *Launcher {
	nop := zerolog.Nop()
	l := &Launcher{
		executable: executable,
		start:      startDetached,
		logger:     &nop,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Install writes req into its extracted directory and starts the detached apply process.
func (l *Launcher) Install(_ context.Context, req updater.InstallRequest) error {
	if l.executable == "" {
		return errorx.IllegalState.New("no installer executable is configured")
	}

	requestFile := filepath.Join(req.ExtractedDir, RequestFileName)
	if err := WriteRequest(requestFile, req); err != nil {
		return err
	}

	// the apply process must outlive this one, so it is not bound to ctx
	cmd := exec.Command(l.executable, ApplyCommand, "--request", requestFile)
	setDetachedProcAttr(cmd)

	l.logger.Info().
		Str("request", requestFile).
		Str("id", req.ID).
		Str("command", cmd.String()).
		Msg("Starting installer process")

	if err := l.start(cmd); err != nil {
		return NewLaunchError(err, l.executable)
	}

	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	// release the process so the OS can fully detach it
	return cmd.Process.Release()
}
