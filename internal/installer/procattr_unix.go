// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package installer

import (
	"os/exec"
	"syscall"
)

// setDetachedProcAttr runs the installer in a new session so it survives the exit of its parent.
func setDetachedProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
