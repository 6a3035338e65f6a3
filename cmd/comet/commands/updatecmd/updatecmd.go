// SPDX-License-Identifier: Apache-2.0

// Package updatecmd holds the commands that run an update session.
package updatecmd

import "github.com/spf13/cobra"

// GetCmds returns the check, update and cleanup commands.
func GetCmds() []*cobra.Command {
	return []*cobra.Command{checkCmd, updateCmd, cleanupCmd}
}
