// SPDX-License-Identifier: Apache-2.0

package updatecmd

import (
	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/help"
	"github.com/hashgraph/comet/internal/installer"
	"github.com/hashgraph/comet/internal/lock"
	"github.com/hashgraph/comet/internal/workflows"
	"github.com/hashgraph/comet/internal/workspace"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:     "cleanup",
	Short:   help.Lookup("cleanup").Short,
	Long:    help.Lookup("cleanup").Long,
	Example: help.Lookup("cleanup").Example,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := resolveUpdateConfig()
		if err != nil {
			return err
		}

		lk := lock.New(cfg.LockFile, logx.As())
		if err := lk.Acquire(cmd.Context()); err != nil {
			return err
		}
		defer lk.Release()

		paths := cleanupPaths(cfg.DownloadDir, cfg.ExecutablePath)
		logx.As().Debug().Strs("paths", paths).Msg("Removing update leftovers")

		common.RunWorkflow(cmd.Context(), workflows.NewCleanupWorkflow(workspace.New(workspace.WithLogger(logx.As())), paths...))
		return nil
	},
}

// cleanupPaths lists the leftovers of an update of executable downloaded into downloadDir.
func cleanupPaths(downloadDir, executable string) []string {
	paths := []string{downloadDir}
	if executable != "" {
		paths = append(paths, installer.BackupPath(executable))
	}

	return paths
}

func init() {
	common.FlagDownloadDir.SetVar(cleanupCmd, &flagDownloadDir, false)
	common.FlagExecutable.SetVar(cleanupCmd, &flagExecutable, false)
}
