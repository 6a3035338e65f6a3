// SPDX-License-Identifier: Apache-2.0

package updatecmd

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/help"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/workflows"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
)

var (
	flagExtract         bool
	flagInstall         bool
	flagStopOnError     bool
	flagRollbackOnError bool
	flagContinueOnError bool
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Short:   help.Lookup("update").Short,
	Long:    help.Lookup("update").Long,
	Example: help.Lookup("update").Example,
	RunE: func(cmd *cobra.Command, args []string) error {
		execMode, err := common.GetExecutionMode(flagContinueOnError, flagStopOnError, flagRollbackOnError)
		if err != nil {
			return errorx.Decorate(err, "failed to determine execution mode")
		}

		opts := workflows.DefaultWorkflowExecutionOptions()
		opts.ExecutionMode = execMode

		return withSession(cmd.Context(), func(ctx context.Context, c *updater.Coordinator, cfg config.UpdateConfig) error {
			logx.As().Debug().
				Any("config", cfg).
				Any("opts", opts).
				Bool("extract", flagExtract).
				Bool("install", flagInstall).
				Msg("Running update")

			wb := workflows.WithWorkflowExecutionMode(
				workflows.NewUpdateWorkflow(c, workflows.UpdateOptions{
					Settings: sessionSettings(cfg),
					Extract:  flagExtract,
					Install:  flagInstall,
				}), opts)

			common.RunWorkflow(ctx, wb)

			switch c.State() {
			case updater.Updated:
				logx.As().Info().Str("executable", cfg.ExecutablePath).Msg("Executable is up to date")
			case updater.InstallScheduled:
				logx.As().Info().Str("executable", cfg.ExecutablePath).Msg("Update will be installed once this process exits")
			default:
				logx.As().Info().
					Str("state", c.State().String()).
					Str("package", c.Settings().PackageDownloadPath).
					Msg("Update finished")
			}

			return nil
		})
	},
}

func init() {
	addSessionFlags(updateCmd)
	common.FlagExtract.SetVar(updateCmd, &flagExtract, false)
	common.FlagInstall.SetVar(updateCmd, &flagInstall, false)
	common.FlagStopOnError.SetVar(updateCmd, &flagStopOnError, false)
	common.FlagRollbackOnError.SetVar(updateCmd, &flagRollbackOnError, false)
	common.FlagContinueOnError.SetVar(updateCmd, &flagContinueOnError, false)
}
