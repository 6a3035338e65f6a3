// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/applycmd"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/cmd/comet/commands/updatecmd"
	"github.com/hashgraph/comet/cmd/comet/commands/version"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/doctor"
	"github.com/hashgraph/comet/internal/help"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
)

// examples:
// ./comet check --source https://example.com/releases/comet_1.2.0_linux_amd64.tar.gz
// ./comet update --config ./config.yaml --install
// ./comet cleanup

var (
	flagConfig       string
	flagVersion      bool
	flagOutputFormat string

	rootCmd = &cobra.Command{
		Use:     "comet",
		Short:   help.Lookup("comet").Short,
		Long:    help.Lookup("comet").Long,
		Example: help.Lookup("comet").Example,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagVersion {
				version.PrintVersion(cmd, flagOutputFormat)
				return nil
			}

			return cmd.Help()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")

	// support '--version', '-v' to show version information
	rootCmd.PersistentFlags().BoolVarP(&flagVersion, "version", "v", false, "Show version")
	common.FlagOutput.SetVarP(rootCmd, &flagOutputFormat, false)

	// keep the order of commands as added
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(updatecmd.GetCmds()...)
	rootCmd.AddCommand(applycmd.GetCmd())
	rootCmd.AddCommand(version.GetCmd())
}

// Execute executes the root command.
func Execute(ctx context.Context) error {
	if ctx == nil {
		return errorx.IllegalArgument.New("context is required")
	}

	cobra.OnInitialize(func() {
		initConfig(ctx)
	})

	_, err := rootCmd.ExecuteContextC(ctx)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to execute command")
	}

	return nil
}

func initConfig(ctx context.Context) {
	var err error
	err = config.Initialize(flagConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	logConfig := config.Get().Log
	err = logx.Initialize(logConfig)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
