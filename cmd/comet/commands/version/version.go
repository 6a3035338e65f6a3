// SPDX-License-Identifier: Apache-2.0

package version

import (
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/doctor"
	"github.com/hashgraph/comet/internal/help"
	"github.com/hashgraph/comet/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: help.Lookup("version").Short,
	Long:  help.Lookup("version").Long,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := common.FlagOutput.Value(cmd)
		if err != nil {
			doctor.CheckErr(cmd.Context(), err)
		}
		PrintVersion(cmd, format)
	},
}

func GetCmd() *cobra.Command {
	return versionCmd
}

func PrintVersion(cmd *cobra.Command, format string) {
	output, err := version.Get().Format(format)
	if err != nil {
		doctor.CheckErr(cmd.Context(), err)
	}
	cmd.Println(output)
}
