// SPDX-License-Identifier: Apache-2.0

// Package applycmd holds the hidden command the detached installer process runs.
package applycmd

import (
	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/help"
	"github.com/hashgraph/comet/internal/installer"
	"github.com/spf13/cobra"
)

var (
	flagRequest string

	applyCmd = &cobra.Command{
		Use:     installer.ApplyCommand,
		Short:   help.Lookup("apply").Short,
		Long:    help.Lookup("apply").Long,
		Example: help.Lookup("apply").Example,
		Hidden:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logx.As().Info().Str("request", flagRequest).Msg("Applying scheduled update")
			return installer.NewApplier(installer.WithApplierLogger(logx.As())).Apply(cmd.Context(), flagRequest)
		},
	}
)

func init() {
	common.FlagRequest.SetVar(applyCmd, &flagRequest, true)
}

func GetCmd() *cobra.Command {
	return applyCmd
}
