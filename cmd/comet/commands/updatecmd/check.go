// SPDX-License-Identifier: Apache-2.0

package updatecmd

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/help"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/version"
	"github.com/hashgraph/comet/internal/workflows"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// CheckResult is printed by the check command.
type CheckResult struct {
	State      string `yaml:"state" json:"state"`
	Source     string `yaml:"source" json:"source"`
	Executable string `yaml:"executable" json:"executable"`
	Downloaded bool   `yaml:"downloaded" json:"downloaded"`
	Package    string `yaml:"package,omitempty" json:"package,omitempty"`
}

func (r CheckResult) Format(format string) (string, error) {
	var out []byte
	var err error
	switch strings.ToLower(format) {
	case version.FormatJSON:
		out, err = json.Marshal(r)
	case version.FormatYAML:
		out, err = yaml.Marshal(r)
	default:
		return "", errorx.IllegalFormat.New("unsupported format: %s", format)
	}

	if err != nil {
		return "", errorx.IllegalFormat.Wrap(err, "failed to format check result")
	}

	return strings.TrimRight(string(out), "\n"), nil
}

func newCheckResult(c *updater.Coordinator) CheckResult {
	s := c.Settings()
	r := CheckResult{
		State:      c.State().String(),
		Source:     s.Source,
		Executable: s.ExecutablePath,
		Downloaded: c.Downloaded(),
	}
	if r.Downloaded {
		r.Package = s.PackageDownloadPath
	}

	return r
}

var checkCmd = &cobra.Command{
	Use:     "check",
	Short:   help.Lookup("check").Short,
	Long:    help.Lookup("check").Long,
	Example: help.Lookup("check").Example,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd.Context(), func(ctx context.Context, c *updater.Coordinator, cfg config.UpdateConfig) error {
			logx.As().Debug().Any("config", cfg).Msg("Checking for updates")

			common.RunWorkflow(ctx, workflows.NewCheckWorkflow(c, sessionSettings(cfg)))

			format, err := common.FlagOutput.Value(cmd)
			if err != nil {
				return err
			}

			out, err := newCheckResult(c).Format(format)
			if err != nil {
				return err
			}

			cmd.Println(out)
			return nil
		})
	},
}

func init() {
	addSessionFlags(checkCmd)
}
