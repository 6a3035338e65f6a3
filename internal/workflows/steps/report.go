// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// PrintWorkflowReport prints the workflow execution report in YAML format.
// If reportPath is set the report is also saved there.
var PrintWorkflowReport = func(report *automa.Report, reportPath string) {
	b, err := yaml.Marshal(report)
	if err != nil {
		fmt.Printf("Failed to marshal report: %v\n", err)
		return
	}
	fmt.Printf("Workflow Execution Report:\n%s\n", b)

	if reportPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
		logx.As().Warn().Err(err).Str("report_path", reportPath).Msg("Failed to create report directory")
		return
	}

	if err := renameio.WriteFile(reportPath, b, 0o644); err != nil {
		logx.As().Warn().Err(err).Str("report_path", reportPath).Msg("Failed to save workflow report")
	}
}
