// SPDX-License-Identifier: Apache-2.0

package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/internal/doctor"
	"github.com/hashgraph/comet/internal/workflows/steps"
	"github.com/spf13/cobra"
)

// ReportsDir is where workflow reports are saved.
func ReportsDir() string {
	return filepath.Join(os.TempDir(), "comet", "reports")
}

// RunWorkflow builds and executes a workflow. Failures are diagnosed by doctor, which exits the process.
func RunWorkflow(ctx context.Context, b automa.Builder) *automa.Report {
	wf, err := b.Build()
	if err != nil {
		doctor.CheckErr(ctx, err)
	}

	report := wf.Execute(ctx)
	CheckWorkflowReport(ctx, report)
	return report
}

func CheckWorkflowReport(ctx context.Context, report *automa.Report) {
	timestamp := time.Now().Format("20060102_150405")
	reportPath := filepath.Join(ReportsDir(), fmt.Sprintf("%s_report_%s.yaml", report.Id, timestamp))
	steps.PrintWorkflowReport(report, reportPath)
	logx.As().Info().Str("report_path", reportPath).Msg("Workflow report is saved")

	for _, stepReport := range report.StepReports {
		if stepReport.Status == automa.StatusFailed {
			doctor.CheckReportErr(ctx, stepReport)
		}
	}

	if report.Error != nil {
		doctor.CheckReportErr(ctx, report)
	}
}

// DefaultRunE shows the help message. Commands always get a run function so that cobra marks them
// as runnable and invokes the PersistentPreRunE functions of the root command.
func DefaultRunE(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}
