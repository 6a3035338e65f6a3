// SPDX-License-Identifier: Apache-2.0

package steps

import (
	"context"
	"fmt"

	"github.com/automa-saga/automa"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/workflows/notify"
	"github.com/joomcode/errorx"
)

func sessionMetadata(c *updater.Coordinator) map[string]string {
	s := c.Settings()
	meta := map[string]string{
		metaState:      c.State().String(),
		metaSource:     s.Source,
		metaDirectory:  s.DownloadDirectory,
		metaExecutable: s.ExecutablePath,
	}

	if s.PackageDownloadPath != "" {
		meta[metaPackage] = s.PackageDownloadPath
	}

	return meta
}

func requireSession(c *updater.Coordinator, stp automa.Step) *automa.Report {
	if c == nil {
		return automa.FailureReport(stp, automa.WithError(errorx.IllegalArgument.New("update session is nil")))
	}
	return nil
}

// CheckForUpdate initializes the session with settings. When auto update is enabled and an update is
// available the package is downloaded as part of this step.
func CheckForUpdate(c *updater.Coordinator, settings updater.Settings) automa.Builder {
	return automa.NewStepBuilder().WithId(CheckForUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Checking %s for updates", settings.Source)
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to check for updates")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Update check completed")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if rpt := requireSession(c, stp); rpt != nil {
				return rpt
			}

			err := c.Initialize(ctx, settings)

			// with auto update the directory may have been created before a failed download
			if c.Prepared() {
				stp.State().Set(PreparedByThisStep, true)
			}
			if c.Downloaded() {
				stp.State().Set(DownloadedByThisStep, true)
			}

			if err != nil {
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(sessionMetadata(c)))
			}

			return automa.SuccessReport(stp, automa.WithMetadata(sessionMetadata(c)))
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if !stp.State().Bool(PreparedByThisStep) && !stp.State().Bool(DownloadedByThisStep) {
				return automa.SkippedReport(stp, automa.WithDetail("download directory was not created by this step, skipping rollback"))
			}

			if err := c.Cleanup(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		})
}

// PrepareUpdate creates the download directory of an outdated session.
func PrepareUpdate(c *updater.Coordinator) automa.Builder {
	return automa.NewStepBuilder().WithId(PrepareUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Preparing download directory")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to prepare download directory")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Download directory prepared")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if rpt := requireSession(c, stp); rpt != nil {
				return rpt
			}

			if c.State() != updater.Outdated {
				return automa.SkippedReport(stp, automa.WithDetail("no update is available"), automa.WithMetadata(sessionMetadata(c)))
			}

			if err := c.PrepareUpdate(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(sessionMetadata(c)))
			}
			stp.State().Set(PreparedByThisStep, true)

			return automa.SuccessReport(stp, automa.WithMetadata(sessionMetadata(c)))
		}).
		WithRollback(func(ctx context.Context, stp automa.Step) *automa.Report {
			if !stp.State().Bool(PreparedByThisStep) {
				return automa.SkippedReport(stp, automa.WithDetail("download directory was not created by this step, skipping rollback"))
			}

			if err := c.Cleanup(); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			return automa.SuccessReport(stp)
		})
}

// DownloadUpdate transfers the update package unless it has already been downloaded.
func DownloadUpdate(c *updater.Coordinator) automa.Builder {
	return automa.NewStepBuilder().WithId(DownloadUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Downloading update package")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to download update package")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Update package downloaded")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if rpt := requireSession(c, stp); rpt != nil {
				return rpt
			}

			if c.Downloaded() {
				return automa.SkippedReport(stp, automa.WithDetail("update package is already downloaded"), automa.WithMetadata(sessionMetadata(c)))
			}

			if c.State() != updater.Outdated {
				return automa.SkippedReport(stp, automa.WithDetail("no update is available"), automa.WithMetadata(sessionMetadata(c)))
			}

			if err := c.Download(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(sessionMetadata(c)))
			}
			stp.State().Set(DownloadedByThisStep, true)

			return automa.SuccessReport(stp, automa.WithMetadata(sessionMetadata(c)))
		})
}

// ExtractUpdate expands the downloaded package. It is skipped when disabled or when nothing was downloaded.
func ExtractUpdate(c *updater.Coordinator, enabled bool) automa.Builder {
	return automa.NewStepBuilder().WithId(ExtractUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Extracting update package")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to extract update package")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Update package extracted")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if rpt := requireSession(c, stp); rpt != nil {
				return rpt
			}

			if !enabled {
				return automa.SkippedReport(stp, automa.WithDetail("extraction is disabled"), automa.WithMetadata(sessionMetadata(c)))
			}

			if !c.Downloaded() || c.Extracted() {
				return automa.SkippedReport(stp, automa.WithDetail("no downloaded package to extract"), automa.WithMetadata(sessionMetadata(c)))
			}

			if err := c.Extract(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(sessionMetadata(c)))
			}
			stp.State().Set(ExtractedByThisStep, true)

			return automa.SuccessReport(stp, automa.WithMetadata(sessionMetadata(c)))
		})
}

// InstallUpdate schedules the replacement of the executable. It is skipped when disabled or when
// the package was not extracted.
func InstallUpdate(c *updater.Coordinator, enabled bool) automa.Builder {
	return automa.NewStepBuilder().WithId(InstallUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Scheduling installation of update")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to schedule installation of update")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Installation scheduled; it is applied once this process exits")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if rpt := requireSession(c, stp); rpt != nil {
				return rpt
			}

			if !enabled {
				return automa.SkippedReport(stp, automa.WithDetail("installation is disabled"), automa.WithMetadata(sessionMetadata(c)))
			}

			if !c.Extracted() {
				return automa.SkippedReport(stp, automa.WithDetail("no extracted package to install"), automa.WithMetadata(sessionMetadata(c)))
			}

			if err := c.Install(ctx); err != nil {
				return automa.FailureReport(stp, automa.WithError(err), automa.WithMetadata(sessionMetadata(c)))
			}
			stp.State().Set(ScheduledByThisStep, true)

			return automa.SuccessReport(stp, automa.WithMetadata(sessionMetadata(c)))
		})
}

// Sweeper removes leftovers of previous update sessions.
type Sweeper interface {
	Sweep(paths ...string) error
}

// CleanupUpdate removes the given paths. Missing paths are ignored.
func CleanupUpdate(sw Sweeper, paths ...string) automa.Builder {
	return automa.NewStepBuilder().WithId(CleanupUpdateStepId).
		WithPrepare(func(ctx context.Context, stp automa.Step) (context.Context, error) {
			notify.As().StepStart(ctx, stp, "Removing update leftovers")
			return ctx, nil
		}).
		WithOnFailure(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepFailure(ctx, stp, rpt, "Failed to remove update leftovers")
		}).
		WithOnCompletion(func(ctx context.Context, stp automa.Step, rpt *automa.Report) {
			notify.As().StepCompletion(ctx, stp, rpt, "Update leftovers removed")
		}).
		WithExecute(func(ctx context.Context, stp automa.Step) *automa.Report {
			if sw == nil {
				return automa.FailureReport(stp, automa.WithError(errorx.IllegalArgument.New("sweeper is nil")))
			}

			if err := sw.Sweep(paths...); err != nil {
				return automa.FailureReport(stp, automa.WithError(err))
			}

			meta := map[string]string{}
			for i, p := range paths {
				meta[fmt.Sprintf("path.%d", i)] = p
			}

			return automa.SuccessReport(stp, automa.WithMetadata(meta))
		})
}
