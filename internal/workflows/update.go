// SPDX-License-Identifier: Apache-2.0

package workflows

import (
	"github.com/automa-saga/automa"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/workflows/steps"
)

// UpdateOptions selects how far an update workflow goes after the package is downloaded.
type UpdateOptions struct {
	Settings updater.Settings
	Extract  bool
	// Install requires Extract
	Install bool
}

// NewCheckWorkflow only checks whether an update is available.
// With auto update enabled in settings the package is downloaded as well.
func NewCheckWorkflow(c *updater.Coordinator, settings updater.Settings) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("check-workflow").Steps(
		steps.CheckForUpdate(c, settings),
	)
}

// NewUpdateWorkflow checks for an update and, if one is available, downloads it, then optionally
// extracts it and schedules its installation.
func NewUpdateWorkflow(c *updater.Coordinator, opts UpdateOptions) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("update-workflow").Steps(
		steps.CheckForUpdate(c, opts.Settings),
		steps.PrepareUpdate(c),
		steps.DownloadUpdate(c),
		steps.ExtractUpdate(c, opts.Extract || opts.Install),
		steps.InstallUpdate(c, opts.Install),
	)
}

// NewCleanupWorkflow removes the download directory and other leftovers such as executable backups.
func NewCleanupWorkflow(sw steps.Sweeper, paths ...string) *automa.WorkflowBuilder {
	return automa.NewWorkflowBuilder().WithId("cleanup-workflow").Steps(
		steps.CleanupUpdate(sw, paths...),
	)
}
