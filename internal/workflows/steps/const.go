// SPDX-License-Identifier: Apache-2.0

package steps

const (
	CheckForUpdateStepId = "check-for-update"
	PrepareUpdateStepId  = "prepare-update"
	DownloadUpdateStepId = "download-update"
	ExtractUpdateStepId  = "extract-update"
	InstallUpdateStepId  = "install-update"
	CleanupUpdateStepId  = "cleanup-update"

	PreparedByThisStep   = "prepared"
	DownloadedByThisStep = "downloaded"
	ExtractedByThisStep  = "extracted"
	ScheduledByThisStep  = "scheduled"

	metaState      = "state"
	metaSource     = "source"
	metaDirectory  = "directory"
	metaPackage    = "package"
	metaExecutable = "executable"
)
