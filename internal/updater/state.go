// SPDX-License-Identifier: Apache-2.0

package updater

// State is the lifecycle state of a single update session.
type State int

const (
	// NotChecked is the initial state; nothing has been asked of the source yet.
	NotChecked State = iota
	// Updated means the installed executable is current. Terminal.
	Updated
	// Outdated means the source carries a newer package.
	Outdated
	// Downloading means the package transfer was started. It remains the state after a
	// successful download and after extraction.
	Downloading
	// DownloadFailed is reached when the transport reports an error. Terminal.
	DownloadFailed
	// ExtractFailed is reached when the archiver reports an error. Terminal.
	ExtractFailed
	// InstallScheduled means an install request was handed to the installer. Terminal.
	InstallScheduled
	// InstallFailed is reached when the installer could not accept the request. Terminal.
	InstallFailed
)

var stateNames = map[State]string{
	NotChecked:       "NotChecked",
	Updated:          "Updated",
	Outdated:         "Outdated",
	Downloading:      "Downloading",
	DownloadFailed:   "DownloadFailed",
	ExtractFailed:    "ExtractFailed",
	InstallScheduled: "InstallScheduled",
	InstallFailed:    "InstallFailed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal returns true if no further lifecycle transition is possible from s.
func (s State) IsTerminal() bool {
	switch s {
	case Updated, DownloadFailed, ExtractFailed, InstallScheduled, InstallFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether the lifecycle allows moving from one state to another.
// States only move forward; there is no transition back to an earlier state.
func CanTransition(from, to State) bool {
	switch from {
	case NotChecked:
		return to == Outdated || to == Updated
	case Outdated:
		return to == Downloading
	case Downloading:
		return to == DownloadFailed || to == ExtractFailed || to == InstallScheduled || to == InstallFailed
	default:
		return false
	}
}
