// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allStates = []State{
	NotChecked, Updated, Outdated, Downloading,
	DownloadFailed, ExtractFailed, InstallScheduled, InstallFailed,
}

func TestState_String(t *testing.T) {
	req := require.New(t)
	req.Equal("NotChecked", NotChecked.String())
	req.Equal("Updated", Updated.String())
	req.Equal("Outdated", Outdated.String())
	req.Equal("Downloading", Downloading.String())
	req.Equal("DownloadFailed", DownloadFailed.String())
	req.Equal("ExtractFailed", ExtractFailed.String())
	req.Equal("InstallScheduled", InstallScheduled.String())
	req.Equal("InstallFailed", InstallFailed.String())
	req.Equal("Unknown", State(99).String())
}

func TestCanTransition(t *testing.T) {
	allowed := map[State][]State{
		NotChecked:  {Outdated, Updated},
		Outdated:    {Downloading},
		Downloading: {DownloadFailed, ExtractFailed, InstallScheduled, InstallFailed},
	}

	for _, from := range allStates {
		for _, to := range allStates {
			expected := false
			for _, s := range allowed[from] {
				if s == to {
					expected = true
				}
			}
			require.Equal(t, expected, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_NeverRegresses(t *testing.T) {
	for _, from := range allStates {
		require.False(t, CanTransition(from, NotChecked), "%s -> NotChecked", from)
		require.False(t, CanTransition(from, from), "%s -> %s", from, from)
	}
}

func TestState_IsTerminal(t *testing.T) {
	for _, s := range allStates {
		hasSuccessor := false
		for _, to := range allStates {
			if CanTransition(s, to) {
				hasSuccessor = true
			}
		}
		require.Equal(t, !hasSuccessor, s.IsTerminal(), "%s", s)
	}
}
