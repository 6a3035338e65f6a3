// SPDX-License-Identifier: Apache-2.0

package state

import (
	"context"
	"testing"
	"time"

	"github.com/hashgraph/comet/internal/updater"
	"github.com/joomcode/errorx"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var _ updater.CheckRecorder = (*Manager)(nil)

func TestManager_RecordCheck(t *testing.T) {
	fs := afero.NewMemMapFs()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	m := NewManager("/var/tmp/comet/state", WithFs(fs), WithClock(func() time.Time { return now }))

	_, err := m.LastCheck()
	require.True(t, errorx.IsOfType(err, errorx.DataUnavailable))

	require.NoError(t, m.RecordCheck(context.Background(), "/opt/comet/comet", "https://example.com/comet-1.2.0.zip"))

	rec, err := m.LastCheck()
	require.NoError(t, err)
	require.Equal(t, "/opt/comet/comet", rec.Executable)
	require.Equal(t, "https://example.com/comet-1.2.0.zip", rec.Source)
	require.True(t, now.Equal(rec.CheckedAt))
	require.Equal(t, time.UTC, rec.CheckedAt.Location())
	require.Equal(t, 1, rec.Count)

	require.NoError(t, m.RecordCheck(context.Background(), "/opt/comet/comet", "https://example.com/comet-1.3.0.zip"))
	rec, err = m.LastCheck()
	require.NoError(t, err)
	require.Equal(t, 2, rec.Count)
	require.Equal(t, "https://example.com/comet-1.3.0.zip", rec.Source)

	entries, err := afero.ReadDir(fs, "/var/tmp/comet/state")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are renamed into place")
}

func TestManager_CorruptRecordIsReplaced(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager("/state", WithFs(fs))
	require.NoError(t, afero.WriteFile(fs, "/state/"+LastCheckFileName, []byte("count: [oops"), 0o644))

	_, err := m.LastCheck()
	require.True(t, errorx.IsOfType(err, errorx.IllegalFormat))

	require.NoError(t, m.RecordCheck(context.Background(), "/bin/app", "file:///pkg/app-2.0.0.zip"))
	rec, err := m.LastCheck()
	require.NoError(t, err)
	require.Equal(t, 1, rec.Count)
}

func TestManager_Remove(t *testing.T) {
	fs := afero.NewMemMapFs()
	m := NewManager("/state", WithFs(fs))

	require.NoError(t, m.Remove())
	require.NoError(t, m.RecordCheck(context.Background(), "/bin/app", "file:///pkg/app-2.0.0.zip"))
	require.NoError(t, m.Remove())

	exists, err := afero.DirExists(fs, "/state")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestManager_ReadOnlyFs(t *testing.T) {
	m := NewManager("/state", WithFs(afero.NewReadOnlyFs(afero.NewMemMapFs())))
	err := m.RecordCheck(context.Background(), "/bin/app", "file:///pkg/app-2.0.0.zip")
	require.True(t, errorx.IsOfType(err, errorx.IllegalState))
}
