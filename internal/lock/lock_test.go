// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashgraph/comet/internal/updater"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestLock_AcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locks", DefaultFileName)

	l := New(path, nil)
	require.Equal(t, path, l.Path())
	require.NoError(t, l.Acquire(context.Background()))
	l.Release()
	l.Release()

	// can be taken again once released
	require.NoError(t, l.Acquire(context.Background()))
	l.Release()
}

func TestLock_HeldByAnother(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	first := New(path, nil)
	require.NoError(t, first.Acquire(context.Background()))
	defer first.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	second := New(path, nil)
	start := time.Now()
	err := second.Acquire(ctx)
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, updater.ConcurrentOperationError), "got %v", err)
	require.Less(t, time.Since(start), time.Second, "a held lock must be reported without waiting")
}

func TestLock_FailsFastThenSucceedsAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)

	first := New(path, nil)
	require.NoError(t, first.Acquire(context.Background()))

	second := New(path, nil)
	err := second.Acquire(context.Background())
	require.True(t, errorx.IsOfType(err, updater.ConcurrentOperationError), "got %v", err)

	first.Release()
	require.NoError(t, second.Acquire(context.Background()))
	second.Release()
}

func TestLock_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := New(filepath.Join(t.TempDir(), DefaultFileName), nil)
	err := l.Acquire(ctx)
	require.Error(t, err)
	require.False(t, errorx.IsOfType(err, updater.ConcurrentOperationError))
}

func TestDefaultPath(t *testing.T) {
	require.Equal(t, DefaultFileName, filepath.Base(New("", nil).Path()))
}
