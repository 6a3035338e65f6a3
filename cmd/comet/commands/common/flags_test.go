// SPDX-License-Identifier: Apache-2.0

package common

import (
	"testing"
	"time"

	"github.com/automa-saga/automa"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestFlagDefinition_String(t *testing.T) {
	fp := FlagDefinition[string]{Name: "source", ShortName: "s", Description: "source", Default: "https://example.com/a-1.0.0.zip"}
	var v string
	cmd := &cobra.Command{}
	require.NoError(t, fp.register(cmd, cmd.Flags(), &v))

	got, err := fp.Value(cmd)
	require.NoError(t, err)
	require.Equal(t, fp.Default, got)
	require.False(t, fp.Changed(cmd))

	require.NoError(t, cmd.Flags().Set("source", "file:///tmp/a-2.0.0.zip"))
	got, err = fp.Value(cmd)
	require.NoError(t, err)
	require.Equal(t, "file:///tmp/a-2.0.0.zip", got)
	require.Equal(t, got, v)
	require.True(t, fp.Changed(cmd))
}

func TestFlagDefinition_PersistentInherited(t *testing.T) {
	fp := FlagDefinition[bool]{Name: "auto-update", ShortName: "a", Default: false}
	var v bool
	root := &cobra.Command{Use: "root"}
	child := &cobra.Command{Use: "child", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(child)
	require.NoError(t, fp.register(root, root.PersistentFlags(), &v))

	root.SetArgs([]string{"child", "--auto-update"})
	require.NoError(t, root.Execute())

	got, err := fp.Value(child)
	require.NoError(t, err)
	require.True(t, got)
}

func TestFlagDefinition_DurationAndUint64(t *testing.T) {
	cmd := &cobra.Command{}

	fd := FlagDefinition[time.Duration]{Name: "timeout", Default: time.Minute}
	var d time.Duration
	require.NoError(t, fd.register(cmd, cmd.Flags(), &d))
	require.NoError(t, cmd.Flags().Set("timeout", "90s"))
	got, err := fd.Value(cmd)
	require.NoError(t, err)
	require.Equal(t, 90*time.Second, got)

	fu := FlagDefinition[uint64]{Name: "max-retries", Default: 3}
	var u uint64
	require.NoError(t, fu.register(cmd, cmd.Flags(), &u))
	gotU, err := fu.Value(cmd)
	require.NoError(t, err)
	require.Equal(t, uint64(3), gotU)
}

func TestFlagDefinition_Errors(t *testing.T) {
	cmd := &cobra.Command{}

	fp := FlagDefinition[string]{Name: "x"}
	err := fp.register(cmd, cmd.Flags(), nil)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))

	var s string
	err = fp.register(nil, cmd.Flags(), &s)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))

	fi := FlagDefinition[int]{Name: "count"}
	var i int
	err = fi.register(cmd, cmd.Flags(), &i)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))

	_, err = fp.Value(cmd)
	require.True(t, errorx.IsOfType(err, errorx.IllegalArgument), "unregistered flag")
}

func TestGetExecutionMode(t *testing.T) {
	tests := []struct {
		name     string
		cont     bool
		stop     bool
		rollback bool
		want     automa.TypeMode
		wantErr  bool
	}{
		{"none set (default)", false, false, false, automa.StopOnError, false},
		{"continue only", true, false, false, automa.ContinueOnError, false},
		{"stop only", false, true, false, automa.StopOnError, false},
		{"rollback only", false, false, true, automa.RollbackOnError, false},
		{"continue and rollback", true, false, true, automa.StopOnError, true},
		{"all set", true, true, true, automa.StopOnError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetExecutionMode(tt.cont, tt.stop, tt.rollback)
			if tt.wantErr {
				require.True(t, errorx.IsOfType(err, errorx.IllegalArgument))
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}
