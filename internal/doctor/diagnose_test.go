// SPDX-License-Identifier: Apache-2.0

package doctor

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/automa-saga/automa"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestToErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing source", err: updater.NewMissingSourceError(), code: 10400},
		{name: "malformed source", err: updater.NewMalformedSourceError("::"), code: 10400},
		{name: "missing download path", err: updater.NewMissingDownloadPathError(), code: 10400},
		{name: "illegal argument", err: errorx.IllegalArgument.New("bad"), code: 10400},
		{name: "unreachable", err: updater.NewSourceUnreachableError(nil, "https://x/y.zip"), code: 10404},
		{name: "config not found", err: config.NotFoundError.New("missing"), code: 10404},
		{name: "concurrent", err: updater.NewConcurrentOperationError(nil), code: 10409},
		{name: "already checked", err: updater.NewAlreadyCheckedError(updater.Outdated), code: 10409},
		{name: "download failed", err: updater.NewDownloadFailedError(errors.New("io"), "a", "b"), code: 10500},
		{name: "plain", err: errors.New("boom"), code: 10500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, toErrorCode(tt.err))
		})
	}
}

func TestFindResolution(t *testing.T) {
	require.Contains(t, findResolution(updater.NewMissingSourceError())[0], "--source")
	require.Contains(t, findResolution(updater.NewConcurrentOperationError(nil))[1], "update.lockFile")
	require.Contains(t, findResolution(errorx.IllegalArgument.New("x").WithProperty(errorx.PropertyPayload(), "source"))[0], `"source"`)
	require.Contains(t, findResolution(config.NotFoundError.New("x").WithProperty(errorx.PropertyPayload(), "/etc/comet.yaml"))[0], "/etc/comet.yaml")
	require.Equal(t, []string{"Check error message for details or contact support"}, findResolution(errors.New("boom")))

	hinted := updater.NewInstallFailedError(errors.New("denied"), "/tmp/a.zip", "/opt/comet").
		WithProperty(ErrPropertyResolution, "run the update as the owner of /opt/comet")
	require.Equal(t, []string{"run the update as the owner of /opt/comet"}, findResolution(hinted))
}

func TestDiagnose(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIdKey, "trace-1")
	cause := errors.New("connection reset")
	err := updater.NewDownloadFailedError(cause, "https://x/app-1.0.0.zip", "/tmp/app.zip")

	d := Diagnose(ctx, err)
	require.Equal(t, "trace-1", d.TraceId)
	require.Equal(t, 10500, d.Code)
	require.Equal(t, "updater.download_failed", d.ErrorType)
	require.Equal(t, os.Getpid(), d.Pid)
	require.NotEmpty(t, d.Resolution)
	if d.Stacktrace != "" {
		t.Cleanup(func() { _ = os.Remove(d.Stacktrace) })
		require.FileExists(t, d.Stacktrace)
	}
}

func TestDiagnose_PlainError(t *testing.T) {
	d := Diagnose(context.Background(), errors.New("boom"))
	require.Equal(t, "boom", d.Message)
	require.Empty(t, d.Cause)
	require.Empty(t, d.TraceId)
	if d.Stacktrace != "" {
		_ = os.Remove(d.Stacktrace)
	}
}

func TestGetInstructionsFromReport(t *testing.T) {
	require.Empty(t, GetInstructionsFromReport(nil))

	report := &automa.Report{
		StepReports: []*automa.Report{
			{Metadata: map[string]string{}},
			{Metadata: map[string]string{"instructions": "run comet cleanup"}},
		},
	}
	require.Equal(t, "run comet cleanup", GetInstructionsFromReport(report))
}
