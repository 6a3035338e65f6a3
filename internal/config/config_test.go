// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "comet-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func restoreGlobal(t *testing.T) {
	saved := Get()
	t.Cleanup(func() { _ = Set(&saved) })
}

func TestInitialize(t *testing.T) {
	restoreGlobal(t)

	path := writeConfig(t, `
log:
  level: "Debug"
update:
  source: "https://example.com/releases/comet-1.2.0.tar.gz"
  downloadDir: "/var/tmp/comet/Update"
  autoUpdate: true
  timeout: 5m
  maxRetries: 7
  checksum:
    algorithm: sha256
    value: abc123
`)

	require.NoError(t, Initialize(path))

	cfg := Get()
	require.Equal(t, "Debug", cfg.Log.Level)
	require.Equal(t, "https://example.com/releases/comet-1.2.0.tar.gz", cfg.Update.Source)
	require.Equal(t, "/var/tmp/comet/Update", cfg.Update.DownloadDir)
	require.True(t, cfg.Update.AutoUpdate)
	require.Equal(t, 5*time.Minute, cfg.Update.Timeout)
	require.Equal(t, DefaultRetryDelay, cfg.Update.RetryDelay)
	require.Equal(t, uint64(7), cfg.Update.MaxRetries)
	require.Equal(t, ChecksumConfig{Algorithm: "sha256", Value: "abc123"}, cfg.Update.Checksum)
	require.NoError(t, cfg.Validate())
}

func TestInitialize_EnvOverride(t *testing.T) {
	restoreGlobal(t)

	path := writeConfig(t, `
update:
  source: "https://example.com/original.zip"
`)

	t.Setenv("COMET_UPDATE_SOURCE", "https://mirror.example.com/comet-2.0.0.zip")

	require.NoError(t, Initialize(path))
	require.Equal(t, "https://mirror.example.com/comet-2.0.0.zip", Get().Update.Source)
}

func TestInitialize_UnknownKeysAreIgnored(t *testing.T) {
	restoreGlobal(t)

	path := writeConfig(t, `
update:
  url: "https://example.com/other-1.0.0.zip"
  tempDir: "/tmp/other"
  autoMode: true
`)

	require.NoError(t, Initialize(path))
	require.Empty(t, Get().Update.Source)
	require.Empty(t, Get().Update.DownloadDir)
	require.False(t, Get().Update.AutoUpdate)
}

func TestInitialize_MissingFile(t *testing.T) {
	restoreGlobal(t)

	err := Initialize(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, errorx.IsOfType(err, NotFoundError))

	payload, ok := errorx.ExtractPayload(err)
	require.True(t, ok)
	require.Contains(t, payload, "missing.yaml")
}

func TestInitialize_EmptyPathKeepsDefaults(t *testing.T) {
	restoreGlobal(t)

	before := Get()
	require.NoError(t, Initialize(""))
	require.Equal(t, before, Get())
}

func TestUpdateConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   UpdateConfig
		valid bool
	}{
		{name: "empty", cfg: UpdateConfig{}, valid: true},
		{name: "malformed source is left to the session", cfg: UpdateConfig{Source: "not a url"}, valid: true},
		{name: "root download dir", cfg: UpdateConfig{DownloadDir: "/"}, valid: false},
		{name: "negative timeout", cfg: UpdateConfig{Timeout: -time.Second}, valid: false},
		{name: "negative retry delay", cfg: UpdateConfig{RetryDelay: -time.Second}, valid: false},
		{name: "checksum without value", cfg: UpdateConfig{Checksum: ChecksumConfig{Algorithm: "sha256"}}, valid: false},
		{name: "unsupported checksum", cfg: UpdateConfig{Checksum: ChecksumConfig{Algorithm: "crc32", Value: "00"}}, valid: false},
		{name: "checksum upper case", cfg: UpdateConfig{Checksum: ChecksumConfig{Algorithm: "SHA512", Value: "00"}}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid {
				require.NoError(t, err)
			} else {
				require.True(t, errorx.IsOfType(err, errorx.IllegalArgument), "got %v", err)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	resolved := ResolveDefaults(UpdateConfig{}, "/tmp", "/opt/app/comet")
	require.Equal(t, filepath.Join("/tmp", "comet", DefaultDownloadDirName), resolved.DownloadDir)
	require.Equal(t, filepath.Join("/tmp", "comet", DefaultStateDirName), resolved.StateDir)
	require.Equal(t, "/opt/app/comet", resolved.ExecutablePath)

	explicit := UpdateConfig{DownloadDir: "/data/dl", StateDir: "/data/state", ExecutablePath: "/usr/local/bin/comet"}
	require.Equal(t, explicit, ResolveDefaults(explicit, "/tmp", "/opt/app/comet"))
}

func TestOverrideUpdateConfig(t *testing.T) {
	restoreGlobal(t)

	require.NoError(t, Set(&Config{Update: UpdateConfig{Source: "https://a/1.0.0.zip", DownloadDir: "/d"}}))
	OverrideUpdateConfig(UpdateConfig{Source: "https://b/2.0.0.zip", AutoUpdate: true})

	require.Equal(t, "https://b/2.0.0.zip", Get().Update.Source)
	require.Equal(t, "/d", Get().Update.DownloadDir)
	require.True(t, Get().Update.AutoUpdate)

	require.Error(t, Set(nil))
}
