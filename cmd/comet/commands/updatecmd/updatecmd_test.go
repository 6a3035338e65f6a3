// SPDX-License-Identifier: Apache-2.0

package updatecmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/source"
	"github.com/stretchr/testify/require"
)

func TestCleanupPaths(t *testing.T) {
	require.Equal(t, []string{"/tmp/comet/Update", "/opt/app/comet.old"}, cleanupPaths("/tmp/comet/Update", "/opt/app/comet"))
	require.Equal(t, []string{"/tmp/comet/Update"}, cleanupPaths("/tmp/comet/Update", ""))
}

func TestSameExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "comet")
	require.NoError(t, os.WriteFile(exe, []byte("bin"), 0o755))

	link := filepath.Join(dir, "comet-link")
	require.NoError(t, os.Symlink(exe, link))

	require.True(t, sameExecutable(exe, exe))
	require.True(t, sameExecutable(link, exe))
	require.False(t, sameExecutable(exe, filepath.Join(dir, "other")))
	require.False(t, sameExecutable("", exe))
}

func TestSessionSettings(t *testing.T) {
	s := sessionSettings(config.UpdateConfig{
		Source:         "https://example.com/comet_1.2.0.tar.gz",
		DownloadDir:    "/tmp/comet/Update",
		ExecutablePath: "/opt/app/comet",
		PackageFile:    "/tmp/comet/Update/pkg.tar.gz",
		AutoUpdate:     true,
	})

	require.Equal(t, "https://example.com/comet_1.2.0.tar.gz", s.Source)
	require.Equal(t, "/tmp/comet/Update", s.DownloadDirectory)
	require.Equal(t, "/opt/app/comet", s.ExecutablePath)
	require.Equal(t, "/tmp/comet/Update/pkg.tar.gz", s.PackageDownloadPath)
	require.True(t, s.AutoUpdate)
}

func TestCheckResult_Format(t *testing.T) {
	r := CheckResult{State: "Outdated", Source: "file:///srv/comet.zip", Executable: "/opt/app/comet"}

	out, err := r.Format("json")
	require.NoError(t, err)
	require.JSONEq(t, `{"state":"Outdated","source":"file:///srv/comet.zip","executable":"/opt/app/comet","downloaded":false}`, out)

	out, err = r.Format("YAML")
	require.NoError(t, err)
	require.Contains(t, out, "state: Outdated")
	require.NotContains(t, out, "package:")

	_, err = r.Format("xml")
	require.Error(t, err)
}

func TestNewProbe_UsesConfiguredTimeout(t *testing.T) {
	require.Equal(t, 45*time.Minute, newProbe(config.UpdateConfig{Timeout: 45 * time.Minute}).Timeout())
	require.Equal(t, source.DefaultTimeout, newProbe(config.UpdateConfig{}).Timeout())
}
