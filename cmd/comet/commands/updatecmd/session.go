// SPDX-License-Identifier: Apache-2.0

package updatecmd

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/automa-saga/logx"
	"github.com/hashgraph/comet/cmd/comet/commands/common"
	"github.com/hashgraph/comet/internal/archive"
	"github.com/hashgraph/comet/internal/config"
	"github.com/hashgraph/comet/internal/installer"
	"github.com/hashgraph/comet/internal/lock"
	"github.com/hashgraph/comet/internal/source"
	"github.com/hashgraph/comet/internal/state"
	"github.com/hashgraph/comet/internal/transport"
	"github.com/hashgraph/comet/internal/updater"
	"github.com/hashgraph/comet/internal/version"
	"github.com/hashgraph/comet/internal/versioncheck"
	"github.com/hashgraph/comet/internal/workspace"
	"github.com/joomcode/errorx"
	"github.com/spf13/cobra"
)

var (
	flagSource      string
	flagDownloadDir string
	flagExecutable  string
	flagPackageFile string
	flagAutoUpdate  bool
	flagTimeout     time.Duration
)

// addSessionFlags registers the flags shared by every command that builds an update session.
func addSessionFlags(cmd *cobra.Command) {
	common.FlagSource.SetVar(cmd, &flagSource, false)
	common.FlagDownloadDir.SetVar(cmd, &flagDownloadDir, false)
	common.FlagExecutable.SetVar(cmd, &flagExecutable, false)
	common.FlagPackageFile.SetVar(cmd, &flagPackageFile, false)
	common.FlagAutoUpdate.SetVar(cmd, &flagAutoUpdate, false)
	common.FlagTimeout.SetVar(cmd, &flagTimeout, false)
}

// resolveUpdateConfig applies the command line overrides and fills host defaults.
func resolveUpdateConfig() (config.UpdateConfig, string, error) {
	config.OverrideUpdateConfig(config.UpdateConfig{
		Source:         flagSource,
		DownloadDir:    flagDownloadDir,
		ExecutablePath: flagExecutable,
		PackageFile:    flagPackageFile,
		AutoUpdate:     flagAutoUpdate,
		Timeout:        flagTimeout,
	})

	running, err := os.Executable()
	if err != nil {
		return config.UpdateConfig{}, "", errorx.InternalError.Wrap(err, "failed to locate current executable")
	}

	cfg := config.ResolveDefaults(config.Get().Update, os.TempDir(), running)
	if cfg.LockFile == "" {
		cfg.LockFile = lock.DefaultPath()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, running, err
	}

	return cfg, running, nil
}

func sessionSettings(cfg config.UpdateConfig) updater.Settings {
	return updater.Settings{
		Source:              cfg.Source,
		DownloadDirectory:   cfg.DownloadDir,
		ExecutablePath:      cfg.ExecutablePath,
		PackageDownloadPath: cfg.PackageFile,
		AutoUpdate:          cfg.AutoUpdate,
	}
}

// sameExecutable returns true if both paths resolve to the same file.
func sameExecutable(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	if ra, err := filepath.EvalSymlinks(a); err == nil {
		a = ra
	}
	if rb, err := filepath.EvalSymlinks(b); err == nil {
		b = rb
	}

	return filepath.Clean(a) == filepath.Clean(b)
}

// newProbe bounds each reachability request by the configured timeout.
func newProbe(cfg config.UpdateConfig) *source.Probe {
	return source.NewProbe(
		source.WithTimeout(cfg.Timeout),
		source.WithLogger(logx.As()),
	)
}

// newSession wires the collaborators of an update session from the resolved configuration.
func newSession(cfg config.UpdateConfig, running string) (*updater.Coordinator, error) {
	logger := logx.As()

	var installed versioncheck.InstalledVersionReader = versioncheck.CommandVersionReader{Timeout: versioncheck.DefaultCommandTimeout}
	if sameExecutable(cfg.ExecutablePath, running) {
		installed = versioncheck.StaticVersionReader(version.Number())
	}

	downloader := transport.NewDownloader(
		transport.WithTimeout(cfg.Timeout),
		transport.WithRetry(cfg.RetryDelay, cfg.MaxRetries),
		transport.WithChecksum(cfg.Checksum.Algorithm, cfg.Checksum.Value),
		transport.WithLogger(logger),
	)

	return updater.NewCoordinator(
		updater.WithSourceProbe(newProbe(cfg)),
		updater.WithVersionComparator(versioncheck.NewComparator(
			versioncheck.WithInstalledVersionReader(installed),
			versioncheck.WithLogger(logger),
		)),
		updater.WithCheckRecorder(state.NewManager(cfg.StateDir, state.WithLogger(logger))),
		updater.WithTransport(downloader),
		updater.WithArchiver(archive.NewExtractor(archive.WithLogger(logger))),
		updater.WithWorkspace(workspace.New(workspace.WithLogger(logger))),
		updater.WithInstaller(installer.NewLauncher(running, installer.WithLauncherLogger(logger))),
		updater.WithLogger(logger),
	)
}

// withSession resolves the configuration, takes the cross-process lock and runs fn with a new session.
func withSession(ctx context.Context, fn func(ctx context.Context, c *updater.Coordinator, cfg config.UpdateConfig) error) error {
	cfg, running, err := resolveUpdateConfig()
	if err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	lk := lock.New(cfg.LockFile, logx.As())
	if err := lk.Acquire(ctx); err != nil {
		return err
	}
	defer lk.Release()

	c, err := newSession(cfg, running)
	if err != nil {
		return err
	}

	return fn(ctx, c, cfg)
}
