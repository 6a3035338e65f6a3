// SPDX-License-Identifier: Apache-2.0

// Package versioncheck decides whether a remote package is newer than the installed executable.
package versioncheck

import (
	"context"
	"encoding/json"
	"net/url"
	"os/exec"
	"path"
	"strings"
	"time"

	"github.com/hashgraph/comet/pkg/semver"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

const (
	DefaultCommandTimeout = 10 * time.Second

	installedVersionErrMsg = "failed to determine the version of '%s'"
	remoteVersionErrMsg    = "failed to determine the version published at '%s'"
)

var (
	ErrorsNamespace       = errorx.NewNamespace("versioncheck")
	InstalledVersionError = ErrorsNamespace.NewType("installed_version_unknown")
	RemoteVersionError    = ErrorsNamespace.NewType("remote_version_unknown")

	executableProperty = errorx.RegisterPrintableProperty("executable")
	sourceProperty     = errorx.RegisterPrintableProperty("source")

	versionCommandArguments = []string{"version", "--output", "json"}
)

// InstalledVersionReader returns the version of the executable at path.
type InstalledVersionReader interface {
	InstalledVersion(ctx context.Context, executablePath string) (string, error)
}

// RemoteVersionReader returns the version of the package at source.
type RemoteVersionReader interface {
	RemoteVersion(ctx context.Context, source string) (string, error)
}

// Comparator compares the installed and remote versions with semantic version precedence.
type Comparator struct {
	installed InstalledVersionReader
	remote    RemoteVersionReader
	logger    *zerolog.Logger
}

type Option = func(c *Comparator)

func WithInstalledVersionReader(r InstalledVersionReader) Option {
	return func(c *Comparator) {
		if r != nil {
			c.installed = r
		}
	}
}

func WithRemoteVersionReader(r RemoteVersionReader) Option {
	return func(c *Comparator) {
		if r != nil {
			c.remote = r
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Comparator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewComparator(opts ...Option) *Comparator {
	nop := zerolog.Nop()
	c := &Comparator{
		installed: CommandVersionReader{Timeout: DefaultCommandTimeout},
		remote:    FileNameVersionReader{},
		logger:    &nop,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// UpdateRequired returns true if the package at source has a higher version than the executable.
func (c *Comparator) UpdateRequired(ctx context.Context, executablePath string, source string) (bool, error) {
	installed, err := c.installed.InstalledVersion(ctx, executablePath)
	if err != nil {
		return false, err
	}

	remote, err := c.remote.RemoteVersion(ctx, source)
	if err != nil {
		return false, err
	}

	newer, err := semver.IsNewer(remote, installed)
	if err != nil {
		return false, err
	}

	c.logger.Debug().
		Str("installed", installed).
		Str("remote", remote).
		Bool("updateRequired", newer).
		Msg("Compared versions")

	return newer, nil
}

// CommandVersionReader runs "<executable> version --output json" and reads its version field.
type CommandVersionReader struct {
	Timeout time.Duration
}

func (r CommandVersionReader) InstalledVersion(ctx context.Context, executablePath string) (string, error) {
	if strings.TrimSpace(executablePath) == "" {
		return "", InstalledVersionError.New(installedVersionErrMsg, executablePath).
			WithProperty(executableProperty, executablePath)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, executablePath, versionCommandArguments...).Output()
	if err != nil {
		return "", InstalledVersionError.Wrap(err, installedVersionErrMsg, executablePath).
			WithProperty(executableProperty, executablePath)
	}

	return parseVersionOutput(executablePath, out)
}

// parseVersionOutput accepts the json version document, falling back to the first version in the text.
func parseVersionOutput(executablePath string, out []byte) (string, error) {
	var info struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(out, &info); err == nil && strings.TrimSpace(info.Version) != "" {
		return strings.TrimSpace(info.Version), nil
	}

	if v, ok := semver.Find(string(out)); ok {
		return v, nil
	}

	return "", InstalledVersionError.New(installedVersionErrMsg, executablePath).
		WithProperty(executableProperty, executablePath)
}

// FileNameVersionReader reads the version from the file name of the source URL, e.g. comet-1.4.0.tar.gz.
type FileNameVersionReader struct{}

func (FileNameVersionReader) RemoteVersion(_ context.Context, source string) (string, error) {
	u, err := url.Parse(source)
	if err != nil {
		return "", RemoteVersionError.Wrap(err, remoteVersionErrMsg, source).
			WithProperty(sourceProperty, source)
	}

	if v, ok := semver.Find(path.Base(u.Path)); ok {
		return v, nil
	}

	return "", RemoteVersionError.New(remoteVersionErrMsg, source).
		WithProperty(sourceProperty, source)
}

// StaticVersionReader reports a fixed version for every input.
type StaticVersionReader string

func (s StaticVersionReader) InstalledVersion(context.Context, string) (string, error) {
	return string(s), nil
}

func (s StaticVersionReader) RemoteVersion(context.Context, string) (string, error) {
	return string(s), nil
}
