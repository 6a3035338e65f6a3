// SPDX-License-Identifier: Apache-2.0

package updater

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

// Coordinator owns the lifecycle of one update session.
//
// Every phase is a blocking call. A session runs at most one phase at a time; a call made while
// another one is running fails with ConcurrentOperationError. State only moves forward, see CanTransition.
type Coordinator struct {
	mu         sync.Mutex
	settings   Settings
	state      State
	inProgress bool
	prepared   bool
	downloaded bool
	extracted  bool
	pkg        *Package

	probe      SourceProbe
	comparator VersionComparator
	recorder   CheckRecorder
	resolver   PackageResolver
	transport  Transport
	archiver   Archiver
	workspace  Workspace
	installer  Installer

	pid    int
	now    func() time.Time
	logger *zerolog.Logger
}

// Option allows injecting collaborators for the Coordinator
type Option = func(c *Coordinator)

func WithSourceProbe(probe SourceProbe) Option {
	return func(c *Coordinator) {
		if probe != nil {
			c.probe = probe
		}
	}
}

func WithVersionComparator(comparator VersionComparator) Option {
	return func(c *Coordinator) {
		if comparator != nil {
			c.comparator = comparator
		}
	}
}

func WithCheckRecorder(recorder CheckRecorder) Option {
	return func(c *Coordinator) {
		if recorder != nil {
			c.recorder = recorder
		}
	}
}

func WithPackageResolver(resolver PackageResolver) Option {
	return func(c *Coordinator) {
		if resolver != nil {
			c.resolver = resolver
		}
	}
}

func WithTransport(transport Transport) Option {
	return func(c *Coordinator) {
		if transport != nil {
			c.transport = transport
		}
	}
}

func WithArchiver(archiver Archiver) Option {
	return func(c *Coordinator) {
		if archiver != nil {
			c.archiver = archiver
		}
	}
}

func WithWorkspace(workspace Workspace) Option {
	return func(c *Coordinator) {
		if workspace != nil {
			c.workspace = workspace
		}
	}
}

func WithInstaller(installer Installer) Option {
	return func(c *Coordinator) {
		if installer != nil {
			c.installer = installer
		}
	}
}

// WithProcessID overrides the process id placed in install requests.
func WithProcessID(pid int) Option {
	return func(c *Coordinator) {
		if pid > 0 {
			c.pid = pid
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCoordinator returns an unconfigured session in state NotChecked.
// A SourceProbe, a VersionComparator and a Workspace are required.
func NewCoordinator(opts ...Option) (*Coordinator, error) {
	nop := zerolog.Nop()
	c := &Coordinator{
		state:    NotChecked,
		resolver: DirectResolver{},
		pid:      os.Getpid(),
		now:      time.Now,
		logger:   &nop,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.probe == nil {
		return nil, errorx.IllegalArgument.New("source probe is required")
	}
	if c.comparator == nil {
		return nil, errorx.IllegalArgument.New("version comparator is required")
	}
	if c.workspace == nil {
		return nil, errorx.IllegalArgument.New("workspace is required")
	}

	return c, nil
}

// Start creates a session and immediately runs Initialize with the given settings.
//
// The coordinator is returned together with any lifecycle error so that callers can inspect
// its state and clean up. It is nil only if the collaborators are invalid.
func Start(ctx context.Context, settings Settings, opts ...Option) (*Coordinator, error) {
	c, err := NewCoordinator(opts...)
	if err != nil {
		return nil, err
	}

	return c, c.Initialize(ctx, settings)
}

// StartWithDefaults is Start with DefaultSettings.
func StartWithDefaults(ctx context.Context, source, tempPath, runningExecutable string, opts ...Option) (*Coordinator, error) {
	return Start(ctx, DefaultSettings(source, tempPath, runningExecutable), opts...)
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Settings returns a copy of the session configuration.
func (c *Coordinator) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Package returns the package resolved by Download, or nil.
func (c *Coordinator) Package() *Package {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pkg
}

// Prepared returns true once the session has created its download directory.
func (c *Coordinator) Prepared() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepared
}

// Downloaded returns true once the package has been transferred.
func (c *Coordinator) Downloaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloaded
}

// Extracted returns true once the package has been expanded into the download directory.
func (c *Coordinator) Extracted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extracted
}

// InProgress returns true while a lifecycle phase is running.
func (c *Coordinator) InProgress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inProgress
}

// SetSource changes the package source. The source is frozen once checking begins.
func (c *Coordinator) SetSource(source string) error {
	return c.configure("change source", untilChecked, func(s *Settings) { s.Source = source })
}

// SetDownloadDirectory changes where the package is downloaded to. It is allowed until Download begins.
func (c *Coordinator) SetDownloadDirectory(dir string) error {
	return c.configure("change download directory", untilDownload, func(s *Settings) {
		if s.DownloadDirectory != dir {
			c.prepared = false
		}
		s.DownloadDirectory = dir
	})
}

// SetExecutablePath changes the executable being evaluated. It is consumed by the check.
func (c *Coordinator) SetExecutablePath(path string) error {
	return c.configure("change executable path", untilChecked, func(s *Settings) { s.ExecutablePath = path })
}

// SetPackageDownloadPath changes the file the package is written to. It is allowed until Download begins.
func (c *Coordinator) SetPackageDownloadPath(path string) error {
	return c.configure("change package download path", untilDownload, func(s *Settings) { s.PackageDownloadPath = path })
}

// SetAutoUpdate changes whether Initialize downloads an available update. It is consumed by Initialize.
func (c *Coordinator) SetAutoUpdate(enabled bool) error {
	return c.configure("change auto update", untilChecked, func(s *Settings) { s.AutoUpdate = enabled })
}

func untilChecked(s State) bool {
	return s == NotChecked
}

func untilDownload(s State) bool {
	return s == NotChecked || s == Outdated
}

// configure applies fn to the settings if allowed accepts the current state. Nothing can be changed
// while a phase is running.
func (c *Coordinator) configure(action string, allowed func(State) bool, fn func(s *Settings)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inProgress {
		return NewConcurrentOperationError(nil)
	}
	if !allowed(c.state) {
		return NewInvalidTransitionError(action, c.state)
	}

	fn(&c.settings)
	return nil
}

// Initialize applies settings, checks for an update and, if one is required and auto update is
// enabled, prepares the download directory and downloads the package.
// Extraction and installation are left to the caller.
//
// A session that has already been checked fails with AlreadyCheckedError before settings are
// inspected, so frozen settings are never replaced.
func (c *Coordinator) Initialize(ctx context.Context, settings Settings) error {
	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		return NewConcurrentOperationError(nil)
	}
	if c.state != NotChecked {
		state := c.state
		c.mu.Unlock()
		return NewAlreadyCheckedError(state)
	}
	c.settings = settings
	c.inProgress = true
	c.mu.Unlock()
	defer c.end()

	if err := c.checkForUpdate(ctx); err != nil {
		return err
	}

	if c.State() != Outdated {
		return nil
	}

	if !settings.AutoUpdate {
		c.logger.Info().
			Str("source", settings.Source).
			Msg("Update available; auto update is disabled")
		return nil
	}

	if err := c.prepareUpdate(); err != nil {
		return err
	}

	return c.download(ctx)
}

// CheckForUpdate validates the session configuration and moves it from NotChecked to
// Outdated or Updated. Preconditions are evaluated in order and the first failure is returned.
func (c *Coordinator) CheckForUpdate(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.checkForUpdate(ctx)
}

// PrepareUpdate creates the download directory of an outdated session.
func (c *Coordinator) PrepareUpdate() error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.prepareUpdate()
}

// Download resolves the package from the source and transfers it to the package download path.
// It must be called on an Outdated session.
func (c *Coordinator) Download(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.download(ctx)
}

// Extract expands the downloaded package into the download directory. The state is unchanged
// on success.
func (c *Coordinator) Extract(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.extract(ctx)
}

// Install hands an InstallRequest to the installer. The running executable is never overwritten
// in place; the installer applies the request after this process exits.
func (c *Coordinator) Install(ctx context.Context) error {
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	return c.install(ctx)
}

// UpdateRequired asks the version comparator whether the source is newer than the executable.
// It does not change the session state.
func (c *Coordinator) UpdateRequired(ctx context.Context) (bool, error) {
	s := c.Settings()
	if isBlank(s.Source) {
		return false, NewMissingSourceError()
	}

	required, err := c.comparator.UpdateRequired(ctx, s.ExecutablePath, s.Source)
	if err != nil {
		return false, NewVersionCheckFailedError(err, s.ExecutablePath, s.Source)
	}

	return required, nil
}

// Cleanup deletes the download directory. It is safe to call more than once and before any download.
func (c *Coordinator) Cleanup() error {
	c.mu.Lock()
	if c.inProgress {
		c.mu.Unlock()
		return NewConcurrentOperationError(nil)
	}
	dir := c.settings.DownloadDirectory
	c.mu.Unlock()

	if isBlank(dir) {
		return nil
	}

	if err := c.workspace.DeleteDirectory(dir); err != nil {
		return err
	}

	c.logger.Debug().Str("directory", dir).Msg("Removed download directory")
	return nil
}

func (c *Coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inProgress {
		c.logger.Debug().Msg("Rejected update call: another update process is in progress")
		return NewConcurrentOperationError(nil)
	}

	c.inProgress = true
	return nil
}

func (c *Coordinator) end() {
	c.mu.Lock()
	c.inProgress = false
	c.mu.Unlock()
}

func (c *Coordinator) transition(to State) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.state
	if !CanTransition(from, to) {
		return NewInvalidTransitionError("move to "+to.String(), from)
	}

	c.state = to
	c.logger.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Str("source", c.settings.Source).
		Str("executable", c.settings.ExecutablePath).
		Msg("Update state changed")

	return nil
}

func (c *Coordinator) checkForUpdate(ctx context.Context) error {
	s := c.Settings()

	if isBlank(s.Source) {
		return NewMissingSourceError()
	}

	if !c.probe.IsWellFormed(s.Source) {
		return NewMalformedSourceError(s.Source)
	}

	exists, err := c.probe.Exists(ctx, s.Source)
	if err != nil || !exists {
		return NewSourceUnreachableError(err, s.Source)
	}

	if isBlank(s.DownloadDirectory) {
		return NewMissingDownloadPathError()
	}

	if state := c.State(); state != NotChecked {
		return NewAlreadyCheckedError(state)
	}

	if c.recorder != nil {
		if err := c.recorder.RecordCheck(ctx, s.ExecutablePath, s.Source); err != nil {
			return errorx.ExternalError.Wrap(err, "failed to record update check for %s", s.Source)
		}
	}

	required, err := c.comparator.UpdateRequired(ctx, s.ExecutablePath, s.Source)
	if err != nil {
		return NewVersionCheckFailedError(err, s.ExecutablePath, s.Source)
	}

	if required {
		return c.transition(Outdated)
	}

	return c.transition(Updated)
}

func (c *Coordinator) prepareUpdate() error {
	if state := c.State(); state != Outdated {
		return NewInvalidTransitionError("prepare update", state)
	}

	dir := c.Settings().DownloadDirectory
	if err := c.workspace.CreateDirectory(dir); err != nil {
		return err
	}

	c.mu.Lock()
	c.prepared = true
	c.mu.Unlock()

	c.logger.Info().Str("directory", dir).Msg("Created download directory")
	return nil
}

func (c *Coordinator) download(ctx context.Context) error {
	if state := c.State(); state != Outdated {
		return NewInvalidTransitionError("download", state)
	}
	if c.transport == nil {
		return errorx.IllegalState.New("no transport is configured")
	}

	c.mu.Lock()
	if isBlank(c.settings.DownloadDirectory) && isBlank(c.settings.PackageDownloadPath) {
		c.mu.Unlock()
		return NewMissingDownloadPathError()
	}
	if isBlank(c.settings.PackageDownloadPath) {
		c.settings.PackageDownloadPath = defaultPackageDownloadPath(c.settings.DownloadDirectory, c.settings.Source)
	}
	s := c.settings
	c.mu.Unlock()

	if err := c.transition(Downloading); err != nil {
		return err
	}

	pkg, err := c.resolver.Resolve(ctx, s.Source)
	if err != nil {
		return c.fail(DownloadFailed, NewDownloadFailedError(err, s.Source, s.PackageDownloadPath))
	}

	c.mu.Lock()
	c.pkg = pkg
	c.mu.Unlock()

	c.logger.Info().
		Str("location", pkg.Download).
		Str("destination", s.PackageDownloadPath).
		Msg("Downloading update package")

	if err := c.transport.Download(ctx, pkg.Download, s.PackageDownloadPath); err != nil {
		return c.fail(DownloadFailed, NewDownloadFailedError(err, pkg.Download, s.PackageDownloadPath))
	}

	c.mu.Lock()
	c.downloaded = true
	c.mu.Unlock()

	return nil
}

func (c *Coordinator) extract(ctx context.Context) error {
	c.mu.Lock()
	state, downloaded, s := c.state, c.downloaded, c.settings
	c.mu.Unlock()

	if state != Downloading || !downloaded {
		return NewInvalidTransitionError("extract", state)
	}
	if c.archiver == nil {
		return errorx.IllegalState.New("no archiver is configured")
	}

	if err := c.archiver.Extract(ctx, s.PackageDownloadPath, s.DownloadDirectory); err != nil {
		return c.fail(ExtractFailed, NewExtractFailedError(err, s.PackageDownloadPath, s.DownloadDirectory))
	}

	c.mu.Lock()
	c.extracted = true
	c.mu.Unlock()

	c.logger.Info().
		Str("archive", s.PackageDownloadPath).
		Str("directory", s.DownloadDirectory).
		Msg("Extracted update package")

	return nil
}

func (c *Coordinator) install(ctx context.Context) error {
	c.mu.Lock()
	state, extracted, s := c.state, c.extracted, c.settings
	c.mu.Unlock()

	if state != Downloading || !extracted {
		return NewInvalidTransitionError("install", state)
	}
	if c.installer == nil {
		return errorx.IllegalState.New("no installer is configured")
	}

	req := InstallRequest{
		ID:           uuid.NewString(),
		Source:       s.Source,
		Archive:      s.PackageDownloadPath,
		ExtractedDir: s.DownloadDirectory,
		TargetPath:   s.ExecutablePath,
		TargetPID:    c.pid,
		CreatedAt:    c.now().UTC(),
	}

	if err := c.installer.Install(ctx, req); err != nil {
		return c.fail(InstallFailed, NewInstallFailedError(err, s.PackageDownloadPath, s.ExecutablePath))
	}

	return c.transition(InstallScheduled)
}

// fail moves the session to a terminal failure state and returns cause.
func (c *Coordinator) fail(to State, cause *errorx.Error) error {
	if err := c.transition(to); err != nil {
		return errorx.DecorateMany("failed to record failure state", cause, err)
	}

	c.logger.Error().Err(cause).Str("state", to.String()).Msg("Update phase failed")
	return cause
}
