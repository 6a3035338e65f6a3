// SPDX-License-Identifier: Apache-2.0

// Package transport moves update packages from a remote location to local disk.
package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/renameio/v2"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout     = 30 * time.Minute
	DefaultRetryDelay  = 2 * time.Second
	DefaultMaxRetries  = 3
	DefaultFilePerm    = 0o644
	DefaultDirPerm     = 0o755
	maxRetryInterval   = 30 * time.Second
	retryIntervalScale = 2
)

// Checksum is the expected digest of a downloaded file.
type Checksum struct {
	Algorithm string
	Value     string
}

// Downloader downloads a package over http(s) or from a file URL and checks its integrity.
type Downloader struct {
	client     *http.Client
	retryDelay time.Duration
	maxRetries uint64
	checksum   *Checksum
	logger     *zerolog.Logger
}

type Option = func(d *Downloader)

func WithHTTPClient(client *http.Client) Option {
	return func(d *Downloader) {
		if client != nil {
			d.client = client
		}
	}
}

// WithTimeout bounds a single download attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Downloader) {
		if timeout > 0 {
			d.client.Timeout = timeout
		}
	}
}

// WithRetry sets the initial delay between attempts and the number of retries after the first attempt.
func WithRetry(delay time.Duration, maxRetries uint64) Option {
	return func(d *Downloader) {
		if delay > 0 {
			d.retryDelay = delay
		}
		d.maxRetries = maxRetries
	}
}

// WithChecksum makes every download verify the given digest before it is committed.
func WithChecksum(algorithm, value string) Option {
	return func(d *Downloader) {
		if algorithm != "" && value != "" {
			d.checksum = &Checksum{Algorithm: algorithm, Value: value}
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(d *Downloader) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDownloader creates a new Downloader with default settings
func NewDownloader(opts ...Option) *Downloader {
	nop := zerolog.Nop()
	d := &Downloader{
		client:     &http.Client{Timeout: DefaultTimeout},
		retryDelay: DefaultRetryDelay,
		maxRetries: DefaultMaxRetries,
		logger:     &nop,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Download copies location to destination. The destination is replaced atomically and only
// once the whole payload has been received and verified.
func (d *Downloader) Download(ctx context.Context, location string, destination string) error {
	u, err := url.Parse(location)
	if err != nil || !u.IsAbs() {
		return NewInvalidURLError(location)
	}

	if err := os.MkdirAll(filepath.Dir(destination), DefaultDirPerm); err != nil {
		return NewDownloadError(err, location, 0)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return d.copyLocal(u.Path, location, destination)
	case "http", "https":
		return d.fetch(ctx, location, destination)
	default:
		return NewInvalidURLError(location)
	}
}

func (d *Downloader) fetch(ctx context.Context, location, destination string) error {
	attempt := 0
	operation := func() error {
		attempt++
		return d.fetchOnce(ctx, location, destination)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.retryDelay
	b.Multiplier = retryIntervalScale
	b.MaxInterval = maxRetryInterval
	b.MaxElapsedTime = 0

	err := backoff.RetryNotify(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(b, d.maxRetries), ctx),
		func(err error, wait time.Duration) {
			d.logger.Warn().
				Err(err).
				Str("url", location).
				Int("attempt", attempt).
				Dur("retryIn", wait).
				Msg("Download attempt failed, retrying")
		},
	)
	if err != nil {
		return err
	}

	d.logger.Debug().
		Str("url", location).
		Str("destination", destination).
		Int("attempts", attempt).
		Msg("Downloaded package")

	return nil
}

// fetchOnce performs a single attempt. Client errors are permanent; anything else may be retried.
func (d *Downloader) fetchOnce(ctx context.Context, location, destination string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return backoff.Permanent(NewInvalidURLError(location))
	}

	resp, err := d.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(NewDownloadError(err, location, 0))
		}
		return NewDownloadError(err, location, 0)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err := NewDownloadError(nil, location, resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return backoff.Permanent(err)
		}
		return err
	}

	if err := d.write(resp.Body, destination); err != nil {
		if errorx.IsOfType(err, ChecksumError) {
			return backoff.Permanent(err)
		}
		return NewDownloadError(err, location, 0)
	}

	return nil
}

func (d *Downloader) copyLocal(path, location, destination string) error {
	in, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFileNotFoundError(path)
		}
		return NewDownloadError(err, location, 0)
	}
	defer func() { _ = in.Close() }()

	if err := d.write(in, destination); err != nil {
		if errorx.IsOfType(err, ChecksumError) {
			return err
		}
		return NewDownloadError(err, location, 0)
	}

	return nil
}

// write streams r into a pending file next to destination and commits it after the checksum passes.
func (d *Downloader) write(r io.Reader, destination string) error {
	pendingFile, err := renameio.NewPendingFile(destination, renameio.WithPermissions(DefaultFilePerm))
	if err != nil {
		return err
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			d.logger.Debug().Err(err).Str("destination", destination).Msg("Failed to clean up pending file")
		}
	}()

	if _, err := io.Copy(pendingFile, r); err != nil {
		return err
	}

	if d.checksum != nil {
		if err := VerifyChecksum(pendingFile.Name(), d.checksum.Algorithm, d.checksum.Value); err != nil {
			return err
		}
	}

	return pendingFile.CloseAtomicallyReplace()
}
