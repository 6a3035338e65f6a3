// SPDX-License-Identifier: Apache-2.0

// Package source validates update sources before a session uses them.
package source

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"
)

const (
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeFile  = "file"

	DefaultTimeout = 30 * time.Second
)

var (
	ErrorsNamespace        = errorx.NewNamespace("source")
	UnsupportedSchemeError = ErrorsNamespace.NewType("unsupported_scheme", errorx.NotFound())
	RequestError           = ErrorsNamespace.NewType("request_error")

	urlProperty        = errorx.RegisterPrintableProperty("url")
	statusCodeProperty = errorx.RegisterPrintableProperty("status_code")
)

// Probe checks the format and reachability of an update source.
type Probe struct {
	client *http.Client
	logger *zerolog.Logger
}

type Option = func(p *Probe)

func WithHTTPClient(client *http.Client) Option {
	return func(p *Probe) {
		if client != nil {
			p.client = client
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(p *Probe) {
		if timeout > 0 {
			p.client.Timeout = timeout
		}
	}
}

func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Probe) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewProbe(opts ...Option) *Probe {
	nop := zerolog.Nop()
	p := &Probe{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: &nop,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Timeout returns the limit applied to a single reachability request.
func (p *Probe) Timeout() time.Duration {
	return p.client.Timeout
}

// IsWellFormed returns true if source is an absolute http, https or file URI.
func (p *Probe) IsWellFormed(source string) bool {
	if strings.TrimSpace(source) != source || source == "" {
		return false
	}

	u, err := url.Parse(source)
	if err != nil || !u.IsAbs() {
		return false
	}

	switch strings.ToLower(u.Scheme) {
	case SchemeHTTP, SchemeHTTPS:
		return u.Host != ""
	case SchemeFile:
		return u.Path != ""
	default:
		return false
	}
}

// Exists returns true if source answers with a 2xx status, or names an existing local file.
func (p *Probe) Exists(ctx context.Context, source string) (bool, error) {
	u, err := url.Parse(source)
	if err != nil {
		return false, errorx.IllegalFormat.Wrap(err, "failed to parse source %q", source)
	}

	switch strings.ToLower(u.Scheme) {
	case SchemeFile:
		info, err := os.Stat(u.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, errorx.ExternalError.Wrap(err, "failed to stat %q", u.Path)
		}
		return !info.IsDir(), nil
	case SchemeHTTP, SchemeHTTPS:
		return p.head(ctx, source)
	default:
		return false, UnsupportedSchemeError.New("unsupported scheme %q", u.Scheme).
			WithProperty(urlProperty, source)
	}
}

func (p *Probe) head(ctx context.Context, source string) (bool, error) {
	status, err := p.do(ctx, http.MethodHead, source)
	if err != nil {
		return false, err
	}

	// some servers and object stores reject HEAD
	if status == http.StatusMethodNotAllowed {
		status, err = p.do(ctx, http.MethodGet, source)
		if err != nil {
			return false, err
		}
	}

	p.logger.Debug().
		Str("url", source).
		Int("status", status).
		Msg("Probed update source")

	return status >= 200 && status < 300, nil
}

func (p *Probe) do(ctx context.Context, method, source string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, source, nil)
	if err != nil {
		return 0, RequestError.Wrap(err, "failed to build %s request", method).
			WithProperty(urlProperty, source)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, RequestError.Wrap(err, "%s request failed", method).
			WithProperty(urlProperty, source)
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode, nil
}
