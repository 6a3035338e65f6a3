// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestProbe_IsWellFormed(t *testing.T) {
	p := NewProbe()

	tests := []struct {
		source   string
		expected bool
	}{
		{"https://example.com/pkg.zip", true},
		{"http://example.com:8080/releases/comet-1.2.0.tar.gz", true},
		{"file:///var/cache/comet/pkg.zip", true},
		{"not a url", false},
		{"", false},
		{"  https://example.com/pkg.zip", false},
		{"/var/cache/pkg.zip", false},
		{"ftp://example.com/pkg.zip", false},
		{"https://", false},
		{"file://", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, p.IsWellFormed(tt.source), "source %q", tt.source)
	}
}

func TestProbe_Exists_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/pkg.zip":
			w.WriteHeader(http.StatusOK)
		case "/no-head.zip":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	p := NewProbe()

	exists, err := p.Exists(context.Background(), server.URL+"/pkg.zip")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = p.Exists(context.Background(), server.URL+"/no-head.zip")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = p.Exists(context.Background(), server.URL+"/missing.zip")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestProbe_Exists_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewProbe(WithTimeout(200 * time.Millisecond))
	exists, err := p.Exists(context.Background(), server.URL+"/pkg.zip")
	require.Error(t, err)
	require.True(t, errorx.IsOfType(err, RequestError))
	require.False(t, exists)
}

func TestProbe_Exists_File(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pkg.zip")
	require.NoError(t, os.WriteFile(file, []byte("zip"), 0o644))

	p := NewProbe()

	exists, err := p.Exists(context.Background(), "file://"+file)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = p.Exists(context.Background(), "file://"+filepath.Join(dir, "missing.zip"))
	require.NoError(t, err)
	require.False(t, exists)

	// a directory is not a package
	exists, err = p.Exists(context.Background(), "file://"+dir)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestProbe_Exists_UnsupportedScheme(t *testing.T) {
	p := NewProbe()
	_, err := p.Exists(context.Background(), "ftp://example.com/pkg.zip")
	require.True(t, errorx.IsOfType(err, UnsupportedSchemeError))
}

func TestProbe_Timeout(t *testing.T) {
	require.Equal(t, DefaultTimeout, NewProbe().Timeout())
	require.Equal(t, DefaultTimeout, NewProbe(WithTimeout(0)).Timeout())
	require.Equal(t, 5*time.Minute, NewProbe(WithTimeout(5*time.Minute)).Timeout())
}
