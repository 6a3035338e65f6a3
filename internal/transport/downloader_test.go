// SPDX-License-Identifier: Apache-2.0

package transport

import (
	"context"
	"crypto/sha256"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestDownloader_Download(t *testing.T) {
	testContent := "This is test content for download"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testContent))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "Update", "pkg.zip")

	downloader := NewDownloader()
	err := downloader.Download(context.Background(), server.URL+"/pkg.zip", destination)
	require.NoError(t, err, "Download failed")

	content, err := os.ReadFile(destination)
	require.NoError(t, err, "Failed to read downloaded file")
	require.Equal(t, testContent, string(content), "Downloaded content mismatch")
}

func TestDownloader_Download_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "pkg.zip")

	downloader := NewDownloader(WithRetry(10*time.Millisecond, 3))
	err := downloader.Download(context.Background(), server.URL+"/pkg.zip", destination)
	require.Error(t, err, "Download should fail with HTTP 404")
	require.True(t, errorx.IsOfType(err, DownloadError), "Error should be of type DownloadError")
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	_, err = os.Stat(destination)
	require.True(t, os.IsNotExist(err), "no partial file should be left behind")
}

func TestDownloader_Download_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer server.Close()

	destination := filepath.Join(t.TempDir(), "pkg.zip")

	downloader := NewDownloader(WithRetry(10*time.Millisecond, 3))
	require.NoError(t, downloader.Download(context.Background(), server.URL+"/pkg.zip", destination))
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))

	content, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.Equal(t, "payload", string(content))
}

func TestDownloader_Download_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	downloader := NewDownloader(WithRetry(5*time.Millisecond, 2))
	err := downloader.Download(context.Background(), server.URL+"/pkg.zip", filepath.Join(t.TempDir(), "pkg.zip"))
	require.True(t, errorx.IsOfType(err, DownloadError))
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDownloader_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("This should timeout"))
	}))
	defer server.Close()

	downloader := NewDownloader(WithTimeout(200*time.Millisecond), WithRetry(10*time.Millisecond, 0))
	err := downloader.Download(context.Background(), server.URL+"/pkg.zip", filepath.Join(t.TempDir(), "pkg.zip"))
	require.Error(t, err, "Download should fail with timeout")
	require.True(t, errorx.IsOfType(err, DownloadError), "Error should be of type DownloadError")
}

func TestDownloader_Download_Checksum(t *testing.T) {
	payload := []byte("checked payload")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	sum := fmt.Sprintf("%x", sha256.Sum256(payload))
	dir := t.TempDir()

	ok := NewDownloader(WithChecksum(AlgorithmSHA256, sum))
	require.NoError(t, ok.Download(context.Background(), server.URL+"/a.zip", filepath.Join(dir, "a.zip")))

	bad := NewDownloader(WithChecksum(AlgorithmSHA256, "deadbeef"), WithRetry(5*time.Millisecond, 3))
	err := bad.Download(context.Background(), server.URL+"/b.zip", filepath.Join(dir, "b.zip"))
	require.True(t, errorx.IsOfType(err, ChecksumError), "got %v", err)

	_, err = os.Stat(filepath.Join(dir, "b.zip"))
	require.True(t, os.IsNotExist(err))
}

func TestDownloader_Download_FileURL(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.zip")
	require.NoError(t, os.WriteFile(src, []byte("local"), 0o644))

	destination := filepath.Join(dir, "Update", "pkg.zip")
	downloader := NewDownloader()
	require.NoError(t, downloader.Download(context.Background(), "file://"+src, destination))

	content, err := os.ReadFile(destination)
	require.NoError(t, err)
	require.Equal(t, "local", string(content))

	err = downloader.Download(context.Background(), "file://"+filepath.Join(dir, "missing.zip"), destination)
	require.True(t, errorx.IsOfType(err, FileNotFoundError))
}

func TestDownloader_Download_InvalidURL(t *testing.T) {
	downloader := NewDownloader()

	for _, location := range []string{"not a url", "ftp://example.com/pkg.zip", "relative/pkg.zip"} {
		err := downloader.Download(context.Background(), location, filepath.Join(t.TempDir(), "pkg.zip"))
		require.True(t, errorx.IsOfType(err, InvalidURLError), "location %q", location)
	}
}

func TestDownloader_Download_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	downloader := NewDownloader(WithRetry(time.Second, 10))
	start := time.Now()
	err := downloader.Download(ctx, server.URL+"/pkg.zip", filepath.Join(t.TempDir(), "pkg.zip"))
	require.Error(t, err)
	require.Less(t, time.Since(start), 5*time.Second)
}
