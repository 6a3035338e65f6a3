// SPDX-License-Identifier: Apache-2.0

package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	require.Equal(t, FormatTarGz, DetectFormat("/tmp/comet-1.2.0.tar.gz"))
	require.Equal(t, FormatTarGz, DetectFormat("/tmp/COMET.TGZ"))
	require.Equal(t, FormatZip, DetectFormat("pkg.zip"))
	require.Equal(t, "", DetectFormat("pkg.rar"))
	require.Equal(t, "", DetectFormat("package"))
}

func TestExtractor_Extract_TarGz(t *testing.T) {
	tempDir := t.TempDir()

	tarGzPath := filepath.Join(tempDir, "test.tar.gz")
	testFiles := map[string]string{
		"file1.txt":     "Content of file 1",
		"dir/file2.txt": "Content of file 2",
	}
	createTestTarGz(t, tarGzPath, testFiles)

	extractDir := filepath.Join(tempDir, "extracted")
	err := NewExtractor().Extract(context.Background(), tarGzPath, extractDir)
	require.NoError(t, err, "Extract failed")

	for filePath, expectedContent := range testFiles {
		content, err := os.ReadFile(filepath.Join(extractDir, filePath))
		require.NoError(t, err, "Failed to read extracted file: %s", filePath)
		require.Equal(t, expectedContent, string(content), "Content mismatch for file: %s", filePath)
	}
}

func TestExtractor_Extract_Zip(t *testing.T) {
	tempDir := t.TempDir()

	zipPath := filepath.Join(tempDir, "pkg.zip")
	testFiles := map[string]string{
		"comet":          "#!/bin/sh\necho new\n",
		"docs/README.md": "readme",
	}
	createTestZip(t, zipPath, testFiles)

	// extracting into the directory that holds the archive is the normal layout
	err := NewExtractor().Extract(context.Background(), zipPath, tempDir)
	require.NoError(t, err)

	for filePath, expectedContent := range testFiles {
		content, err := os.ReadFile(filepath.Join(tempDir, filePath))
		require.NoError(t, err, filePath)
		require.Equal(t, expectedContent, string(content))
	}

	info, err := os.Stat(filepath.Join(tempDir, "comet"))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestExtractor_Extract_PathTraversal(t *testing.T) {
	tempDir := t.TempDir()
	extractDir := filepath.Join(tempDir, "extracted")

	tarGzPath := filepath.Join(tempDir, "evil.tar.gz")
	createTestTarGz(t, tarGzPath, map[string]string{"../evil.txt": "pwned"})

	err := NewExtractor().Extract(context.Background(), tarGzPath, extractDir)
	require.True(t, errorx.IsOfType(err, PathTraversalError), "got %v", err)
	_, err = os.Stat(filepath.Join(tempDir, "evil.txt"))
	require.True(t, os.IsNotExist(err))

	zipPath := filepath.Join(tempDir, "evil.zip")
	createTestZip(t, zipPath, map[string]string{"a/../../evil.txt": "pwned"})

	err = NewExtractor().Extract(context.Background(), zipPath, extractDir)
	require.True(t, errorx.IsOfType(err, PathTraversalError), "got %v", err)
}

func TestExtractor_Extract_FileNotFound(t *testing.T) {
	err := NewExtractor().Extract(context.Background(), "nonexistent.tar.gz", t.TempDir())
	require.True(t, errorx.IsOfType(err, FileNotFoundError), "Error should be of type FileNotFoundError")
}

func TestExtractor_Extract_UnsupportedFormat(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "pkg.rar")
	require.NoError(t, os.WriteFile(path, []byte("rar"), 0o644))

	err := NewExtractor().Extract(context.Background(), path, tempDir)
	require.True(t, errorx.IsOfType(err, UnsupportedFormatError))
}

func TestExtractor_Extract_Corrupt(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "pkg.tar.gz")
	require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o644))

	err := NewExtractor().Extract(context.Background(), path, tempDir)
	require.True(t, errorx.IsOfType(err, ExtractionError))
}

func TestExtractor_Extract_Cancelled(t *testing.T) {
	tempDir := t.TempDir()
	tarGzPath := filepath.Join(tempDir, "large.tar.gz")
	createTestTarGz(t, tarGzPath, map[string]string{"a.txt": "a", "b.txt": "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExtractor().Extract(ctx, tarGzPath, filepath.Join(tempDir, "extracted"))
	require.True(t, errorx.IsOfType(err, ExtractionError), "Error should be of type ExtractionError")
}

func sortedNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Helper function to create a test tar.gz file
func createTestTarGz(t *testing.T, path string, files map[string]string) {
	file, err := os.Create(path)
	require.NoError(t, err, "Failed to create tar.gz file")
	defer file.Close()

	gzWriter := gzip.NewWriter(file)
	defer gzWriter.Close()

	tarWriter := tar.NewWriter(gzWriter)
	defer tarWriter.Close()

	for _, filePath := range sortedNames(files) {
		content := files[filePath]
		dir := filepath.Dir(filePath)
		if dir != "." && dir != ".." {
			hdr := &tar.Header{
				Name:     dir + "/",
				Mode:     0755,
				Typeflag: tar.TypeDir,
			}
			require.NoError(t, tarWriter.WriteHeader(hdr), "Failed to write directory header")
		}

		hdr := &tar.Header{
			Name:     filePath,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		require.NoError(t, tarWriter.WriteHeader(hdr), "Failed to write file header")

		_, err = tarWriter.Write([]byte(content))
		require.NoError(t, err, "Failed to write file content")
	}
}

func createTestZip(t *testing.T, path string, files map[string]string) {
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()

	zipWriter := zip.NewWriter(file)
	defer zipWriter.Close()

	for _, name := range sortedNames(files) {
		hdr := &zip.FileHeader{Name: name, Method: zip.Deflate}
		hdr.SetMode(0o755)
		w, err := zipWriter.CreateHeader(hdr)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
}
