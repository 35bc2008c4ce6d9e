package fs_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/binary"
	"github.com/tendant/simple-cms/pkg/simplecms/binary/fs"
)

func TestNew_RequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base directory is required")
}

func TestFSBackend(t *testing.T) {
	dir := t.TempDir()
	backend, err := fs.New(fs.Config{BaseDir: dir, URLPrefix: "http://localhost:8080/files/"})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("UploadCreatesDirectories", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "binaryfile/ab/abc", strings.NewReader("<html></html>"), ""))
		_, err := os.Stat(filepath.Join(dir, "binaryfile", "ab", "abc"))
		require.NoError(t, err)

		meta, err := backend.Stat(ctx, "binaryfile/ab/abc")
		require.NoError(t, err)
		assert.Equal(t, int64(13), meta.Size)
		assert.True(t, strings.HasPrefix(meta.ContentType, "text/html"))
	})

	t.Run("Download", func(t *testing.T) {
		rc, err := backend.Download(ctx, "binaryfile/ab/abc")
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(data))
	})

	t.Run("DownloadURL", func(t *testing.T) {
		url, err := backend.DownloadURL(ctx, "binaryfile/ab/abc", "my file.html")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/files/binaryfile/ab/abc?filename=my+file.html", url)
	})

	t.Run("RejectsEscapingKeys", func(t *testing.T) {
		err := backend.Upload(ctx, "../outside", strings.NewReader("x"), "")
		assert.Error(t, err)
	})

	t.Run("DeleteCleansEmptyDirectories", func(t *testing.T) {
		require.NoError(t, backend.Delete(ctx, "binaryfile/ab/abc"))
		_, err := os.Stat(filepath.Join(dir, "binaryfile"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(dir)
		assert.NoError(t, err)

		assert.ErrorIs(t, backend.Delete(ctx, "binaryfile/ab/abc"), binary.ErrObjectNotFound)
	})
}
