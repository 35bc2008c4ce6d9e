package memory_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/binary"
	"github.com/tendant/simple-cms/pkg/simplecms/binary/memory"
)

func TestMemoryBackend(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()

	t.Run("UploadAndDownload", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "a/b", strings.NewReader("data"), "text/plain"))

		rc, err := backend.Download(ctx, "a/b")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("StatDefaultsMimeType", func(t *testing.T) {
		require.NoError(t, backend.Upload(ctx, "c", strings.NewReader("1"), ""))
		meta, err := backend.Stat(ctx, "c")
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", meta.ContentType)
		assert.Equal(t, int64(1), meta.Size)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := backend.Download(ctx, "missing")
		assert.ErrorIs(t, err, binary.ErrObjectNotFound)
		assert.ErrorIs(t, backend.Delete(ctx, "missing"), binary.ErrObjectNotFound)
		_, err = backend.Stat(ctx, "missing")
		assert.ErrorIs(t, err, binary.ErrObjectNotFound)
	})

	t.Run("NoDownloadURL", func(t *testing.T) {
		url, err := backend.DownloadURL(ctx, "a/b", "file.txt")
		require.NoError(t, err)
		assert.Empty(t, url)
	})
}
