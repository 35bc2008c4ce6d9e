package binary_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-cms/pkg/simplecms/binary"
	"github.com/tendant/simple-cms/pkg/simplecms/binary/memory"
)

func setupTestService(t *testing.T) (*binary.Service, *memory.Backend) {
	t.Helper()
	store := memory.New()
	return binary.NewService(store, binary.WithKeyPrefix("/files/")), store
}

func TestService_StoreAndOpen(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	value, err := svc.Store(ctx, "docs/report.txt", "", strings.NewReader("hello world"))
	require.NoError(t, err)

	assert.NotEmpty(t, value.ID)
	assert.Equal(t, "report.txt", value.FileName)
	assert.Equal(t, int64(11), value.FileSize)
	assert.True(t, strings.HasPrefix(value.MimeType, "text/plain"))
	assert.True(t, strings.HasPrefix(svc.Key(value.ID), "files/"+value.ID[:2]+"/"))

	meta, err := store.Stat(ctx, svc.Key(value.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(11), meta.Size)

	rc, err := svc.Open(ctx, value)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestService_ExplicitMimeType(t *testing.T) {
	svc, _ := setupTestService(t)

	value, err := svc.Store(context.Background(), "a.bin", "application/pdf", bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", value.MimeType)
}

func TestService_Delete(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	value, err := svc.Store(ctx, "a.txt", "", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, value))
	// deleting again is not an error
	require.NoError(t, svc.Delete(ctx, value))

	_, err = svc.Open(ctx, value)
	assert.ErrorIs(t, err, binary.ErrObjectNotFound)
}
