package logostore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	_, found, err := store.Get(ctx, "clubs/coding-club/logo")
	require.NoError(t, err)
	require.False(t, found)

	stored, err := store.Put(ctx, "clubs/coding-club/logo", []byte("GIF89a"), "image/gif")
	require.NoError(t, err)
	require.Equal(t, int64(6), stored.Size)
	require.NotEmpty(t, stored.ETag)

	obj, found, err := store.Get(ctx, "clubs/coding-club/logo")
	require.NoError(t, err)
	require.True(t, found)
	defer obj.Body.Close()
	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.Equal(t, "GIF89a", string(data))
	require.Equal(t, "image/gif", obj.ContentType)
	require.Equal(t, stored.ETag, obj.ETag)
}

func TestSanitizeEndpoint(t *testing.T) {
	require.Equal(t, "acct.r2.cloudflarestorage.com", sanitizeEndpoint("https://acct.r2.cloudflarestorage.com/bucket"))
	require.Equal(t, "localhost:9000", sanitizeEndpoint(" http://localhost:9000 "))
	require.Equal(t, "", sanitizeEndpoint(""))
}
