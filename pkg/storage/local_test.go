package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Hour)

	token, expires, err := signer.Generate("file.pdf")
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	name, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "file.pdf", name)
}

func TestDownloadTokenRejectsTampering(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Hour)

	token, _, err := signer.Generate("file.pdf")
	require.NoError(t, err)

	_, _, err = signer.Parse(token + "0")
	assert.Error(t, err)

	other := NewDownloadTokenSigner("different", time.Hour)
	_, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestDownloadTokenExpires(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", -time.Minute)

	token, _, err := signer.Generate("file.pdf")
	require.NoError(t, err)

	_, _, err = signer.Parse(token)
	assert.Error(t, err)
}

func TestLocalStorageUploadAndOpen(t *testing.T) {
	signer := NewDownloadTokenSigner("secret", time.Hour)
	store, err := NewLocalStorage(t.TempDir(), "/api/uploads", signer)
	require.NoError(t, err)

	raw, err := store.Upload(context.Background(), File{Name: "notes.pdf", ContentType: "application/pdf", Data: []byte("content")})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(raw, "/api/uploads/"))

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	name := strings.TrimPrefix(parsed.Path, "/api/uploads/")
	token := parsed.Query().Get("token")
	require.NotEmpty(t, token)
	assert.True(t, strings.HasSuffix(name, ".pdf"))

	file, err := store.Open(name, token)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))

	// token bound to a different name must not open this file
	_, err = store.Open("other.pdf", token)
	assert.Error(t, err)
}
