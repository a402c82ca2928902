package client

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadBackup_WritesAndVerifies(t *testing.T) {
	content := []byte("appliance configuration archive")
	sum := sha256.Sum256(content)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/backups/b1/archive", r.URL.Path)
		assert.Equal(t, "Bearer A1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Disposition", `attachment; filename="config-b1.tar.gz"`)
		w.Write(content)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "")
	dir := t.TempDir()

	path, err := c.DownloadBackup(context.Background(), Backup{
		ID:     "b1",
		SHA256: hex.EncodeToString(sum[:]),
	}, dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config-b1.tar.gz"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestDownloadBackup_ChecksumMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tampered bytes"))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "A1", "")
	dir := t.TempDir()

	_, err := c.DownloadBackup(context.Background(), Backup{
		ID:     "b2",
		SHA256: "deadbeef",
	}, dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	// The corrupt file must not be left behind.
	_, statErr := os.Stat(filepath.Join(dir, "b2.tar.gz"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestDownloadBackup_EmptyID(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:0", "A1", "")
	_, err := c.DownloadBackup(context.Background(), Backup{}, t.TempDir(), false)
	require.Error(t, err)
}

func TestArchiveFileName(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Equal(t, "b9.tar.gz", archiveFileName(resp, "b9"))

	resp.Header.Set("Content-Disposition", `attachment; filename="weekly.tar.gz"`)
	assert.Equal(t, "weekly.tar.gz", archiveFileName(resp, "b9"))
}
