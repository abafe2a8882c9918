package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	local := NewLocal(root)

	require.NoError(t, local.Upload([]byte("<rss/>"), "feed_rss", "myshow", "application/rss+xml"))

	data, err := os.ReadFile(filepath.Join(root, "feed_rss", "myshow"))
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(data))

	require.NoError(t, local.Delete("feed_rss", "myshow"))
	_, err = os.Stat(filepath.Join(root, "feed_rss", "myshow"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalUploadCreatesNestedDirs(t *testing.T) {
	root := t.TempDir()
	local := NewLocal(root)

	require.NoError(t, local.Upload([]byte("<html/>"), "sites", "myshow/1.html", "text/html"))

	_, err := os.Stat(filepath.Join(root, "sites", "myshow", "1.html"))
	assert.NoError(t, err)
}

func TestLocalDeleteMissingFileIsNoError(t *testing.T) {
	local := NewLocal(t.TempDir())

	assert.NoError(t, local.Delete("feed_rss", "nothere"))
}

func TestLocalDeleteFolder(t *testing.T) {
	root := t.TempDir()
	local := NewLocal(root)

	require.NoError(t, local.Upload([]byte("a"), "sites", "myshow/1.html", "text/html"))
	require.NoError(t, local.Upload([]byte("b"), "sites", "myshow/index.html", "text/html"))

	require.NoError(t, local.DeleteFolder("sites/myshow"))
	_, err := os.Stat(filepath.Join(root, "sites", "myshow"))
	assert.True(t, os.IsNotExist(err))
}
