package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomAlphanumeric(t *testing.T) {
	re := regexp.MustCompile(`^[A-Za-z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := RandomAlphanumeric(8)
		assert.Regexp(t, re, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 45)
	assert.Empty(t, RandomAlphanumeric(0))
}

func TestDefaultScanPath(t *testing.T) {
	p := DefaultScanPath()
	assert.Equal(t, os.TempDir(), filepath.Dir(p))
	base := filepath.Base(p)
	assert.True(t, strings.HasPrefix(base, TempPrefix))
	assert.Len(t, strings.TrimPrefix(base, TempPrefix), 8)
	assert.NotEqual(t, p, DefaultScanPath())
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()

	ok, err := PathExists(dir)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = PathExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)

	link := filepath.Join(dir, "dangling")
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), link))
	ok, err = PathExists(link)
	require.NoError(t, err)
	assert.True(t, ok, "a dangling symlink still occupies the path")
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "report.json")

	require.NoError(t, EnsureDir(target))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".jesse"), ExpandPath("~/.jesse"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "rel/~", ExpandPath("rel/~"))
}
