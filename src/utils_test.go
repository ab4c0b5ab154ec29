package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.True(t, fileExists(file))
	assert.False(t, fileExists(filepath.Join(dir, "missing.txt")))
	assert.False(t, fileExists(dir))
}

func TestTouchFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "touched")
	require.NoError(t, touchFile(file))
	assert.True(t, fileExists(file))
	// touching again must not fail
	require.NoError(t, touchFile(file))
}

func TestEnsureQrcExt(t *testing.T) {
	assert.Equal(t, "app.qrc", ensureQrcExt("app"))
	assert.Equal(t, "app.qrc", ensureQrcExt("app.qrc"))
	assert.Equal(t, "app.QRC", ensureQrcExt("app.QRC"))
	assert.Equal(t, "app.png.qrc", ensureQrcExt("app.png"))
}

func TestDefaultOutputName(t *testing.T) {
	assert.Equal(t, "icons_rc.py", defaultOutputName("icons.qrc", FormatPythonModule))
	assert.Equal(t, "icons.rcc", defaultOutputName("icons.qrc", FormatBinary))
	assert.Equal(t, filepath.Join("a", "b_rc.py"), defaultOutputName(filepath.Join("a", "b.qrc"), ""))
}

func TestRelativeResourcePath(t *testing.T) {
	base := t.TempDir()

	rel, ok := relativeResourcePath(base, filepath.Join(base, "images", "a.png"))
	require.True(t, ok)
	assert.Equal(t, "images/a.png", rel)

	rel, ok = relativeResourcePath(base, filepath.Join(base, "a.png"))
	require.True(t, ok)
	assert.Equal(t, "a.png", rel)

	_, ok = relativeResourcePath(base, filepath.Join(base, "..", "outside.png"))
	assert.False(t, ok)

	_, ok = relativeResourcePath(filepath.Join(base, "sub"), base)
	assert.False(t, ok)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hello", TruncateString("hello", 5))
	assert.Equal(t, "he...", TruncateString("hello world", 5))
	assert.Equal(t, "he", TruncateString("hello", 2))
	assert.Equal(t, "", TruncateString("hello", 0))
}
