package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePathDefaultsToLogsDir(t *testing.T) {
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })
	require.NoError(t, os.Chdir(tmp))

	got, err := logFilePath(Options{})
	require.NoError(t, err)

	realTmp, err := filepath.EvalSymlinks(tmp)
	require.NoError(t, err)
	realDir, err := filepath.EvalSymlinks(filepath.Dir(got))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(realTmp, defaultDir), realDir)
	assert.Equal(t, defaultFilename, filepath.Base(got))
	assert.FileExists(t, got)
}

func TestReleaseModeWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "posts.log"})
	log.Info("post created")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(dir, "posts.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"post created"`)
}

func TestDebugModeSkipsFile(t *testing.T) {
	dir := t.TempDir()
	log := New("Debug", Options{Dir: dir, Filename: "debug.log"})
	log.Info("to stdout")
	_ = log.Sync()

	assert.NoFileExists(t, filepath.Join(dir, "debug.log"))
}

func TestZWithoutInit(t *testing.T) {
	prev := L
	L = nil
	t.Cleanup(func() { L = prev })

	assert.NotNil(t, Z())
	assert.Same(t, Z(), Z())
}
