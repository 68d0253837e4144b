package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteTree creates files under dir from a path to content map and returns dir
func WriteTree(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

// FakePython writes an executable shell script standing in for the interpreter.
// The test is skipped on windows.
func FakePython(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}

	path := filepath.Join(t.TempDir(), "python")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

// ReportScript is a FakePython body that echoes its arguments to stderr,
// prints report on stdout and exits with exitCode
func ReportScript(report, exitCode string) string {
	return "echo \"$@\" >&2\ncat <<'EOF'\n" + report + "\nEOF\nexit " + exitCode
}
