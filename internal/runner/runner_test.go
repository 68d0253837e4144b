package runner_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/runner"
	"github.com/quantmind-br/jesse/internal/utils"
	"github.com/quantmind-br/jesse/tests/testutil"
)

func reportScript(exitCode string) string {
	return testutil.ReportScript(testutil.BanditReport, exitCode)
}

func TestArgs(t *testing.T) {
	args := runner.Args("/tmp/target")
	assert.Equal(t, []string{
		"-m", "bandit.cli.main",
		"--format", "json",
		"--number", "11",
		"--recursive", "/tmp/target",
	}, args)
}

func TestNew_DefaultTimeout(t *testing.T) {
	r := runner.New(runner.Options{})
	assert.Equal(t, runner.DefaultTimeout, r.Timeout())

	r = runner.New(runner.Options{Timeout: time.Minute})
	assert.Equal(t, time.Minute, r.Timeout())
}

func TestNewPyenvRunner(t *testing.T) {
	root := t.TempDir()
	r, err := runner.NewPyenvRunner(root, "3.11.4", runner.Options{})
	require.NoError(t, err)

	python, err := r.Python()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "versions", "3.11.4", "bin", "python"), python)
}

func TestRun_ParsesReport(t *testing.T) {
	for _, code := range []string{"0", "1"} {
		t.Run("exit "+code, func(t *testing.T) {
			python := testutil.FakePython(t, reportScript(code))
			r := runner.New(runner.Options{PythonPath: python, Logger: utils.NewNopLogger()})

			result, err := r.Run(context.Background(), "/srv/target")
			require.NoError(t, err)
			assert.Equal(t, "/srv/target", result.Target)
			assert.Contains(t, string(result.Stderr), "-m bandit.cli.main --format json --number 11 --recursive /srv/target")

			rep, err := result.Report()
			require.NoError(t, err)
			assert.Equal(t, "high:1 medium:0 low:1", rep.Summary())
		})
	}
}

func TestRun_FailureExitCode(t *testing.T) {
	python := testutil.FakePython(t, "echo 'No module named bandit' >&2\nexit 2")
	r := runner.New(runner.Options{PythonPath: python})

	result, err := r.Run(context.Background(), "/srv/target")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No module named bandit")
	require.NotNil(t, result)
	assert.Equal(t, 2, result.ExitCode)
}

func TestRun_Timeout(t *testing.T) {
	python := testutil.FakePython(t, "exec sleep 10")
	r := runner.New(runner.Options{PythonPath: python, Timeout: 100 * time.Millisecond})

	start := time.Now()
	result, err := r.Run(context.Background(), "/srv/target")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScanTimeout)
	assert.NotNil(t, result)
	assert.Less(t, time.Since(start), 8*time.Second)
}

func TestRun_MissingInterpreter(t *testing.T) {
	r := runner.New(runner.Options{PythonPath: filepath.Join(t.TempDir(), "missing-python")})

	result, err := r.Run(context.Background(), "/srv/target")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, strings.Contains(err.Error(), "start scanner"))
}

func TestResult_EmptyReport(t *testing.T) {
	result := &runner.Result{Stdout: []byte("  \n")}
	_, err := result.Report()
	assert.ErrorIs(t, err, domain.ErrEmptyReport)
}
