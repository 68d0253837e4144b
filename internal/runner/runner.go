package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/report"
	"github.com/quantmind-br/jesse/internal/utils"
)

// DefaultTimeout is the wall-clock budget for one scan
const DefaultTimeout = 30 * time.Minute

// ExitIssuesFound is the status bandit exits with when the scan succeeded and reported findings
const ExitIssuesFound = 1

// banditArgs precede the scan target on the interpreter command line
var banditArgs = []string{
	"-m", "bandit.cli.main",
	"--format", "json",
	"--number", "11",
	"--recursive",
}

// pythonCandidates are looked up on PATH when no interpreter is configured
var pythonCandidates = []string{"python3", "python"}

// Options configures a Runner
type Options struct {
	// PythonPath is the interpreter with bandit installed; empty means PATH lookup
	PythonPath string
	Timeout    time.Duration
	Logger     *utils.Logger
	// Progress shows a spinner while the scanner runs
	Progress bool
}

// Runner executes bandit as a subprocess against a directory tree
type Runner struct {
	python   string
	timeout  time.Duration
	logger   *utils.Logger
	progress bool
}

// New creates a Runner
func New(opts Options) *Runner {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{
		python:   opts.PythonPath,
		timeout:  timeout,
		logger:   opts.Logger.OrNop().WithComponent("runner"),
		progress: opts.Progress,
	}
}

// NewPyenvRunner creates a Runner using the interpreter of a pyenv-managed version
func NewPyenvRunner(pyenvRoot, version string, opts Options) (*Runner, error) {
	python, err := filepath.Abs(filepath.Join(utils.ExpandPath(pyenvRoot), "versions", version, "bin", "python"))
	if err != nil {
		return nil, fmt.Errorf("resolve pyenv interpreter: %w", err)
	}
	opts.PythonPath = python
	return New(opts), nil
}

// Timeout returns the configured wall-clock budget
func (r *Runner) Timeout() time.Duration {
	return r.timeout
}

// Python returns the interpreter the runner will execute
func (r *Runner) Python() (string, error) {
	if r.python != "" {
		return r.python, nil
	}
	for _, name := range pythonCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", domain.ErrScannerNotFound, strings.Join(pythonCandidates, ", "))
}

// Args returns the interpreter arguments used to scan target
func Args(target string) []string {
	args := make([]string, 0, len(banditArgs)+1)
	args = append(args, banditArgs...)
	return append(args, target)
}

// Run scans target and captures the scanner output.
//
// A non-nil Result is returned whenever the process started, including on
// timeout, so callers can keep stderr for diagnostics.
func (r *Runner) Run(ctx context.Context, target string) (*Result, error) {
	python, err := r.Python()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, python, Args(target)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	r.logger.Info().
		Str("target", target).
		Str("python", python).
		Dur("timeout", r.timeout).
		Msg("Starting scan")

	stop := r.spin(ctx)
	start := time.Now()
	runErr := cmd.Run()
	stop()

	result := &Result{
		Target:   target,
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: -1,
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return result, fmt.Errorf("%w after %s", domain.ErrScanTimeout, r.timeout)
	}
	if ctx.Err() != nil {
		return result, ctx.Err()
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		if exitErr.ExitCode() != ExitIssuesFound {
			return result, fmt.Errorf("scanner exited with status %d: %s", exitErr.ExitCode(), lastLine(result.Stderr))
		}
	default:
		return nil, fmt.Errorf("start scanner: %w", runErr)
	}

	r.logger.Info().
		Int("exit_code", result.ExitCode).
		Dur("duration", result.Duration).
		Msg("Scan finished")
	return result, nil
}

// spin renders a spinner until the returned stop func is called
func (r *Runner) spin(ctx context.Context) func() {
	if !r.progress {
		return func() {}
	}

	bar := utils.NewProgressBar(-1, utils.DescScanning)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	return func() {
		close(done)
		<-finished
		_ = bar.Finish()
	}
}

func lastLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Result is the captured output of a single scanner run
type Result struct {
	Target   string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Report parses the scanner stdout as a bandit JSON report
func (r *Result) Report() (*report.Report, error) {
	if len(bytes.TrimSpace(r.Stdout)) == 0 {
		return nil, domain.ErrEmptyReport
	}
	return report.Parse(r.Stdout)
}
