package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/quantmind-br/jesse/internal/config"
	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/fetch"
	"github.com/quantmind-br/jesse/internal/runner"
	"github.com/quantmind-br/jesse/internal/utils"
)

// Orchestrator fetches a target into a scratch directory and scans it
type Orchestrator struct {
	config  *config.Config
	fetcher Fetcher
	scanner Scanner
	logger  *utils.Logger
}

// OrchestratorOptions contains options for creating an orchestrator.
// Nil collaborators are built from Config.
type OrchestratorOptions struct {
	Config  *config.Config
	Fetcher Fetcher
	Scanner Scanner
	Logger  *utils.Logger
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := opts.Logger.OrNop()

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewResolver(fetch.ResolverOptions{
			HTTPClient: &http.Client{Timeout: cfg.Fetch.HTTPTimeout},
			Logger:     logger,
			Progress:   cfg.Fetch.Progress,
		})
	}

	scanner := opts.Scanner
	if scanner == nil {
		r, err := NewScanner(cfg, logger)
		if err != nil {
			return nil, err
		}
		scanner = r
	}

	return &Orchestrator{
		config:  cfg,
		fetcher: fetcher,
		scanner: scanner,
		logger:  logger.WithComponent("orchestrator"),
	}, nil
}

// NewScanner builds the bandit runner selected by the scanner settings.
// An explicit python path wins over pyenv, which wins over a PATH lookup.
func NewScanner(cfg *config.Config, logger *utils.Logger) (*runner.Runner, error) {
	opts := runner.Options{
		PythonPath: utils.ExpandPath(cfg.Scanner.Python),
		Timeout:    cfg.Scanner.Timeout,
		Logger:     logger,
		Progress:   cfg.Scanner.Progress,
	}
	if opts.PythonPath == "" && cfg.Scanner.Pyenv.Enabled() {
		return runner.NewPyenvRunner(utils.ExpandPath(cfg.Scanner.Pyenv.Root), cfg.Scanner.Pyenv.Version, opts)
	}
	return runner.New(opts), nil
}

// ScanPath returns the directory the next scan fetches into
func (o *Orchestrator) ScanPath() string {
	if o.config.Fetch.TmpPath != "" {
		return utils.ExpandPath(o.config.Fetch.TmpPath)
	}
	return utils.DefaultScanPath()
}

// Scan fetches target and runs the scanner over it. Local paths are only
// accepted when allowFile is set. The fetched tree is removed afterwards
// unless fetch.save is enabled.
//
// A scan that times out returns its partial result together with
// domain.ErrScanTimeout.
func (o *Orchestrator) Scan(ctx context.Context, target string, allowFile bool) (*runner.Result, error) {
	startTime := time.Now()
	path := o.ScanPath()

	o.logger.Info().
		Str("target", target).
		Str("kind", string(DetectTarget(target))).
		Str("path", path).
		Msg("Starting scan")

	_, err := o.fetcher.SmartFetch(ctx, target, path, domain.FetchOptions{
		AllowFile:     allowFile,
		DefaultBranch: o.config.Fetch.DefaultBranch,
	})
	if err != nil {
		// a precondition failure means path was never ours to remove
		if !domain.IsPrecondition(err) {
			o.cleanup(path)
		}
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	defer o.cleanup(path)

	o.logger.Info().Str("path", path).Msg("Scanning")

	result, err := o.scanner.Run(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrScanTimeout) {
			o.logger.Warn().Dur("timeout", o.config.Scanner.Timeout).Msg("Scan timed out")
		}
		return result, err
	}

	o.logger.Info().
		Int("exit_code", result.ExitCode).
		Dur("duration", time.Since(startTime)).
		Msg("Scan completed")

	return result, nil
}

func (o *Orchestrator) cleanup(path string) {
	if o.config.Fetch.Save {
		o.logger.Info().Str("path", path).Msg("Keeping scanned directory")
		return
	}
	if err := os.RemoveAll(path); err != nil {
		o.logger.Warn().Err(err).Str("path", path).Msg("Failed to remove scanned directory")
	}
}
