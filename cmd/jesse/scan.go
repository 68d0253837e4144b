package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/jesse/internal/app"
	"github.com/quantmind-br/jesse/internal/config"
	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/fetch"
	"github.com/quantmind-br/jesse/internal/history"
	"github.com/quantmind-br/jesse/internal/report"
	"github.com/quantmind-br/jesse/internal/runner"
	"github.com/quantmind-br/jesse/internal/utils"
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Fetch a target and scan it with bandit",
	Long: `Fetch a git repository, archive URL, FTP path or local directory and scan it.

Examples:
  jesse scan https://github.com/user/project
  jesse scan https://example.com/project-1.0.tar.gz
  jesse scan ./project --report-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <source> <dest>",
	Short: "Fetch a source into a directory without scanning it",
	Args:  cobra.ExactArgs(2),
	RunE:  runFetch,
}

func init() {
	scanCmd.Flags().String("report-dir", "", "Also write report.json, stdout.txt and stderr.txt under <report-dir>/<uid>")
	scanCmd.Flags().Int("width", 0, "Maximum width of the text report (default from report.width)")

	fetchCmd.Flags().Bool("allow-file", true, "Accept local paths and file:// sources")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	orch, err := app.NewOrchestrator(app.OrchestratorOptions{Config: cfg, Logger: log})
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Scan history disabled")
	}
	if store != nil {
		defer store.Close()
	}

	target := args[0]
	uid := utils.RandomAlphanumeric(8)
	rec := history.Record{UID: uid, Target: target, ScannedAt: time.Now()}

	rep, result, err := scanTarget(ctx, orch, target)
	rec.Duration = time.Since(rec.ScannedAt)
	if err != nil {
		rec.Error = err.Error()
		recordScan(store, rec)
		return err
	}
	rec.Summary = rep.Summary()

	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = cfg.Report.Width
	}
	fmt.Fprintln(cmd.OutOrStdout(), rep.ToText(width, stdoutHasColor()))

	if reportDir, _ := cmd.Flags().GetString("report-dir"); reportDir != "" {
		dir := filepath.Join(utils.ExpandPath(reportDir), uid)
		if err := app.WriteReportDir(dir, rep, result); err != nil {
			rec.Error = err.Error()
			recordScan(store, rec)
			return err
		}
		rec.ReportDir = dir
		log.Info().Str("dir", dir).Msg("Report written")
	}

	recordScan(store, rec)
	return nil
}

func scanTarget(ctx context.Context, orch *app.Orchestrator, target string) (*report.Report, *runner.Result, error) {
	result, err := orch.Scan(ctx, target, true)
	if err != nil && !errors.Is(err, domain.ErrScanTimeout) {
		return nil, nil, err
	}
	if result == nil {
		return nil, nil, err
	}
	rep, perr := result.Report()
	if perr != nil {
		return nil, nil, errors.Join(err, perr)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Scan did not finish, report may be incomplete")
	}
	rep.SetExtra(targetName(target), target)
	return rep, result, nil
}

func recordScan(store *history.Store, rec history.Record) {
	if store == nil {
		return
	}
	if err := store.Put(rec); err != nil {
		log.Warn().Err(err).Str("uid", rec.UID).Msg("Failed to record scan")
	}
}

// targetName derives a short project name from a scan target
func targetName(target string) string {
	name := target
	if i := strings.IndexAny(name, "#?"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimRight(name, "/")
	name = path.Base(filepath.ToSlash(name))
	for _, ext := range []string{".git", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".zip", ".tar"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	allowFile, _ := cmd.Flags().GetBool("allow-file")
	resolver := fetch.NewResolver(fetch.ResolverOptions{
		HTTPClient: &http.Client{Timeout: cfg.Fetch.HTTPTimeout},
		Logger:     log,
		Progress:   cfg.Fetch.Progress,
	})

	dest, err := resolver.SmartFetch(ctx, args[0], utils.ExpandPath(args[1]), domain.FetchOptions{
		AllowFile:     allowFile,
		DefaultBranch: cfg.Fetch.DefaultBranch,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), dest)
	return nil
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Render a saved bandit JSON report",
	Long: `Render a bandit JSON report as text, markdown, json or pdf.

Examples:
  jesse report ./reports/ab12cd34/report.json
  jesse report report.json --format markdown -o report.md
  jesse report report.json --format pdf -o report.pdf --min-severity medium`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "Output file (default stdout, required for pdf)")
	reportCmd.Flags().String("format", "", "Output format: text, markdown, json, pdf (default from report.format)")
	reportCmd.Flags().String("min-severity", "", "Only include findings at or above this severity")
	reportCmd.Flags().String("min-confidence", "", "Only include findings at or above this confidence")
	reportCmd.Flags().Int("width", 0, "Maximum width of the text report (default from report.width)")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	opts, err := reportOptionsFromFlags(cmd, cfg)
	if err != nil {
		return err
	}

	rep, err := report.LoadFile(args[0])
	if err != nil {
		return err
	}
	rep = rep.Filter(opts.minConfidence, opts.minSeverity)

	if opts.format == "pdf" {
		if opts.output == "" {
			return domain.NewValidationError("output", "pdf output requires --output")
		}
		ctx, cancel := signalContext()
		defer cancel()
		return rep.WritePDF(ctx, opts.output)
	}

	var out io.Writer = cmd.OutOrStdout()
	useColor := stdoutHasColor()
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
		useColor = false
	}

	switch opts.format {
	case "markdown":
		md, err := rep.ToMarkdown()
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, md)
		return err
	case "json":
		data, err := rep.ToJSON()
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	default:
		_, err := fmt.Fprintln(out, rep.ToText(opts.width, useColor))
		return err
	}
}

type reportOptions struct {
	output        string
	format        string
	width         int
	minSeverity   report.Ranking
	minConfidence report.Ranking
}

// reportOptionsFromFlags merges report flags over the report configuration
func reportOptionsFromFlags(cmd *cobra.Command, cfg *config.Config) (reportOptions, error) {
	opts := reportOptions{}
	opts.output, _ = cmd.Flags().GetString("output")

	opts.format, _ = cmd.Flags().GetString("format")
	if opts.format == "" {
		opts.format = cfg.Report.Format
	}
	opts.format = strings.ToLower(opts.format)
	if !isReportFormat(opts.format) {
		return opts, domain.NewValidationError("format", fmt.Sprintf("unknown format %q", opts.format))
	}

	opts.width, _ = cmd.Flags().GetInt("width")
	if opts.width <= 0 {
		opts.width = cfg.Report.Width
	}

	var err error
	sev, _ := cmd.Flags().GetString("min-severity")
	if sev == "" {
		sev = cfg.Report.MinSeverity
	}
	if opts.minSeverity, err = report.ParseRanking(sev); err != nil {
		return opts, domain.NewValidationError("min-severity", err.Error())
	}

	conf, _ := cmd.Flags().GetString("min-confidence")
	if conf == "" {
		conf = cfg.Report.MinConfidence
	}
	if opts.minConfidence, err = report.ParseRanking(conf); err != nil {
		return opts, domain.NewValidationError("min-confidence", err.Error())
	}

	return opts, nil
}

func isReportFormat(format string) bool {
	for _, f := range config.ReportFormats {
		if f == format {
			return true
		}
	}
	return false
}
