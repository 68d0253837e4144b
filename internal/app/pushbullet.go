package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/history"
	"github.com/quantmind-br/jesse/internal/pushbullet"
	"github.com/quantmind-br/jesse/internal/report"
	"github.com/quantmind-br/jesse/internal/runner"
	"github.com/quantmind-br/jesse/internal/utils"
)

// Note titles sent back to the requesting device
const (
	TitleScanError     = "Bandit Scan Error"
	TitleReportSummary = "Bandit Report Summary"
)

// Files written to each report directory
const (
	ReportFile = "report.json"
	StderrFile = "stderr.txt"
	StdoutFile = "stdout.txt"
)

// scanUIDLength is the length of the random scan identifier
const scanUIDLength = 8

// PushbulletOptions contains options for creating a PushbulletService
type PushbulletOptions struct {
	API          PushbulletAPI
	Stream       pushbullet.MessageSource
	Orchestrator *Orchestrator
	// History is optional
	History    Recorder
	DeviceName string
	ReportDir  string
	Workers    int
	Logger     *utils.Logger
}

// PushbulletService scans links shared with a dedicated Pushbullet device
// and replies with a summary note
type PushbulletService struct {
	api        PushbulletAPI
	stream     pushbullet.MessageSource
	orch       *Orchestrator
	history    Recorder
	deviceName string
	reportDir  string
	workers    int
	logger     *utils.Logger
}

// ScanOutcome is the result of one push-triggered scan
type ScanOutcome struct {
	UID       string
	Target    string
	Summary   string
	ReportDir string
}

// NewPushbulletService creates a PushbulletService
func NewPushbulletService(opts PushbulletOptions) (*PushbulletService, error) {
	if opts.API == nil || opts.Stream == nil || opts.Orchestrator == nil {
		return nil, fmt.Errorf("api, stream and orchestrator are required")
	}
	if opts.DeviceName == "" {
		opts.DeviceName = "Bandit"
	}
	if opts.ReportDir == "" {
		opts.ReportDir = "."
	}
	return &PushbulletService{
		api:        opts.API,
		stream:     opts.Stream,
		orch:       opts.Orchestrator,
		history:    opts.History,
		deviceName: opts.DeviceName,
		reportDir:  opts.ReportDir,
		workers:    opts.Workers,
		logger:     opts.Logger.OrNop().WithComponent("pushbullet"),
	}, nil
}

// Run registers the scanning device and processes shared links until ctx
// is done. Individual scan failures are reported to the requester and never
// stop the listener.
func (s *PushbulletService) Run(ctx context.Context) error {
	device, err := s.ensureDevice(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureReportDir(); err != nil {
		return err
	}

	pool := utils.NewPool[pushbullet.Push](s.workers, s.handlePush)
	pool.Start(ctx)

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for job := range pool.Results() {
			if job.Err != nil {
				s.logger.Error().Err(job.Err).Str("url", job.Input.URL).Msg("Scan request failed")
				continue
			}
			if outcome, ok := job.Output.(*ScanOutcome); ok {
				s.logger.Info().
					Str("uid", outcome.UID).
					Str("summary", outcome.Summary).
					Msg("Sent summary report")
			}
		}
	}()

	listener := pushbullet.NewDeviceListener(s.api, device.Iden, func(p pushbullet.Push) {
		if err := pool.Submit(ctx, p); err != nil {
			s.logger.Warn().Err(err).Str("iden", p.Iden).Msg("Dropped push")
		}
	}, s.logger)

	s.logger.Info().Str("device", s.deviceName).Msg("Started listener for pushbullet links")

	err = listener.Listen(ctx, s.stream)
	pool.Stop()
	<-drained

	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ensureDevice finds or creates the scanning device and stamps it with the runtime
func (s *PushbulletService) ensureDevice(ctx context.Context) (*pushbullet.Device, error) {
	update := pushbullet.DeviceUpdate{
		Model:        strings.TrimPrefix(runtime.Version(), "go"),
		Manufacturer: "Go",
	}

	device, err := s.api.FindDevice(ctx, s.deviceName)
	if errors.Is(err, domain.ErrDeviceNotFound) {
		device, err = s.api.CreateDevice(ctx, s.deviceName, update)
		if err != nil {
			return nil, fmt.Errorf("create device %s: %w", s.deviceName, err)
		}
		s.logger.Info().Str("device", s.deviceName).Str("iden", device.Iden).Msg("Created device")
		return device, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find device %s: %w", s.deviceName, err)
	}

	if _, err := s.api.EditDevice(ctx, device.Iden, update); err != nil {
		s.logger.Warn().Err(err).Str("iden", device.Iden).Msg("Failed to update device")
	}
	return device, nil
}

func (s *PushbulletService) ensureReportDir() error {
	exists, err := utils.PathExists(s.reportDir)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := os.MkdirAll(s.reportDir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	s.logger.Info().Str("path", s.reportDir).Msg("Created report directory")
	return nil
}

// handlePush is the pool worker. Pushes that are not scan requests return (nil, nil).
func (s *PushbulletService) handlePush(ctx context.Context, push pushbullet.Push) (any, error) {
	if push.Type != pushbullet.PushTypeLink || push.URL == "" || push.SourceDeviceIden == "" {
		return nil, nil
	}

	requester, err := s.findRequester(ctx, push.SourceDeviceIden)
	if err != nil {
		return nil, err
	}
	if requester == nil {
		s.logger.Debug().Str("source", push.SourceDeviceIden).Msg("Ignoring push from unknown device")
		return nil, nil
	}

	uid := utils.RandomAlphanumeric(scanUIDLength)
	logger := s.logger.WithScanID(uid)
	logger.Info().
		Str("url", push.URL).
		Str("requester", requester.Name()).
		Msg("Received request to scan")

	rec := history.Record{
		UID:       uid,
		Target:    push.URL,
		Title:     push.Title,
		Requester: requester.Name(),
		ScannedAt: time.Now(),
	}

	result, rep, err := s.scan(ctx, push.URL)
	rec.Duration = time.Since(rec.ScannedAt)
	if err != nil {
		rec.Error = err.Error()
		s.record(rec)
		body := fmt.Sprintf("An error occurred while scanning: %s", push.URL)
		if _, nerr := s.api.PushNote(ctx, TitleScanError, body, requester.Iden); nerr != nil {
			logger.Error().Err(nerr).Msg("Failed to send error note")
		}
		return nil, err
	}

	summary := rep.Summary()
	body := fmt.Sprintf("Title: %s\nUID: %s\nSummary: %s", push.Title, uid, summary)
	if _, err := s.api.PushNote(ctx, TitleReportSummary, body, requester.Iden); err != nil {
		logger.Error().Err(err).Msg("Failed to send summary note")
	}

	dir := filepath.Join(s.reportDir, uid)
	if err := WriteReportDir(dir, rep, result); err != nil {
		rec.Error = err.Error()
		s.record(rec)
		return nil, err
	}

	rec.Summary = summary
	rec.ReportDir = dir
	s.record(rec)

	return &ScanOutcome{UID: uid, Target: push.URL, Summary: summary, ReportDir: dir}, nil
}

func (s *PushbulletService) scan(ctx context.Context, target string) (*runner.Result, *report.Report, error) {
	result, err := s.orch.Scan(ctx, target, false)
	if err != nil {
		return nil, nil, err
	}
	rep, err := result.Report()
	if err != nil {
		return nil, nil, err
	}
	return result, rep, nil
}

func (s *PushbulletService) findRequester(ctx context.Context, iden string) (*pushbullet.Device, error) {
	devices, err := s.api.Devices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	for i := range devices {
		if devices[i].Iden == iden {
			return &devices[i], nil
		}
	}
	return nil, nil
}

func (s *PushbulletService) record(rec history.Record) {
	if s.history == nil {
		return
	}
	if err := s.history.Put(rec); err != nil {
		s.logger.Warn().Err(err).Str("uid", rec.UID).Msg("Failed to record scan")
	}
}

// WriteReportDir creates dir and writes the report and raw scanner output into it
func WriteReportDir(dir string, rep *report.Report, result *runner.Result) error {
	if err := os.Mkdir(dir, 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := rep.WriteJSONFile(filepath.Join(dir, ReportFile)); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, StderrFile), result.Stderr, 0644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, StdoutFile), result.Stdout, 0644)
}
