package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/quantmind-br/jesse/internal/config"
)

// ConfigValues holds form values that map to Config struct.
// Numeric and duration fields are stored as strings for form editing.
type ConfigValues struct {
	ScannerPython string
	PyenvRoot     string
	PyenvVersion  string
	ScanTimeout   string
	ScanProgress  bool

	DefaultBranch string
	HTTPTimeout   string
	TmpPath       string
	Save          bool
	FetchProgress bool

	PushbulletAPIKey string
	DeviceName       string
	ReportDir        string
	Workers          string
	MaxReconnect     string

	HistoryEnabled   bool
	HistoryDirectory string
	Retention        string

	ReportWidth   string
	ReportFormat  string
	MinSeverity   string
	MinConfidence string

	LogLevel  string
	LogFormat string
}

// FromConfig converts a Config to ConfigValues for form editing
func FromConfig(cfg *config.Config) *ConfigValues {
	return &ConfigValues{
		ScannerPython: cfg.Scanner.Python,
		PyenvRoot:     cfg.Scanner.Pyenv.Root,
		PyenvVersion:  cfg.Scanner.Pyenv.Version,
		ScanTimeout:   formatDuration(cfg.Scanner.Timeout),
		ScanProgress:  cfg.Scanner.Progress,

		DefaultBranch: cfg.Fetch.DefaultBranch,
		HTTPTimeout:   formatDuration(cfg.Fetch.HTTPTimeout),
		TmpPath:       cfg.Fetch.TmpPath,
		Save:          cfg.Fetch.Save,
		FetchProgress: cfg.Fetch.Progress,

		PushbulletAPIKey: cfg.Pushbullet.APIKey,
		DeviceName:       cfg.Pushbullet.DeviceName,
		ReportDir:        cfg.Pushbullet.ReportDir,
		Workers:          strconv.Itoa(cfg.Pushbullet.Workers),
		MaxReconnect:     formatDuration(cfg.Pushbullet.MaxReconnect),

		HistoryEnabled:   cfg.History.Enabled,
		HistoryDirectory: cfg.History.Directory,
		Retention:        formatDuration(cfg.History.Retention),

		ReportWidth:   strconv.Itoa(cfg.Report.Width),
		ReportFormat:  cfg.Report.Format,
		MinSeverity:   cfg.Report.MinSeverity,
		MinConfidence: cfg.Report.MinConfidence,

		LogLevel:  cfg.Logging.Level,
		LogFormat: cfg.Logging.Format,
	}
}

// ToConfig converts ConfigValues back to a validated Config
func (v *ConfigValues) ToConfig() (*config.Config, error) {
	scanTimeout, err := parseDurationOrDefault(v.ScanTimeout, config.DefaultScanTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid scanner timeout: %w", err)
	}

	httpTimeout, err := parseDurationOrDefault(v.HTTPTimeout, config.DefaultHTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid http_timeout: %w", err)
	}

	workers, err := parseIntOrDefault(v.Workers, config.DefaultPushbulletWorkers)
	if err != nil {
		return nil, fmt.Errorf("invalid workers: %w", err)
	}

	maxReconnect, err := parseDurationOrDefault(v.MaxReconnect, config.DefaultMaxReconnect)
	if err != nil {
		return nil, fmt.Errorf("invalid max_reconnect: %w", err)
	}

	retention, err := parseDurationOrDefault(v.Retention, config.DefaultRetention)
	if err != nil {
		return nil, fmt.Errorf("invalid retention: %w", err)
	}

	width, err := parseIntOrDefault(v.ReportWidth, config.DefaultReportWidth)
	if err != nil {
		return nil, fmt.Errorf("invalid report width: %w", err)
	}

	cfg := &config.Config{
		Scanner: config.ScannerConfig{
			Python: strings.TrimSpace(v.ScannerPython),
			Pyenv: config.PyenvConfig{
				Root:    strings.TrimSpace(v.PyenvRoot),
				Version: strings.TrimSpace(v.PyenvVersion),
			},
			Timeout:  scanTimeout,
			Progress: v.ScanProgress,
		},
		Fetch: config.FetchConfig{
			DefaultBranch: strings.TrimSpace(v.DefaultBranch),
			HTTPTimeout:   httpTimeout,
			TmpPath:       strings.TrimSpace(v.TmpPath),
			Save:          v.Save,
			Progress:      v.FetchProgress,
		},
		Pushbullet: config.PushbulletConfig{
			APIKey:       strings.TrimSpace(v.PushbulletAPIKey),
			DeviceName:   strings.TrimSpace(v.DeviceName),
			ReportDir:    strings.TrimSpace(v.ReportDir),
			Workers:      workers,
			MaxReconnect: maxReconnect,
		},
		History: config.HistoryConfig{
			Enabled:   v.HistoryEnabled,
			Directory: strings.TrimSpace(v.HistoryDirectory),
			Retention: retention,
		},
		Report: config.ReportConfig{
			Width:         width,
			Format:        v.ReportFormat,
			MinSeverity:   strings.ToLower(strings.TrimSpace(v.MinSeverity)),
			MinConfidence: strings.ToLower(strings.TrimSpace(v.MinConfidence)),
		},
		Logging: config.LoggingConfig{
			Level:  v.LogLevel,
			Format: v.LogFormat,
		},
	}

	if cfg.History.Directory == "" {
		cfg.History.Directory = config.HistoryDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func formatDuration(d time.Duration) string {
	return d.String()
}

func parseDurationOrDefault(s string, defaultVal time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return time.ParseDuration(s)
}

func parseIntOrDefault(s string, defaultVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}
