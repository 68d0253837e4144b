package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/jesse/internal/domain"
)

// Default values
const (
	// Scanner defaults
	DefaultScanTimeout = 30 * time.Minute

	// Fetch defaults
	DefaultHTTPTimeout = 10 * time.Minute

	// Pushbullet defaults
	DefaultDeviceName        = "Bandit"
	DefaultReportDir         = "."
	DefaultPushbulletWorkers = 1
	DefaultMaxReconnect      = 5 * time.Minute

	// History defaults
	DefaultHistoryEnabled = true
	DefaultRetention      = 30 * 24 * time.Hour

	// Report defaults
	DefaultReportWidth  = 100
	DefaultReportFormat = "text"

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".jesse"
	}
	return filepath.Join(home, ".jesse")
}

// HistoryDir returns the default scan history directory
func HistoryDir() string {
	return filepath.Join(ConfigDir(), "history")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Scanner: ScannerConfig{
			Timeout:  DefaultScanTimeout,
			Progress: true,
		},
		Fetch: FetchConfig{
			DefaultBranch: domain.DefaultBranch,
			HTTPTimeout:   DefaultHTTPTimeout,
			Progress:      true,
		},
		Pushbullet: PushbulletConfig{
			DeviceName:   DefaultDeviceName,
			ReportDir:    DefaultReportDir,
			Workers:      DefaultPushbulletWorkers,
			MaxReconnect: DefaultMaxReconnect,
		},
		History: HistoryConfig{
			Enabled:   DefaultHistoryEnabled,
			Directory: HistoryDir(),
			Retention: DefaultRetention,
		},
		Report: ReportConfig{
			Width:  DefaultReportWidth,
			Format: DefaultReportFormat,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
