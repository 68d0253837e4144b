package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/jesse/internal/domain"
)

// Config represents the application configuration
type Config struct {
	Scanner    ScannerConfig    `mapstructure:"scanner" yaml:"scanner"`
	Fetch      FetchConfig      `mapstructure:"fetch" yaml:"fetch"`
	Pushbullet PushbulletConfig `mapstructure:"pushbullet" yaml:"pushbullet"`
	History    HistoryConfig    `mapstructure:"history" yaml:"history"`
	Report     ReportConfig     `mapstructure:"report" yaml:"report"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// ScannerConfig selects the interpreter that runs bandit
type ScannerConfig struct {
	Python   string        `mapstructure:"python" yaml:"python"`
	Pyenv    PyenvConfig   `mapstructure:"pyenv" yaml:"pyenv"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Progress bool          `mapstructure:"progress" yaml:"progress"`
}

// PyenvConfig points at a pyenv-managed interpreter. Used when Scanner.Python is empty.
type PyenvConfig struct {
	Root    string `mapstructure:"root" yaml:"root"`
	Version string `mapstructure:"version" yaml:"version"`
}

// Enabled reports whether a pyenv interpreter is configured
func (p PyenvConfig) Enabled() bool {
	return p.Root != "" && p.Version != ""
}

// FetchConfig contains source retrieval settings
type FetchConfig struct {
	DefaultBranch string        `mapstructure:"default_branch" yaml:"default_branch"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout" yaml:"http_timeout"`
	TmpPath       string        `mapstructure:"tmp_path" yaml:"tmp_path"`
	Save          bool          `mapstructure:"save" yaml:"save"`
	Progress      bool          `mapstructure:"progress" yaml:"progress"`
}

// PushbulletConfig contains the listener settings
type PushbulletConfig struct {
	APIKey       string        `mapstructure:"api_key" yaml:"api_key"`
	DeviceName   string        `mapstructure:"device_name" yaml:"device_name"`
	ReportDir    string        `mapstructure:"report_dir" yaml:"report_dir"`
	Workers      int           `mapstructure:"workers" yaml:"workers"`
	MaxReconnect time.Duration `mapstructure:"max_reconnect" yaml:"max_reconnect"`
}

// HistoryConfig contains scan history settings
type HistoryConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
	Retention time.Duration `mapstructure:"retention" yaml:"retention"`
}

// ReportConfig contains rendering defaults for the report command
type ReportConfig struct {
	Width         int    `mapstructure:"width" yaml:"width"`
	Format        string `mapstructure:"format" yaml:"format"`
	MinSeverity   string `mapstructure:"min_severity" yaml:"min_severity"`
	MinConfidence string `mapstructure:"min_confidence" yaml:"min_confidence"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// ReportFormats lists the accepted report.format values
var ReportFormats = []string{"text", "markdown", "json", "pdf"}

var rankings = []string{"", "undefined", "low", "medium", "high"}

// Validate validates the configuration, replacing out-of-range numbers with defaults
func (c *Config) Validate() error {
	if c.Scanner.Timeout < time.Second {
		c.Scanner.Timeout = DefaultScanTimeout
	}
	if c.Fetch.HTTPTimeout < time.Second {
		c.Fetch.HTTPTimeout = DefaultHTTPTimeout
	}
	if strings.TrimSpace(c.Fetch.DefaultBranch) == "" {
		c.Fetch.DefaultBranch = domain.DefaultBranch
	}
	if c.Pushbullet.DeviceName == "" {
		c.Pushbullet.DeviceName = DefaultDeviceName
	}
	if c.Pushbullet.ReportDir == "" {
		c.Pushbullet.ReportDir = DefaultReportDir
	}
	if c.Pushbullet.Workers < 1 {
		c.Pushbullet.Workers = DefaultPushbulletWorkers
	}
	if c.Pushbullet.MaxReconnect < time.Second {
		c.Pushbullet.MaxReconnect = DefaultMaxReconnect
	}
	if c.History.Retention < 0 {
		c.History.Retention = 0
	}
	if c.Report.Width < 40 {
		c.Report.Width = DefaultReportWidth
	}
	if c.Report.Format == "" {
		c.Report.Format = DefaultReportFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}

	if !oneOf(c.Report.Format, ReportFormats) {
		return domain.NewValidationError("report.format", fmt.Sprintf("must be one of %s", strings.Join(ReportFormats, ", ")))
	}
	if !oneOf(c.Report.MinSeverity, rankings) {
		return domain.NewValidationError("report.min_severity", "must be low, medium or high")
	}
	if !oneOf(c.Report.MinConfidence, rankings) {
		return domain.NewValidationError("report.min_confidence", "must be low, medium or high")
	}
	if c.Scanner.Pyenv.Version != "" && c.Scanner.Pyenv.Root == "" {
		return domain.NewValidationError("scanner.pyenv.root", "required when scanner.pyenv.version is set")
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	s = strings.ToLower(s)
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
