package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/jesse/internal/domain"
)

// TestConfig_Validate tests configuration validation
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		check   func(*testing.T, *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name: "scan timeout below minimum defaults to 30m",
			modify: func(c *Config) {
				c.Scanner.Timeout = 10 * time.Millisecond
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultScanTimeout, c.Scanner.Timeout)
			},
		},
		{
			name: "empty default branch falls back to master",
			modify: func(c *Config) {
				c.Fetch.DefaultBranch = "  "
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "master", c.Fetch.DefaultBranch)
			},
		},
		{
			name: "zero workers defaults to 1",
			modify: func(c *Config) {
				c.Pushbullet.Workers = 0
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 1, c.Pushbullet.Workers)
			},
		},
		{
			name: "empty device name defaults to Bandit",
			modify: func(c *Config) {
				c.Pushbullet.DeviceName = ""
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "Bandit", c.Pushbullet.DeviceName)
			},
		},
		{
			name: "narrow report width is widened",
			modify: func(c *Config) {
				c.Report.Width = 10
			},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, DefaultReportWidth, c.Report.Width)
			},
		},
		{
			name: "ranking thresholds are case-insensitive",
			modify: func(c *Config) {
				c.Report.MinSeverity = "HIGH"
				c.Report.MinConfidence = "Medium"
			},
		},
		{
			name: "unknown report format",
			modify: func(c *Config) {
				c.Report.Format = "html"
			},
			wantErr: "report.format",
		},
		{
			name: "unknown severity",
			modify: func(c *Config) {
				c.Report.MinSeverity = "critical"
			},
			wantErr: "report.min_severity",
		},
		{
			name: "unknown confidence",
			modify: func(c *Config) {
				c.Report.MinConfidence = "sure"
			},
			wantErr: "report.min_confidence",
		},
		{
			name: "pyenv version without root",
			modify: func(c *Config) {
				c.Scanner.Pyenv.Version = "3.12.1"
			},
			wantErr: "scanner.pyenv.root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.wantErr, verr.Field)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 30*time.Minute, cfg.Scanner.Timeout)
	assert.Equal(t, "master", cfg.Fetch.DefaultBranch)
	assert.Equal(t, 10*time.Minute, cfg.Fetch.HTTPTimeout)
	assert.False(t, cfg.Fetch.Save)
	assert.Equal(t, "Bandit", cfg.Pushbullet.DeviceName)
	assert.Equal(t, 1, cfg.Pushbullet.Workers)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, HistoryDir(), cfg.History.Directory)
	assert.Equal(t, "text", cfg.Report.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.Format)
}

func TestPyenvConfig_Enabled(t *testing.T) {
	assert.False(t, PyenvConfig{}.Enabled())
	assert.False(t, PyenvConfig{Root: "/opt/pyenv"}.Enabled())
	assert.True(t, PyenvConfig{Root: "/opt/pyenv", Version: "3.12.1"}.Enabled())
}

func TestPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".jesse"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".jesse", "history"), HistoryDir())
	assert.Equal(t, filepath.Join(home, ".jesse", "config.yaml"), ConfigFilePath())

	require.NoError(t, EnsureConfigDir())
	info, err := os.Stat(ConfigDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

// isolate points HOME and the working directory at fresh temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadWithViper_MissingConfig(t *testing.T) {
	isolate(t)

	cfg, v, err := LoadWithViper()
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithViper_ConfigFile(t *testing.T) {
	dir := isolate(t)
	content := `
scanner:
  timeout: 5m
pushbullet:
  device_name: Scanner
  report_dir: /srv/reports
report:
  format: markdown
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.Scanner.Timeout)
	assert.Equal(t, "Scanner", cfg.Pushbullet.DeviceName)
	assert.Equal(t, "/srv/reports", cfg.Pushbullet.ReportDir)
	assert.Equal(t, "markdown", cfg.Report.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Pushbullet.Workers)
}

func TestLoadWithViper_InvalidYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("invalid: yaml: content: ["), 0644))

	cfg, _, err := LoadWithViper()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadWithViper_InvalidValue(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("report:\n  format: html\n"), 0644))

	_, _, err := LoadWithViper()
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoadWithViper_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("JESSE_PUSHBULLET_API_KEY", "o.secret")
	t.Setenv("JESSE_FETCH_DEFAULT_BRANCH", "main")

	cfg, _, err := LoadWithViper()
	require.NoError(t, err)
	assert.Equal(t, "o.secret", cfg.Pushbullet.APIKey)
	assert.Equal(t, "main", cfg.Fetch.DefaultBranch)
}

func TestSaveAndLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Pushbullet.APIKey = "o.secret"
	cfg.Scanner.Timeout = 2 * time.Minute
	cfg.Report.MinSeverity = "medium"
	require.NoError(t, Save(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "o.secret", loaded.Pushbullet.APIKey)
	assert.Equal(t, 2*time.Minute, loaded.Scanner.Timeout)
	assert.Equal(t, "medium", loaded.Report.MinSeverity)
}

func TestLoadFile_Missing(t *testing.T) {
	isolate(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
