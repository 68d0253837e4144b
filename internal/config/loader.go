package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides (JESSE_SCANNER_TIMEOUT, ...)
const EnvPrefix = "JESSE"

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	return load(viper.GetViper(), "")
}

// LoadFile loads configuration like Load but reads the given file instead of
// searching the config directories. The file must exist.
func LoadFile(path string) (*Config, error) {
	return load(viper.GetViper(), path)
}

// LoadWithViper loads configuration into a fresh viper instance and returns it
// so callers can merge flags later.
func LoadWithViper() (*Config, *viper.Viper, error) {
	v := viper.New()
	cfg, err := load(v, "")
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	d := Default()

	// Scanner defaults
	v.SetDefault("scanner.python", d.Scanner.Python)
	v.SetDefault("scanner.pyenv.root", d.Scanner.Pyenv.Root)
	v.SetDefault("scanner.pyenv.version", d.Scanner.Pyenv.Version)
	v.SetDefault("scanner.timeout", d.Scanner.Timeout)
	v.SetDefault("scanner.progress", d.Scanner.Progress)

	// Fetch defaults
	v.SetDefault("fetch.default_branch", d.Fetch.DefaultBranch)
	v.SetDefault("fetch.http_timeout", d.Fetch.HTTPTimeout)
	v.SetDefault("fetch.tmp_path", d.Fetch.TmpPath)
	v.SetDefault("fetch.save", d.Fetch.Save)
	v.SetDefault("fetch.progress", d.Fetch.Progress)

	// Pushbullet defaults
	v.SetDefault("pushbullet.api_key", "")
	v.SetDefault("pushbullet.device_name", d.Pushbullet.DeviceName)
	v.SetDefault("pushbullet.report_dir", d.Pushbullet.ReportDir)
	v.SetDefault("pushbullet.workers", d.Pushbullet.Workers)
	v.SetDefault("pushbullet.max_reconnect", d.Pushbullet.MaxReconnect)

	// History defaults
	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.directory", d.History.Directory)
	v.SetDefault("history.retention", d.History.Retention)

	// Report defaults
	v.SetDefault("report.width", d.Report.Width)
	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.min_severity", "")
	v.SetDefault("report.min_confidence", "")

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Save writes cfg as YAML to path with owner-only permissions, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}
