package tui

import (
	"github.com/charmbracelet/huh"
)

func rankingOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Any", ""),
		huh.NewOption("Low", "low"),
		huh.NewOption("Medium", "medium"),
		huh.NewOption("High", "high"),
	}
}

func CreateScannerForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("python").
				Title("Python Interpreter").
				Description("Interpreter with bandit installed (empty searches PATH)").
				Value(&values.ScannerPython).
				Placeholder("/usr/bin/python3"),

			huh.NewInput().
				Key("pyenv_root").
				Title("Pyenv Root").
				Description("Used with Pyenv Version when no interpreter is set").
				Value(&values.PyenvRoot).
				Placeholder("~/.pyenv"),

			huh.NewInput().
				Key("pyenv_version").
				Title("Pyenv Version").
				Value(&values.PyenvVersion).
				Placeholder("3.12.1"),

			huh.NewInput().
				Key("timeout").
				Title("Scan Timeout").
				Description("Wall-clock budget for one scan (e.g., 10m, 1h)").
				Value(&values.ScanTimeout).
				Placeholder("30m").
				Validate(ValidateDuration),

			huh.NewConfirm().
				Key("progress").
				Title("Show Spinner").
				Description("Display a spinner while bandit runs").
				Value(&values.ScanProgress),
		),
	).WithTheme(GetTheme())
}

func CreateFetchForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("default_branch").
				Title("Default Branch").
				Description("Branch checked out when a git source names none").
				Value(&values.DefaultBranch).
				Placeholder("master").
				Validate(ValidateRequired),

			huh.NewInput().
				Key("http_timeout").
				Title("Download Timeout").
				Description("Timeout for HTTP archive downloads").
				Value(&values.HTTPTimeout).
				Placeholder("10m").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("tmp_path").
				Title("Scratch Path").
				Description("Fixed fetch directory (empty generates one per scan)").
				Value(&values.TmpPath),

			huh.NewConfirm().
				Key("save").
				Title("Keep Fetched Trees").
				Description("Do not delete scanned directories").
				Value(&values.Save),

			huh.NewConfirm().
				Key("progress").
				Title("Download Progress").
				Description("Display a progress bar for downloads").
				Value(&values.FetchProgress),
		),
	).WithTheme(GetTheme())
}

func CreatePushbulletForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("api_key").
				Title("Access Token").
				Description("Pushbullet access token").
				Value(&values.PushbulletAPIKey).
				EchoMode(huh.EchoModePassword).
				Validate(ValidateAPIKey),

			huh.NewInput().
				Key("device_name").
				Title("Device Name").
				Description("Device that links are shared with").
				Value(&values.DeviceName).
				Placeholder("Bandit"),

			huh.NewInput().
				Key("report_dir").
				Title("Report Directory").
				Description("Where per-scan report directories are written").
				Value(&values.ReportDir).
				Placeholder("."),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("workers").
				Title("Workers").
				Description("Scans run in parallel (1-8)").
				Value(&values.Workers).
				Placeholder("1").
				Validate(ValidateIntRange(1, 8)),

			huh.NewInput().
				Key("max_reconnect").
				Title("Max Reconnect Delay").
				Description("Upper bound between stream reconnect attempts").
				Value(&values.MaxReconnect).
				Placeholder("5m").
				Validate(ValidateDuration),
		),
	).WithTheme(GetTheme())
}

func CreateHistoryForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Record History").
				Description("Keep a record of every scan").
				Value(&values.HistoryEnabled),

			huh.NewInput().
				Key("directory").
				Title("History Directory").
				Value(&values.HistoryDirectory).
				Placeholder("~/.jesse/history"),

			huh.NewInput().
				Key("retention").
				Title("Retention").
				Description("How long records are kept (0s keeps them forever)").
				Value(&values.Retention).
				Placeholder("720h").
				Validate(ValidateDuration),
		),
	).WithTheme(GetTheme())
}

func CreateReportForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Description("Default output format of the report command").
				Options(
					huh.NewOption("Text", "text"),
					huh.NewOption("Markdown", "markdown"),
					huh.NewOption("JSON", "json"),
					huh.NewOption("PDF (needs pandoc)", "pdf"),
				).
				Value(&values.ReportFormat),

			huh.NewInput().
				Key("width").
				Title("Text Width").
				Value(&values.ReportWidth).
				Placeholder("100").
				Validate(ValidateIntRange(40, 400)),

			huh.NewSelect[string]().
				Key("min_severity").
				Title("Minimum Severity").
				Options(rankingOptions()...).
				Value(&values.MinSeverity),

			huh.NewSelect[string]().
				Key("min_confidence").
				Title("Minimum Confidence").
				Options(rankingOptions()...).
				Value(&values.MinConfidence),
		),
	).WithTheme(GetTheme())
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	).WithTheme(GetTheme())
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "scanner":
		return CreateScannerForm(values)
	case "fetch":
		return CreateFetchForm(values)
	case "pushbullet":
		return CreatePushbulletForm(values)
	case "history":
		return CreateHistoryForm(values)
	case "report":
		return CreateReportForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
