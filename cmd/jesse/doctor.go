package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantmind-br/jesse/internal/app"
	"github.com/quantmind-br/jesse/internal/config"
	"github.com/quantmind-br/jesse/internal/pushbullet"
	"github.com/quantmind-br/jesse/internal/report"
	"github.com/quantmind-br/jesse/internal/utils"
)

// runPython runs the interpreter with args; replaced in tests
var runPython = func(python string, args ...string) error {
	return exec.Command(python, args...).Run()
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  "Verifies that python, bandit and the optional tools are installed and configured.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking system dependencies...")
		allPassed := true

		cfg, cfgErr := config.Load()
		if cfgErr != nil {
			cfg = config.Default()
		}

		// Check 1: Python interpreter
		fmt.Fprint(out, "  Python: ")
		python, err := checkPython(cfg)
		if err != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", err)
			allPassed = false
		} else {
			fmt.Fprintf(out, "OK (%s)\n", python)
		}

		// Check 2: bandit module
		fmt.Fprint(out, "  Bandit: ")
		if python != "" && checkBandit(python) {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "FAILED (install with: pip install bandit)")
			allPassed = false
		}

		// Check 3: pandoc
		fmt.Fprint(out, "  Pandoc: ")
		if path, err := execLookPath(report.PandocBinary); err == nil {
			fmt.Fprintf(out, "OK (%s)\n", path)
		} else {
			fmt.Fprintln(out, "NOT FOUND (pdf reports will be unavailable)")
		}

		// Check 4: Pushbullet API
		fmt.Fprint(out, "  Pushbullet API: ")
		if checkInternet(pushbullet.DefaultBaseURL) {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "UNREACHABLE (the pushbullet command will not work)")
		}

		// Check 5: Write permissions for the report dir
		fmt.Fprint(out, "  Report directory: ")
		reportDir := utils.ExpandPath(cfg.Pushbullet.ReportDir)
		if checkWritePermissions(reportDir) {
			fmt.Fprintf(out, "OK (%s)\n", reportDir)
		} else {
			fmt.Fprintf(out, "FAILED (%s is not writable)\n", reportDir)
			allPassed = false
		}

		// Check 6: Config file
		fmt.Fprint(out, "  Config file: ")
		if cfgErr != nil {
			fmt.Fprintf(out, "WARN (%v)\n", cfgErr)
		} else {
			fmt.Fprintln(out, "OK")
		}

		// Check 7: History directory
		fmt.Fprint(out, "  History directory: ")
		historyDir := utils.ExpandPath(cfg.History.Directory)
		switch {
		case !cfg.History.Enabled:
			fmt.Fprintln(out, "DISABLED")
		case checkDir(historyDir):
			fmt.Fprintf(out, "OK (%s)\n", historyDir)
		default:
			fmt.Fprintln(out, "WARN (will be created on first use)")
		}

		fmt.Fprintln(out)
		if allPassed {
			fmt.Fprintln(out, "All critical checks passed!")
		} else {
			fmt.Fprintln(out, "Some checks failed. Please resolve the issues above.")
		}
		return nil
	},
}

// checkPython resolves the interpreter the scanner would use
func checkPython(cfg *config.Config) (string, error) {
	scanner, err := app.NewScanner(cfg, utils.NewNopLogger())
	if err != nil {
		return "", err
	}
	python, err := scanner.Python()
	if err != nil {
		return "", err
	}
	if _, err := osStat(python); err != nil {
		return "", err
	}
	return python, nil
}

// checkBandit checks that the bandit module imports under python
func checkBandit(python string) bool {
	return runPython(python, "-c", "import bandit") == nil
}

// checkInternet checks that url answers a HEAD request
func checkInternet(url string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// checkWritePermissions checks if we can create a file in dir
func checkWritePermissions(dir string) bool {
	f, err := os.CreateTemp(dir, ".jesse_test_write")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(filepath.Clean(name))
	return true
}

// checkDir checks if path exists and is a directory
func checkDir(path string) bool {
	info, err := osStat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
