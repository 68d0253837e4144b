package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantmind-br/jesse/internal/app"
	"github.com/quantmind-br/jesse/internal/domain"
	"github.com/quantmind-br/jesse/internal/pushbullet"
	"github.com/quantmind-br/jesse/internal/utils"
)

var pushbulletCmd = &cobra.Command{
	Use:   "pushbullet [api_key]",
	Short: "Scan links pushed to a Pushbullet device",
	Long: `Register a Pushbullet device and scan every link pushed to it.

A summary note is sent back to the device that pushed the link and the full
report is written under <report-dir>/<uid>. The API key may be given as an
argument, in pushbullet.api_key or in JESSE_PUSHBULLET_API_KEY.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPushbullet,
}

func init() {
	pushbulletCmd.Flags().String("report-dir", "", "Directory that receives report folders (default from pushbullet.report_dir)")
	pushbulletCmd.Flags().String("device", "", "Device nickname (default from pushbullet.device_name)")
	pushbulletCmd.Flags().Int("workers", 0, "Concurrent scans (default from pushbullet.workers)")

	_ = viper.BindPFlag("pushbullet.report_dir", pushbulletCmd.Flags().Lookup("report-dir"))
	_ = viper.BindPFlag("pushbullet.device_name", pushbulletCmd.Flags().Lookup("device"))
	_ = viper.BindPFlag("pushbullet.workers", pushbulletCmd.Flags().Lookup("workers"))
}

func runPushbullet(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	apiKey := cfg.Pushbullet.APIKey
	if len(args) > 0 {
		apiKey = args[0]
	}
	if apiKey == "" {
		return domain.NewValidationError("api_key", "a Pushbullet API key is required")
	}

	ctx, cancel := signalContext()
	defer cancel()

	orch, err := app.NewOrchestrator(app.OrchestratorOptions{Config: cfg, Logger: log})
	if err != nil {
		return err
	}

	opts := app.PushbulletOptions{
		API: pushbullet.NewClient(apiKey, pushbullet.ClientOptions{Logger: log}),
		Stream: pushbullet.NewStream(apiKey, pushbullet.StreamOptions{
			MaxReconnectInterval: cfg.Pushbullet.MaxReconnect,
			Logger:               log,
		}),
		Orchestrator: orch,
		DeviceName:   cfg.Pushbullet.DeviceName,
		ReportDir:    utils.ExpandPath(cfg.Pushbullet.ReportDir),
		Workers:      cfg.Pushbullet.Workers,
		Logger:       log,
	}

	store, err := openHistory(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("Scan history disabled")
	}
	if store != nil {
		defer store.Close()
		opts.History = store
	}

	svc, err := app.NewPushbulletService(opts)
	if err != nil {
		return err
	}

	log.Info().Str("device", opts.DeviceName).Str("report_dir", opts.ReportDir).Msg("Waiting for links")
	return svc.Run(ctx)
}
