package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hamed0406/watchtower/internal/config"
	"github.com/hamed0406/watchtower/internal/logging"
	"github.com/hamed0406/watchtower/internal/notify"
	"github.com/hamed0406/watchtower/internal/report"
	"github.com/hamed0406/watchtower/internal/watch"
)

// exitError carries a process exit code out of RunE.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		var ee exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg := config.FromEnv()
	var (
		noNotify   bool
		failOnDown bool
	)

	cmd := &cobra.Command{
		Use:           "watchtower",
		Short:         "Check every configured domain once and print the summary as JSON",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			targets, err := config.LoadTargets(cfg.TargetsFile)
			if err != nil {
				fmt.Fprintln(os.Stderr, "✖", err)
				return exitError{code: 2}
			}

			runner := watch.FromConfig(cfg, logger)
			if noNotify {
				runner.Notifier = nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			res, err := runner.Run(ctx, targets)
			if err != nil {
				fmt.Fprintln(os.Stderr, "✖", err)
				return exitError{code: 2}
			}
			if res.NotifyErr != nil && !(noNotify && errors.Is(res.NotifyErr, notify.ErrSinkUnconfigured)) {
				fmt.Fprintln(os.Stderr, "⚠ notification:", res.NotifyErr)
			}

			if err := report.Write(cmd.OutOrStdout(), res.Summary); err != nil {
				return err
			}
			if failOnDown && res.Summary.Failed > 0 {
				return exitError{code: 1}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.TargetsFile, "targets", "t", cfg.TargetsFile, "target list (JSON or YAML)")
	f.StringVar(&cfg.SlackWebhook, "webhook", cfg.SlackWebhook, "Slack incoming webhook URL")
	f.IntVar(&cfg.MaxConcurrentChecks, "concurrency", cfg.MaxConcurrentChecks, "max probes in flight (0 = all at once)")
	f.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "rotating log directory (empty = stderr only)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	f.BoolVar(&noNotify, "no-notify", false, "never send a notification")
	f.BoolVar(&failOnDown, "fail-on-down", false, "exit 1 when any target is down")
	return cmd
}
