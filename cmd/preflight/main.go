// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hamed0406/watchtower/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	_ = godotenv.Load()
	cfg := config.FromEnv()

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		fail(fmt.Sprintf("targets file %s: %v", cfg.TargetsFile, err))
	}
	ok(fmt.Sprintf("%d targets in %s", len(targets), cfg.TargetsFile))

	if cfg.SlackWebhook == "" {
		warn("SLACK_WEBHOOK_URL is empty; failures will be logged but nobody gets alerted.")
	} else if !strings.HasPrefix(cfg.SlackWebhook, "https://") {
		warn("SLACK_WEBHOOK_URL is not https.")
	} else {
		ok("SLACK_WEBHOOK_URL present")
	}

	if len(cfg.APIKeys) == 0 {
		warn("API_KEYS and CRON_SECRET empty; anyone can trigger /api/check.")
	} else {
		ok(fmt.Sprintf("%d API key(s) configured", len(cfg.APIKeys)))
	}

	if cfg.Scheduled() {
		ok(fmt.Sprintf("in-process schedule: cron=%q interval=%s", cfg.CheckCron, cfg.CheckInterval))
	} else {
		warn("no CHECK_CRON or CHECK_INTERVAL_MS; an external trigger must call /api/check.")
	}

	ok("preflight passed")
}
