package config

import (
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("API_ADDR", ":9090")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("TARGETS_FILE", "/etc/watchtower/domains.yaml")
	t.Setenv("SLACK_WEBHOOK_URL", " https://hooks.slack.test/abc ")
	t.Setenv("NOTIFY_TIMEOUT_MS", "1234")
	t.Setenv("MAX_CONCURRENT_CHECKS", "7")
	t.Setenv("CHECK_CRON", "0 * * * *")
	t.Setenv("API_KEYS", "k1, k2,")
	t.Setenv("CRON_SECRET", "cron")
	t.Setenv("RUN_RPM", "111")

	cfg := FromEnv()

	if cfg.Addr != ":9090" || cfg.LogDir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if cfg.TargetsFile != "/etc/watchtower/domains.yaml" {
		t.Fatalf("targets file wrong: %q", cfg.TargetsFile)
	}
	if cfg.SlackWebhook != "https://hooks.slack.test/abc" {
		t.Fatalf("webhook not trimmed: %q", cfg.SlackWebhook)
	}
	if cfg.NotifyTimeout != 1234*time.Millisecond || cfg.MaxConcurrentChecks != 7 {
		t.Fatalf("numbers wrong: %+v", cfg)
	}
	if !cfg.Scheduled() || cfg.CheckCron != "0 * * * *" {
		t.Fatalf("schedule wrong: %+v", cfg)
	}
	if len(cfg.APIKeys) != 3 || cfg.APIKeys[0] != "k1" || cfg.APIKeys[2] != "cron" {
		t.Fatalf("keys wrong: %+v", cfg.APIKeys)
	}
	if cfg.RunRPM != 111 || cfg.RunBurst != 5 {
		t.Fatalf("rate limit wrong: %d/%d", cfg.RunRPM, cfg.RunBurst)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"API_ADDR", "TARGETS_FILE", "SLACK_WEBHOOK_URL", "CHECK_CRON", "CHECK_INTERVAL_MS", "API_KEYS", "CRON_SECRET", "USER_AGENT"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Addr != "127.0.0.1:8080" || cfg.TargetsFile != "domains.json" || cfg.UserAgent != "Watchtower/1.0" {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
	if cfg.Scheduled() || len(cfg.APIKeys) != 0 || cfg.SlackWebhook != "" {
		t.Fatalf("want no schedule, keys or webhook: %+v", cfg)
	}
	if cfg.NotifyTimeout != 10*time.Second {
		t.Fatalf("notify timeout default: %v", cfg.NotifyTimeout)
	}
}
