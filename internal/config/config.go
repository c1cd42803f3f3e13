package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr          string        // API bind address, e.g. "127.0.0.1:8080" or ":8080" in a container
	LogDir        string        // rotating log directory; empty logs to stderr only
	LogLevel      string        // debug|info|warn|error
	TargetsFile   string        // JSON or YAML target list
	SlackWebhook  string        // empty leaves the notifier unconfigured
	NotifyTimeout time.Duration // HTTP timeout of the webhook call
	UserAgent     string

	MaxConcurrentChecks int // 0 = unbounded fan-out

	// in-process schedule; both empty/zero disables it
	CheckCron     string
	CheckInterval time.Duration

	APIKeys  []string // tokens accepted by the run endpoint; empty = open
	RunRPM   int
	RunBurst int
}

func FromEnv() Config {
	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	logDir, ok := os.LookupEnv("LOG_DIR")
	if !ok {
		logDir = "logs"
	}

	targets := os.Getenv("TARGETS_FILE")
	if targets == "" {
		targets = "domains.json"
	}

	// CRON_SECRET is what scheduled-invocation hosts send as a bearer token
	keys := splitList(os.Getenv("API_KEYS"))
	if s := strings.TrimSpace(os.Getenv("CRON_SECRET")); s != "" {
		keys = append(keys, s)
	}

	return Config{
		Addr:                addr,
		LogDir:              logDir,
		LogLevel:            envOr("LOG_LEVEL", "info"),
		TargetsFile:         targets,
		SlackWebhook:        strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
		NotifyTimeout:       envMillis("NOTIFY_TIMEOUT_MS", 10*time.Second),
		UserAgent:           envOr("USER_AGENT", "Watchtower/1.0"),
		MaxConcurrentChecks: envInt("MAX_CONCURRENT_CHECKS", 0),
		CheckCron:           strings.TrimSpace(os.Getenv("CHECK_CRON")),
		CheckInterval:       envMillis("CHECK_INTERVAL_MS", 0),
		APIKeys:             keys,
		RunRPM:              envInt("RUN_RPM", 30),
		RunBurst:            envInt("RUN_BURST", 5),
	}
}

// Scheduled reports whether an in-process schedule is configured.
func (c Config) Scheduled() bool {
	return c.CheckCron != "" || c.CheckInterval > 0
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func envMillis(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
