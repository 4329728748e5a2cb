package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		"TELEGRAM_TOKEN": "123:abc",
		"ADMIN_CHAT_ID":  "42",
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing required envs, got nil")
	}

	cfg, err := load(nil, envFrom(requiredEnv()))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.BotAPIURL != defaultBotAPIURL {
		t.Errorf("expected default api url %q, got %q", defaultBotAPIURL, cfg.BotAPIURL)
	}
	if cfg.AdminChatID != 42 {
		t.Errorf("expected admin 42, got %d", cfg.AdminChatID)
	}
	if cfg.WebhookPath != defaultWebhookPath {
		t.Errorf("expected default webhook path %q, got %q", defaultWebhookPath, cfg.WebhookPath)
	}
	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("expected default worker pool %d, got %d", defaultWorkerPoolSize, cfg.WorkerPoolSize)
	}
	if cfg.TicketRetention != defaultTicketRetention {
		t.Errorf("expected default retention %v, got %v", defaultTicketRetention, cfg.TicketRetention)
	}
	if cfg.WebhookURL() != "" {
		t.Errorf("expected empty webhook url without public url, got %q", cfg.WebhookURL())
	}
}

func TestLoadRequiresAdmin(t *testing.T) {
	_, err := load(nil, envFrom(map[string]string{"TELEGRAM_TOKEN": "x"}))
	if err == nil || !strings.Contains(err.Error(), "admin chat id") {
		t.Fatalf("expected admin error, got %v", err)
	}

	_, err = load(nil, envFrom(map[string]string{"ADMIN_CHAT_ID": "1"}))
	if err == nil || !strings.Contains(err.Error(), "telegram token") {
		t.Fatalf("expected token error, got %v", err)
	}
}

func TestLoadUsesPortAndRenderURL(t *testing.T) {
	env := requiredEnv()
	env["PORT"] = "10000"
	env["RENDER_EXTERNAL_URL"] = "https://brisa.onrender.com/"

	cfg, err := load(nil, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.RunAddress != ":10000" {
		t.Errorf("expected run address from PORT, got %q", cfg.RunAddress)
	}
	if cfg.WebhookURL() != "https://brisa.onrender.com/webhook" {
		t.Errorf("unexpected webhook url %q", cfg.WebhookURL())
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := requiredEnv()
	env["WORKER_POOL_SIZE"] = "3"

	args := []string{
		"-a", ":9090",
		"-t", "flag-token",
		"--admin", "7",
		"--api-url", "http://localhost:8081",
		"--public-url", "https://example.org",
		"--webhook-path", "hook",
		"--webhook-secret", "s3cret",
		"--zones", "/etc/brisa/zones.yaml",
		"--worker-pool", "9",
		"--queue-size", "5",
		"--shutdown-timeout", "20s",
		"--retention", "24h",
		"--sweep-interval", "5m",
		"--log-level", "debug",
	}

	cfg, err := load(args, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.BotToken != "flag-token" {
		t.Errorf("expected token override, got %q", cfg.BotToken)
	}
	if cfg.AdminChatID != 7 {
		t.Errorf("expected admin 7, got %d", cfg.AdminChatID)
	}
	if cfg.WebhookURL() != "https://example.org/hook" {
		t.Errorf("unexpected webhook url %q", cfg.WebhookURL())
	}
	if cfg.WebhookSecret != "s3cret" {
		t.Errorf("expected webhook secret override, got %q", cfg.WebhookSecret)
	}
	if cfg.ZonesFile != "/etc/brisa/zones.yaml" {
		t.Errorf("expected zones file override, got %q", cfg.ZonesFile)
	}
	if cfg.WorkerPoolSize != 9 || cfg.UpdateQueueSize != 5 {
		t.Errorf("unexpected pool sizing %d/%d", cfg.WorkerPoolSize, cfg.UpdateQueueSize)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.TicketRetention != 24*time.Hour || cfg.SweepInterval != 5*time.Minute {
		t.Errorf("unexpected retention settings %v/%v", cfg.TicketRetention, cfg.SweepInterval)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"--shutdown-timeout", "bad"}, "invalid shutdown timeout"},
		{[]string{"--retention", "bad"}, "invalid ticket retention"},
		{[]string{"--sweep-interval", "bad"}, "invalid sweep interval"},
		{[]string{"--unknown"}, "parse flags"},
	}

	for _, tc := range cases {
		_, err := load(tc.args, envFrom(requiredEnv()))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("args %v: expected %q error, got %v", tc.args, tc.want, err)
		}
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	env := requiredEnv()
	env["WORKER_POOL_SIZE"] = "-1"
	env["UPDATE_QUEUE_SIZE"] = "0"
	env["SHUTDOWN_TIMEOUT"] = "0"
	env["TICKET_RETENTION"] = "-1h"
	env["RETENTION_SWEEP_INTERVAL"] = "0"

	cfg, err := load(nil, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.WorkerPoolSize != defaultWorkerPoolSize {
		t.Errorf("expected default worker pool %d, got %d", defaultWorkerPoolSize, cfg.WorkerPoolSize)
	}
	if cfg.UpdateQueueSize != defaultUpdateQueueSize {
		t.Errorf("expected default queue size %d, got %d", defaultUpdateQueueSize, cfg.UpdateQueueSize)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
	if cfg.TicketRetention != defaultTicketRetention {
		t.Errorf("expected default retention %v, got %v", defaultTicketRetention, cfg.TicketRetention)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Errorf("expected default sweep interval %v, got %v", defaultSweepInterval, cfg.SweepInterval)
	}
}

func TestLoadReadsTokenFromFile(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "token")
	if err := os.WriteFile(tokenFile, []byte("file-token\n"), 0o600); err != nil {
		t.Fatalf("failed to write token file: %v", err)
	}

	env := map[string]string{
		"ADMIN_CHAT_ID":       "42",
		"TELEGRAM_TOKEN_FILE": tokenFile,
	}

	cfg, err := load(nil, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.BotToken != "file-token" {
		t.Errorf("expected token from file, got %q", cfg.BotToken)
	}
	if strings.Contains(cfg.String(), "file-token") {
		t.Errorf("config string must mask the token: %s", cfg.String())
	}
}
