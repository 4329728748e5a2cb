package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	BotToken        string
	BotAPIURL       string
	// AdminChatID is the administrator's private chat with the bot. In a private
	// chat the chat id equals the user id, so it also identifies who may run
	// lifecycle actions. Group chats are not supported.
	AdminChatID     int64
	PublicURL       string
	WebhookPath     string
	WebhookSecret   string
	ZonesFile       string
	WorkerPoolSize  int
	UpdateQueueSize int
	ShutdownTimeout time.Duration
	TicketRetention time.Duration
	SweepInterval   time.Duration
	LogLevel        string
}

const (
	defaultRunAddress      = ":8443"
	defaultBotAPIURL       = "https://api.telegram.org"
	defaultWebhookPath     = "/webhook"
	defaultWorkerPoolSize  = 4
	defaultUpdateQueueSize = 64
	defaultShutdownTimeout = 10 * time.Second
	defaultTicketRetention = 72 * time.Hour
	defaultSweepInterval   = time.Hour
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", ""),
		BotToken:        getString(lookup, "TELEGRAM_TOKEN", ""),
		BotAPIURL:       getString(lookup, "TELEGRAM_API_URL", defaultBotAPIURL),
		AdminChatID:     getInt64(lookup, "ADMIN_CHAT_ID", 0),
		PublicURL:       getString(lookup, "PUBLIC_URL", getString(lookup, "RENDER_EXTERNAL_URL", "")),
		WebhookPath:     getString(lookup, "WEBHOOK_PATH", defaultWebhookPath),
		WebhookSecret:   getString(lookup, "WEBHOOK_SECRET", ""),
		ZonesFile:       getString(lookup, "ZONES_FILE", ""),
		WorkerPoolSize:  getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		UpdateQueueSize: getInt(lookup, "UPDATE_QUEUE_SIZE", defaultUpdateQueueSize),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		TicketRetention: getDuration(lookup, "TICKET_RETENTION", defaultTicketRetention),
		SweepInterval:   getDuration(lookup, "RETENTION_SWEEP_INTERVAL", defaultSweepInterval),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}
	if cfg.RunAddress == "" {
		if port := getString(lookup, "PORT", ""); port != "" {
			cfg.RunAddress = ":" + port
		} else {
			cfg.RunAddress = defaultRunAddress
		}
	}

	fs := pflag.NewFlagSet("brisa", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		retentionStr       = cfg.TicketRetention.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
	)

	fs.StringVarP(&cfg.RunAddress, "addr", "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVarP(&cfg.BotToken, "token", "t", cfg.BotToken, "Telegram bot token")
	fs.StringVar(&cfg.BotAPIURL, "api-url", cfg.BotAPIURL, "Telegram Bot API base URL")
	fs.Int64Var(&cfg.AdminChatID, "admin", cfg.AdminChatID, "Administrator private chat id (equals the admin user id)")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "Public base URL used to register the webhook")
	fs.StringVar(&cfg.WebhookPath, "webhook-path", cfg.WebhookPath, "HTTP path receiving Telegram updates")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Secret token expected on webhook requests")
	fs.StringVar(&cfg.ZonesFile, "zones", cfg.ZonesFile, "YAML file with the zone price table")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of update workers")
	fs.IntVar(&cfg.UpdateQueueSize, "queue-size", cfg.UpdateQueueSize, "Pending updates per worker")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&retentionStr, "retention", retentionStr, "How long delivered tickets are kept")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between retention sweeps")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TicketRetention, err = time.ParseDuration(retentionStr); err != nil {
		return nil, fmt.Errorf("invalid ticket retention: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if tokenFile, ok := lookup("TELEGRAM_TOKEN_FILE"); ok && tokenFile != "" {
		content, err := os.ReadFile(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("read telegram token file: %w", err)
		}
		cfg.BotToken = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.UpdateQueueSize <= 0 {
		cfg.UpdateQueueSize = defaultUpdateQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TicketRetention <= 0 {
		cfg.TicketRetention = defaultTicketRetention
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if !strings.HasPrefix(cfg.WebhookPath, "/") {
		cfg.WebhookPath = "/" + cfg.WebhookPath
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram token must be provided")
	}

	if cfg.AdminChatID == 0 {
		return nil, fmt.Errorf("admin chat id must be provided")
	}

	return cfg, nil
}

// WebhookURL returns the public webhook address, or an empty string when no public URL is set.
func (c *Config) WebhookURL() string {
	if c.PublicURL == "" {
		return ""
	}
	return c.PublicURL + c.WebhookPath
}

// String masks secrets so the config can be logged.
func (c *Config) String() string {
	return fmt.Sprintf("Config{addr: %s, admin: %d, webhook: %s, zones: %q, workers: %d, token: ***}",
		c.RunAddress, c.AdminChatID, c.WebhookPath, c.ZonesFile, c.WorkerPoolSize)
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
