// File: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultSchedules lists the five daily check slots reported by /jadwal.
// Display-only: the actual timer trigger is external (cron).
const DefaultSchedules = "10 0 * * *,30 5 * * *,30 11 * * *,30 17 * * *,30 22 * * *"

type BotConfig struct {
	Token string `env:"BOT_TOKEN"`
	// ChatIDs is the fixed recipient set, also the chat allow-list in daemon mode.
	ChatIDs      []string `env:"CHAT_ID" envSeparator:","`
	AllowAnyChat bool     `env:"ALLOW_ANY_CHAT" envDefault:"false"`
}

type UpstreamConfig struct {
	URL     string `env:"API_URL" envDefault:"https://cekkuota-pubs.fadzdigital.store/cekkuota"`
	Key     string `env:"API_KEY" envDefault:"019a00a6-f36c-743f-cff4-fcd7abba5a07"`
	Timeout int    `env:"REQUEST_TIMEOUT" envDefault:"12"` // seconds
	Retries int    `env:"RETRIES" envDefault:"1"`
}

type QuotaConfig struct {
	MSISDNs []string `env:"MSISDN_LIST" envSeparator:","`
	// Timezone and Schedules are display-only, shown by the jadwal command.
	Timezone  string   `env:"TZ" envDefault:"Asia/Jakarta"`
	Schedules []string `env:"SCHEDULES" envSeparator:","`
}

type StateConfig struct {
	Dir string `env:"STATE_DIR" envDefault:"/var/lib/cekkuota"`
}

type AdminConfig struct {
	Addr string `env:"ADMIN_ADDR" envDefault:":8090"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json|console
}

type Config struct {
	Bot      BotConfig
	Upstream UpstreamConfig
	Quota    QuotaConfig
	State    StateConfig
	Admin    AdminConfig
	Log      LogConfig
}

// Load reads configuration from environment variables. The returned value is
// immutable for the process lifetime; components receive it by reference and
// never read ambient state themselves.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Bot.ChatIDs = trimList(cfg.Bot.ChatIDs)
	cfg.Quota.MSISDNs = trimList(cfg.Quota.MSISDNs)
	cfg.Quota.Schedules = trimList(cfg.Quota.Schedules)
	if len(cfg.Quota.Schedules) == 0 {
		cfg.Quota.Schedules = strings.Split(DefaultSchedules, ",")
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 12
	}
	if cfg.Upstream.Retries < 0 {
		cfg.Upstream.Retries = 0
	}
	return &cfg, nil
}

// RequestTimeout returns the upstream timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Upstream.Timeout) * time.Second
}

// MissingForBatch lists the settings a batch run cannot do without, in a
// stable order. Empty means the run may proceed.
func (c *Config) MissingForBatch() []string {
	var missing []string
	if c.Bot.Token == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if len(c.Bot.ChatIDs) == 0 {
		missing = append(missing, "CHAT_ID")
	}
	if len(c.Quota.MSISDNs) == 0 {
		missing = append(missing, "MSISDN_LIST")
	}
	return missing
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
