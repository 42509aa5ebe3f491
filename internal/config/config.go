package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App             AppConfig             `mapstructure:"app"`
	Server          ServerConfig          `mapstructure:"server"`
	Log             LogConfig             `mapstructure:"log"`
	DB              DBConfig              `mapstructure:"db"`
	Cron            CronConfig            `mapstructure:"cron"`
	Recommendations RecommendationsConfig `mapstructure:"recommendations"`
	Quotes          QuotesConfig          `mapstructure:"quotes"`
	Journal         JournalConfig         `mapstructure:"journal"`
	Audit           AuditConfig           `mapstructure:"audit"`
	Trace           TraceConfig           `mapstructure:"trace"`
}

type AppConfig struct {
	Env  string `mapstructure:"env"`
	Name string `mapstructure:"name"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	StaticDir       string        `mapstructure:"static_dir"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	RecommendationSync string `mapstructure:"recommendation_sync"`
}

type RecommendationsConfig struct {
	SeedPath     string `mapstructure:"seed_path"`
	SyncOnStart  bool   `mapstructure:"sync_on_start"`
	PruneMissing bool   `mapstructure:"prune_missing"`
}

type QuotesConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	APIKeyEnv      string        `mapstructure:"api_key_env"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
}

type JournalConfig struct {
	// Timezone anchors the Sunday-to-Sunday summary week. Empty means the
	// process local zone.
	Timezone string `mapstructure:"timezone"`
}

type AuditConfig struct {
	WebhookURL string        `mapstructure:"webhook_url"`
	TokenEnv   string        `mapstructure:"token_env"`
	Agent      string        `mapstructure:"agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type TraceConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Location resolves the journal timezone, falling back to time.Local.
func (c JournalConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TJ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.name", "trade-journal")
	v.SetDefault("server.http_addr", ":3000")
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "data/journal.db")
	v.SetDefault("db.max_open_conns", 1)
	v.SetDefault("db.max_idle_conns", 1)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.recommendation_sync", "@every 15m")
	v.SetDefault("recommendations.seed_path", "data/trades.json")
	v.SetDefault("recommendations.sync_on_start", true)
	v.SetDefault("recommendations.prune_missing", true)
	v.SetDefault("quotes.base_url", "")
	v.SetDefault("quotes.api_key_env", "TJ_QUOTES_API_KEY")
	v.SetDefault("quotes.timeout", "3s")
	v.SetDefault("quotes.requests_per_sec", 5)
	v.SetDefault("quotes.burst", 5)
	v.SetDefault("journal.timezone", "")
	v.SetDefault("audit.webhook_url", "")
	v.SetDefault("audit.token_env", "TJ_AUDIT_TOKEN")
	v.SetDefault("audit.agent", "trade-journal")
	v.SetDefault("audit.timeout", "2s")
	v.SetDefault("trace.enabled", false)
	v.SetDefault("trace.service_name", "trade-journal")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
