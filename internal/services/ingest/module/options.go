package module

import (
	"time"

	"tjmwatch/internal/adapters/ingest/freework"
	"tjmwatch/internal/platform/config"
)

// Options holds configuration for ingestion
type Options struct {
	Schedule     string
	RunOnStart   bool
	Keywords     []string
	BaseURL      string
	Timeout      time.Duration
	Retries      int
	RetryBase    time.Duration
	LeaseTTL     time.Duration
	RunTimeout   time.Duration
	DBTimeout    time.Duration
	Secret       string
	EnsureSchema bool
	Mirror       bool
}

// FromConfig reads the ingestion options with CORE_INGEST_ prefix
func FromConfig(cfg config.Conf) Options {
	in := cfg.Prefix("CORE_INGEST_")
	return Options{
		Schedule:     in.MayString("SCHEDULE", "0 8 * * *"),
		RunOnStart:   in.MayBool("RUN_ON_START", false),
		Keywords:     in.MayCSV("KEYWORDS", freework.DefaultKeywords),
		BaseURL:      in.MayString("BASE_URL", "https://www.free-work.com/api"),
		Timeout:      in.MayDuration("TIMEOUT", 30*time.Second),
		Retries:      in.MayInt("RETRIES", 4),
		RetryBase:    in.MayDuration("RETRY_BASE", 500*time.Millisecond),
		LeaseTTL:     in.MayDuration("LEASE_TTL", 15*time.Minute),
		RunTimeout:   in.MayDuration("RUN_TIMEOUT", 10*time.Minute),
		DBTimeout:    in.MayDuration("DB_TIMEOUT", 2*time.Minute),
		Secret:       in.MayString("SECRET", ""),
		EnsureSchema: in.MayBool("ENSURE_SCHEMA", true),
		Mirror:       in.MayBool("MIRROR", true),
	}
}
