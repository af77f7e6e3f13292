package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Matching MatchingConfig
	Gemini   GeminiConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type MatchingConfig struct {
	Workers int
	// CandidatePoolSize bounds how many candidates are scored per job lookup.
	CandidatePoolSize int
	ExportDateLayout  string
	// Locale orders equal-scoring titles when a request names no language.
	Locale language.Tag
}

type GeminiConfig struct {
	APIKey     string
	Model      string
	MaxRetries int
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from v. Keys are the upper-case environment names;
// a config file loaded into v may provide them too.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.AutomaticEnv()
	setDefaults(v)

	var missing []string
	req := func(key string) string {
		s := strings.TrimSpace(v.GetString(key))
		if s == "" {
			missing = append(missing, key)
		}
		return s
	}
	opt := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	cfg := Config{}
	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                opt("DB_PORT"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBSSLMode:             opt("DB_SSL_MODE"),
		ConnectTimeout:        v.GetDuration("DB_CONNECT_TIMEOUT"),
		PoolMaxConns:          v.GetInt32("DB_POOL_MAX_CONNS"),
		PoolMinConns:          v.GetInt32("DB_POOL_MIN_CONNS"),
		PoolMaxConnLifetime:   v.GetDuration("DB_POOL_MAX_CONN_LIFETIME"),
		PoolMaxConnIdleTime:   v.GetDuration("DB_POOL_MAX_CONN_IDLE_TIME"),
		PoolHealthCheckPeriod: v.GetDuration("DB_POOL_HEALTH_CHECK_PERIOD"),
	}

	cfg.Redis = RedisConfig{
		URL: opt("REDIS_URL"),
		TTL: v.GetDuration("REDIS_TTL"),
	}

	cfg.Matching = MatchingConfig{
		Workers:           v.GetInt("MATCH_WORKERS"),
		CandidatePoolSize: v.GetInt("MATCH_CANDIDATE_POOL_SIZE"),
		ExportDateLayout:  opt("EXPORT_DATE_LAYOUT"),
	}

	cfg.Gemini = GeminiConfig{
		APIKey:     opt("GEMINI_API_KEY"),
		Model:      opt("GEMINI_MODEL"),
		MaxRetries: v.GetInt("GEMINI_MAX_RETRIES"),
	}

	cfg.Log = LogConfig{
		JSON:  v.GetBool("LOG_JSON"),
		Debug: v.GetBool("LOG_DEBUG"),
	}

	if s := opt("MATCH_LOCALE"); s != "" {
		tag, err := language.Parse(s)
		if err != nil {
			return Config{}, fmt.Errorf("MATCH_LOCALE %q: %w", s, err)
		}
		cfg.Matching.Locale = tag
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if cfg.Matching.Workers < 0 {
		return Config{}, fmt.Errorf("MATCH_WORKERS must not be negative, got %d", cfg.Matching.Workers)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT", 5*time.Second)
	v.SetDefault("REDIS_TTL", 10*time.Minute)
	v.SetDefault("MATCH_WORKERS", 0)
	v.SetDefault("MATCH_CANDIDATE_POOL_SIZE", 500)
	v.SetDefault("EXPORT_DATE_LAYOUT", "02/01/2006")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_MAX_RETRIES", 2)
}
