package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	SessionBackendMemory   = "memory"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"

	DataSourceMemory   = "memory"
	DataSourceUpstream = "upstream"
)

const developmentSessionSecret = "development-only-session-secret"

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// UpstreamConfig points at the CS API. AppKey and SecretKey are optional;
// Basic auth is only sent when both are set.
type UpstreamConfig struct {
	BaseURL   string
	AppKey    string
	SecretKey string
	Timeout   time.Duration
}

type SessionConfig struct {
	Backend       string
	Secret        string
	TTL           time.Duration
	SweepInterval time.Duration
}

type DataConfig struct {
	Source string
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Enabled       bool
	Endpoint      string
	AccessKey     string
	SecretKey     string
	BucketKYC     string
	UseSSL        bool
	Region        string
	PublicBaseURL string
}

type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

type CacheConfig struct {
	ReferenceTTL time.Duration
}

type AppConfig struct {
	Environment     string
	HTTP            HTTPConfig
	Upstream        UpstreamConfig
	Session         SessionConfig
	Data            DataConfig
	Postgres        PostgresConfig
	Redis           RedisConfig
	Storage         StorageConfig
	RateLimit       RateLimitConfig
	Cache           CacheConfig
	// FrontendOrigins are the browser origins allowed to call the API with
	// session cookies attached.
	FrontendOrigins []string
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")
	if cfg.Session.Secret == "" && !cfg.IsProduction() {
		cfg.Session.Secret = developmentSessionSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindLegacyEnv keeps the variable names the portal has always been deployed with.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"upstream.baseurl":   {"PORTAL_UPSTREAM_BASEURL", "CS_API_BASE_URL"},
		"upstream.appkey":    {"PORTAL_UPSTREAM_APPKEY", "CS_APP_KEY"},
		"upstream.secretkey": {"PORTAL_UPSTREAM_SECRETKEY", "CS_SECRET_KEY"},
		"environment":        {"PORTAL_ENVIRONMENT", "NODE_ENV"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	return nil
}

func (c *AppConfig) Validate() error {
	var errs []error
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("session.secret is required in production"))
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown session.backend %q", c.Session.Backend))
	}
	if c.Session.Backend == SessionBackendPostgres && c.Postgres.DSN == "" {
		errs = append(errs, errors.New("postgres.dsn is required for the postgres session backend"))
	}
	switch c.Data.Source {
	case DataSourceMemory, DataSourceUpstream:
	default:
		errs = append(errs, fmt.Errorf("unknown data.source %q", c.Data.Source))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("upstream.baseurl", "http://localhost:3000/api")
	v.SetDefault("upstream.timeout", "15s")

	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "168h") // 7 days
	v.SetDefault("session.sweepinterval", "15m")

	v.SetDefault("data.source", DataSourceMemory)

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 10)
	v.SetDefault("postgres.maxidle", 2)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", "127.0.0.1:9000")
	v.SetDefault("storage.accesskey", "")
	v.SetDefault("storage.secretkey", "")
	v.SetDefault("storage.bucketkyc", "sdb-kyc-documents")
	v.SetDefault("storage.usessl", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.publicbaseurl", "")

	v.SetDefault("ratelimit.authrps", 5)
	v.SetDefault("ratelimit.authburst", 10)

	v.SetDefault("cache.referencettl", "5m")

	v.SetDefault("frontendorigins", []string{"http://localhost:3000"})
}
