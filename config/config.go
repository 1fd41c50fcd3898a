package config

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"

	dbSecretName = "storefront/DB_CREDENTIALS"
	devSecret    = "development-only-session-secret"
)

type Config struct {
	Env        string           `mapstructure:"env"`
	Port       string           `mapstructure:"port"`
	Seed       bool             `mapstructure:"seed"`
	Store      StoreConfig      `mapstructure:"store"`
	DB         DBConfig         `mapstructure:"db"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Session    SessionConfig    `mapstructure:"session"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	AWS        AWSConfig        `mapstructure:"aws"`
	CloudWatch CloudWatchConfig `mapstructure:"cloudwatch"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DBConfig struct {
	DSN          string        `mapstructure:"dsn"`
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Name         string        `mapstructure:"name"`
	SSLMode      string        `mapstructure:"sslmode"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	ConnMaxLife  time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type SessionConfig struct {
	Secret       string        `mapstructure:"secret"`
	TTL          time.Duration `mapstructure:"ttl"`
	Backend      string        `mapstructure:"backend"`
	SecureCookie bool          `mapstructure:"secure_cookie"`
}

type AuthConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type AWSConfig struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	OrderTopicARN string `mapstructure:"order_topic_arn"`
	UploadBucket  string `mapstructure:"upload_bucket"`
	UseSecrets    bool   `mapstructure:"use_secrets"`
}

type CloudWatchConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	LogGroup  string `mapstructure:"log_group"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	PerMinute int  `mapstructure:"per_minute"`
	Burst     int  `mapstructure:"burst"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("port", "5000")
	v.SetDefault("seed", true)
	v.SetDefault("store.driver", DriverMemory)

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 7*24*time.Hour)
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.ttl", 5*time.Minute)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "storefront.orders")

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.order_topic_arn", "")
	v.SetDefault("aws.upload_bucket", "")
	v.SetDefault("aws.use_secrets", false)

	v.SetDefault("cloudwatch.enabled", false)
	v.SetDefault("cloudwatch.namespace", "Storefront")
	v.SetDefault("cloudwatch.log_group", "/storefront/api")

	v.SetDefault("cors.allowed_origins", []string{})

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.per_minute", 30)
	v.SetDefault("ratelimit.burst", 10)
}

// Load reads configuration from defaults, an optional YAML file and
// STOREFRONT_* environment variables, in increasing precedence. A .env file
// in the working directory is loaded first when present. An explicit path
// must exist; otherwise config.yaml is looked up in the usual places.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/storefront/")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Session.Secret == "" && cfg.Env == EnvDevelopment {
		cfg.Session.Secret = devSecret
	}
	return &cfg, nil
}

// Validate reports the first inconsistency in cfg.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret is required outside development")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}

	switch c.Store.Driver {
	case DriverMemory:
	case DriverPostgres, DriverMySQL:
		if c.DB.DSN == "" && (c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "") {
			return fmt.Errorf("store.driver %s needs db.dsn or db.host, db.user and db.name", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}

	if !slices.Contains([]string{SessionBackendMemory, SessionBackendRedis}, c.Session.Backend) {
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	if c.Session.Backend == SessionBackendRedis && c.Redis.Addr == "" {
		return errors.New("session.backend redis needs redis.addr")
	}
	if c.Cache.Enabled && c.Redis.Addr == "" {
		return errors.New("cache.enabled needs redis.addr")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return errors.New("kafka.topic is required when kafka.brokers is set")
	}
	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("ratelimit.per_minute and ratelimit.burst must be positive")
	}
	return nil
}

// NeedsRedis reports whether any configured component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Session.Backend == SessionBackendRedis || c.Cache.Enabled
}

// NeedsAWS reports whether any configured component talks to AWS.
func (c *Config) NeedsAWS() bool {
	return c.AWS.UseSecrets || c.AWS.OrderTopicARN != "" || c.AWS.UploadBucket != "" || c.CloudWatch.Enabled
}

// SecretReader fetches a JSON secret as a flat map.
type SecretReader interface {
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
}

// ApplyDBSecrets overrides database credentials with the values stored in
// the storefront/DB_CREDENTIALS secret. Missing or empty keys are left alone.
func (c *Config) ApplyDBSecrets(ctx context.Context, secrets SecretReader) error {
	m, err := secrets.GetSecretMap(ctx, dbSecretName)
	if err != nil {
		return fmt.Errorf("load %s: %w", dbSecretName, err)
	}

	override := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := m[k]; v != "" {
				*dst = v
				return
			}
		}
	}
	override(&c.DB.DSN, "DB_DSN")
	override(&c.DB.User, "DB_USER", "POSTGRES_USER")
	override(&c.DB.Password, "DB_PASSWORD", "POSTGRES_PASSWORD")
	override(&c.DB.Name, "DB_NAME", "POSTGRES_DB")
	override(&c.DB.Host, "DB_HOST", "POSTGRES_HOST")
	override(&c.DB.Port, "DB_PORT", "POSTGRES_PORT")
	return nil
}
