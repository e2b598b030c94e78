package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Storage    Storage
	Redis      Redis
	Queue      Queue
	JWT        JWT
	Push       Push
	LoggerMode LoggerMode
}

type Server struct {
	Port        string
	Environment string
	ClientURL   string
}

// Storage selects the backing database. Driver is "postgres" or "sqlite".
type Storage struct {
	Driver     string
	DSN        string
	SQLitePath string
}

type Redis struct {
	URL string
}

type Queue struct {
	Concurrency int
	Queues      string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

type JWT struct {
	Secret    string
	ExpiredIn int // hours
}

type Push struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string
	TTL             int // seconds
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// vapidPlaceholders are the sample values shipped in env templates.
var vapidPlaceholders = map[string]bool{
	"your-public-key":                       true,
	"your-private-key":                      true,
	"PASTE_YOUR_GENERATED_PUBLIC_KEY_HERE":  true,
	"PASTE_YOUR_GENERATED_PRIVATE_KEY_HERE": true,
}

// Enabled reports whether VAPID keys are present and not the sample placeholders.
func (p Push) Enabled() bool {
	pub := strings.TrimSpace(p.VAPIDPublicKey)
	priv := strings.TrimSpace(p.VAPIDPrivateKey)
	if pub == "" || priv == "" {
		return false
	}
	return !vapidPlaceholders[pub] && !vapidPlaceholders[priv]
}

// QueueEnabled reports whether background jobs go through Redis.
func (c *Config) QueueEnabled() bool {
	return strings.TrimSpace(c.Redis.URL) != ""
}

var envBindings = map[string][]string{
	"server.port":          {"API_PORT", "PORT"},
	"server.environment":   {"APP_ENV"},
	"server.clienturl":     {"CLIENT_URL"},
	"storage.driver":       {"STORAGE_DRIVER"},
	"storage.dsn":          {"DB_URL"},
	"storage.sqlitepath":   {"SQLITE_PATH"},
	"redis.url":            {"REDIS_URL"},
	"queue.concurrency":    {"ASYNQ_CONCURRENCY"},
	"queue.queues":         {"ASYNQ_QUEUES"},
	"jwt.secret":           {"JWT_SECRET"},
	"jwt.expiredin":        {"JWT_EXPIRED_IN"},
	"push.vapidpublickey":  {"VAPID_PUBLIC_KEY", "NEXT_PUBLIC_VAPID_PUBLIC_KEY"},
	"push.vapidprivatekey": {"VAPID_PRIVATE_KEY"},
	"push.subject":         {"VAPID_SUBJECT"},
	"loggermode.level":     {"LOG_LEVEL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.clienturl", "http://localhost:3000")
	v.SetDefault("storage.driver", DriverPostgres)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.sqlitepath", "pairchat.db")
	v.SetDefault("redis.url", "")
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", "notifications=1")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiredin", 24*7)
	v.SetDefault("push.vapidpublickey", "")
	v.SetDefault("push.vapidprivatekey", "")
	v.SetDefault("push.subject", "mailto:admin@yourdomain.com")
	v.SetDefault("push.ttl", 30)
	v.SetDefault("loggermode.development", true)
	v.SetDefault("loggermode.prod", false)
	v.SetDefault("loggermode.level", "info")
}

// LoadConfig reads config/<filename>.yaml when present and layers environment variables on top.
// A missing file is not an error; every key has a default.
func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	return &c, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("config: jwt secret is required (JWT_SECRET)")
	}
	if c.JWT.ExpiredIn <= 0 {
		return errors.New("config: jwt expiry must be positive")
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return errors.New("config: postgres storage requires a DSN (DB_URL)")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("config: sqlite storage requires a path (SQLITE_PATH)")
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// Load is LoadConfig, ParseConfig and Validate in one call.
func Load(filename string) (*Config, error) {
	v, err := LoadConfig(filename)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(v)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
