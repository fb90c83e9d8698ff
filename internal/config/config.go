package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Tracker  TrackerConfig  `mapstructure:"tracker"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
}

type AppConfig struct {
	AppName     string `mapstructure:"name"`
	Environment string `mapstructure:"env"`
	HTTPPort    string `mapstructure:"http_port"`
}

type DatabaseConfig struct {
	DBHost     string `mapstructure:"host"`
	DBPort     string `mapstructure:"port"`
	DBName     string `mapstructure:"name"`
	DBUser     string `mapstructure:"user"`
	DBPassword string `mapstructure:"password"`
	DBSSLMode  string `mapstructure:"sslmode"`

	ConnectTimeout      time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns        int32         `mapstructure:"pool_max_conns"`
	PoolMinConns        int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime time.Duration `mapstructure:"pool_max_conn_idle_time"`
}

// Enabled reports whether a Postgres host is configured.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.DBHost) != ""
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

func (r RedisConfig) Addr() string {
	return strings.TrimSpace(r.Host) + ":" + strings.TrimSpace(r.Port)
}

type JWTConfig struct {
	AccessSecret    string        `mapstructure:"access_secret"`
	AccessExpiresIn time.Duration `mapstructure:"access_expires_in"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TrackerConfig struct {
	StrictTransitions bool `mapstructure:"strict_transitions"`
}

type CatalogConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// envBindings maps config keys to the environment variables that feed them.
var envBindings = map[string]string{
	"app.name":      "APP_NAME",
	"app.env":       "APP_ENV",
	"app.http_port": "HTTP_PORT",

	"database.host":                    "DB_HOST",
	"database.port":                    "DB_PORT",
	"database.name":                    "DB_NAME",
	"database.user":                    "DB_USER",
	"database.password":                "DB_PASSWORD",
	"database.sslmode":                 "DB_SSL_MODE",
	"database.connect_timeout":         "DB_CONNECT_TIMEOUT",
	"database.pool_max_conns":          "DB_POOL_MAX_CONNS",
	"database.pool_min_conns":          "DB_POOL_MIN_CONNS",
	"database.pool_max_conn_lifetime":  "DB_POOL_MAX_CONN_LIFETIME",
	"database.pool_max_conn_idle_time": "DB_POOL_MAX_CONN_IDLE_TIME",

	"redis.host":      "REDIS_HOST",
	"redis.port":      "REDIS_PORT",
	"redis.password":  "REDIS_PASSWORD",
	"redis.db":        "REDIS_DB",
	"redis.cache_ttl": "SEARCH_CACHE_TTL",

	"jwt.access_secret":     "JWT_ACCESS_SECRET",
	"jwt.access_expires_in": "JWT_ACCESS_EXPIRES_IN",

	"log.level":  "LOG_LEVEL",
	"log.format": "LOG_FORMAT",

	"tracker.strict_transitions": "TRACKER_STRICT_TRANSITIONS",
	"catalog.csv_path":           "CATALOG_CSV",
}

var requiredKeys = []string{"app.name", "app.env", "app.http_port", "jwt.access_secret"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.connect_timeout", 5*time.Second)
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.cache_ttl", 60*time.Second)
	v.SetDefault("jwt.access_expires_in", 15*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("tracker.strict_transitions", false)
}

// Load reads .env (when present), the optional YAML file at path, and the environment.
// Environment values win over the file.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if p := strings.TrimSpace(path); p != "" {
		v.SetConfigFile(p)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", p, err)
		}
	}

	var missing []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, envBindings[key])
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
