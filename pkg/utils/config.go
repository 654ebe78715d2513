package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Broker    BrokerConfig
	Auth      AuthConfig
	Reconcile ReconcileConfig
	Cache     CacheConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	MaxConns     int32
	ConnectRetry int
}

// RedisConfig is optional; an empty Addr disables the cross-process reconcile lock.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BrokerConfig is optional; an empty URL disables event publishing.
type BrokerConfig struct {
	URL   string
	Queue string
}

type AuthConfig struct {
	JWTSecret  string
	APIKeyHash string
	Disabled   bool
}

type ReconcileConfig struct {
	LockTTL time.Duration
}

type CacheConfig struct {
	GenreTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "cinema-catalog")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_CONNECT_RETRY", 5)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AMQP_QUEUE", "catalog.events")
	viper.SetDefault("AUTH_DISABLED", false)
	viper.SetDefault("RECONCILE_LOCK_TTL", "30s")
	viper.SetDefault("GENRE_CACHE_TTL", "5m")

	// .env is optional, the environment always wins
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:         viper.GetString("DB_HOST"),
			Port:         viper.GetString("DB_PORT"),
			Name:         viper.GetString("DB_NAME"),
			User:         viper.GetString("DB_USER"),
			Password:     viper.GetString("DB_PASS"),
			SSLMode:      viper.GetString("DB_SSLMODE"),
			MaxConns:     viper.GetInt32("DB_MAX_CONNS"),
			ConnectRetry: viper.GetInt("DB_CONNECT_RETRY"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Broker: BrokerConfig{
			URL:   viper.GetString("AMQP_URL"),
			Queue: viper.GetString("AMQP_QUEUE"),
		},
		Auth: AuthConfig{
			JWTSecret:  viper.GetString("AUTH_JWT_SECRET"),
			APIKeyHash: viper.GetString("AUTH_API_KEY_HASH"),
			Disabled:   viper.GetBool("AUTH_DISABLED"),
		},
		Reconcile: ReconcileConfig{
			LockTTL: viper.GetDuration("RECONCILE_LOCK_TTL"),
		},
		Cache: CacheConfig{
			GenreTTL: viper.GetDuration("GENRE_CACHE_TTL"),
		},
	}

	return config, nil
}
