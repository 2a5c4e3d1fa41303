package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage configuration.
	StorageDriver string `mapstructure:"STORAGE_DRIVER"` // "mongo" or "memory"
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DatabaseName  string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB   int    `mapstructure:"REDIS_LOCK_DB"`

	// Calendar and negotiation settings.
	TimeZone     string        `mapstructure:"TIME_ZONE"`
	RateCacheTTL time.Duration `mapstructure:"RATE_CACHE_TTL"`
	LockTTL      time.Duration `mapstructure:"LOCK_TTL"`
}

var AppConfig Config

// LoadConfig reads .env, an optional yaml file and the environment into AppConfig.
// An explicit configFile takes precedence over the search paths.
func LoadConfig(configFile string) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Look for a config file named "config.yaml" in the current and "config" directory.
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORAGE_DRIVER", "mongo")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "showdan")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_LOCK_DB", 3)
	v.SetDefault("TIME_ZONE", "UTC")
	v.SetDefault("RATE_CACHE_TTL", "10m")
	v.SetDefault("LOCK_TTL", "10s")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// UsesMemoryStore reports whether the process runs without MongoDB and Redis.
func UsesMemoryStore() bool {
	return AppConfig.StorageDriver == "memory"
}

// Location returns the zone calendar days are cut in, falling back to UTC.
func Location() *time.Location {
	if AppConfig.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.TimeZone)
	if err != nil {
		log.Printf("Unknown TIME_ZONE %q, using UTC", AppConfig.TimeZone)
		return time.UTC
	}
	return loc
}
