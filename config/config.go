package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB    int    `mapstructure:"REDIS_SESSION_DB"`
	RedisWorkerDB     int    `mapstructure:"REDIS_WORKER_DB"`
	SessionTTLMin     int    `mapstructure:"SESSION_TTL_MIN"`
	OfficeCacheTTLMin int    `mapstructure:"OFFICE_CACHE_TTL_MIN"`

	// Remote booking API consumed by the submission client.
	BookingAPIURL       string `mapstructure:"BOOKING_API_URL"`
	BookingAPITimeoutMS int    `mapstructure:"BOOKING_API_TIMEOUT_MS"`

	// Unpaid pending bookings older than this are expired by the worker.
	PendingBookingTTLHours int `mapstructure:"PENDING_BOOKING_TTL_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_WORKER_DB", 2)
	viper.SetDefault("SESSION_TTL_MIN", 30)
	viper.SetDefault("OFFICE_CACHE_TTL_MIN", 10)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "sewakantor")
	viper.SetDefault("BOOKING_API_URL", "")
	viper.SetDefault("BOOKING_API_TIMEOUT_MS", 10000)
	viper.SetDefault("PENDING_BOOKING_TTL_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
