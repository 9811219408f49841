package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Stripe payment adapter.
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// Reservation policy defaults; listing catalog values override these.
	ServiceFeeRate      float64 `mapstructure:"SERVICE_FEE_RATE"`
	TaxRate             float64 `mapstructure:"TAX_RATE"`
	MinimumStayNights   int     `mapstructure:"MIN_STAY_NIGHTS"`
	MaxGuestsPerBooking int     `mapstructure:"MAX_GUESTS_PER_BOOKING"`
	FullRefundDays      int     `mapstructure:"FULL_REFUND_DAYS"`
	PartialRefundDays   int     `mapstructure:"PARTIAL_REFUND_DAYS"`
	PartialRefundRate   float64 `mapstructure:"PARTIAL_REFUND_RATE"`
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
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("STRIPE_WEBHOOK_SECRET", "")
	viper.SetDefault("SERVICE_FEE_RATE", 0.10)
	viper.SetDefault("TAX_RATE", 0.08)
	viper.SetDefault("MIN_STAY_NIGHTS", 1)
	viper.SetDefault("MAX_GUESTS_PER_BOOKING", 8)
	viper.SetDefault("FULL_REFUND_DAYS", 7)
	viper.SetDefault("PARTIAL_REFUND_DAYS", 2)
	viper.SetDefault("PARTIAL_REFUND_RATE", 0.5)

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

// DefaultCancellationPolicy builds the fallback refund policy from config.
func DefaultCancellationPolicy() (fullDays, partialDays int, partialRate float64) {
	return AppConfig.FullRefundDays, AppConfig.PartialRefundDays, AppConfig.PartialRefundRate
}
