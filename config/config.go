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
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisRateLimitDB     int    `mapstructure:"REDIS_RATE_LIMIT_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Payment configuration.
	PaymentGateway      string `mapstructure:"PAYMENT_GATEWAY"`
	StripeKey           string `mapstructure:"STRIPE_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`
	CheckoutSuccessURL  string `mapstructure:"CHECKOUT_SUCCESS_URL"`
	CheckoutCancelURL   string `mapstructure:"CHECKOUT_CANCEL_URL"`
	CreditPriceCents    int64  `mapstructure:"CREDIT_PRICE_CENTS"`
	MaxTopupCredits     int    `mapstructure:"MAX_TOPUP_CREDITS"`

	// Booking defaults.
	LookaheadDays    int    `mapstructure:"LOOKAHEAD_DAYS"`
	LateCancelHours  int    `mapstructure:"LATE_CANCEL_HOURS"`
	ReminderLeadMins int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	DefaultCurrency  string `mapstructure:"DEFAULT_CURRENCY"`
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
	viper.SetDefault("REDIS_RATE_LIMIT_DB", 1)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PAYMENT_GATEWAY", "mock")
	viper.SetDefault("CREDIT_PRICE_CENTS", 100)
	viper.SetDefault("MAX_TOPUP_CREDITS", 100)
	viper.SetDefault("LOOKAHEAD_DAYS", 14)
	viper.SetDefault("LATE_CANCEL_HOURS", 24)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("DEFAULT_CURRENCY", "usd")

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
