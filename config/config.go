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
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB   int    `mapstructure:"REDIS_CONTEXT_DB"`
	RedisApprovalDB  int    `mapstructure:"REDIS_APPROVAL_DB"`
	RedisNotifyQueue int    `mapstructure:"REDIS_NOTIFY_QUEUE_DB"`

	// Gemini (completion + embedding) configuration.
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel    string `mapstructure:"GEMINI_MODEL"`
	EmbeddingModel string `mapstructure:"EMBEDDING_MODEL"`

	// LINE messaging push endpoint for customer replies.
	LinePushURL     string `mapstructure:"LINE_PUSH_URL"`
	LineAccessToken string `mapstructure:"LINE_ACCESS_TOKEN"`

	// Firebase credentials file for staff FCM alerts.
	FirebaseCredFile string `mapstructure:"FIREBASE_CRED_FILE"`
	StaffAlertTopic  string `mapstructure:"STAFF_ALERT_TOPIC"`

	// Business timezone; all interval math happens in this zone.
	Timezone string `mapstructure:"TIMEZONE"`

	// Business identity printed on invoices and receipts.
	BusinessName         string `mapstructure:"BUSINESS_NAME"`
	BusinessAddressLine1 string `mapstructure:"BUSINESS_ADDRESS_LINE1"`
	BusinessAddressLine2 string `mapstructure:"BUSINESS_ADDRESS_LINE2"`
	BusinessTaxID        string `mapstructure:"BUSINESS_TAX_ID"`
	BankName             string `mapstructure:"BANK_NAME"`
	BankAccountNumber    string `mapstructure:"BANK_ACCOUNT_NUMBER"`

	// DefaultWHTRate is the Thai withholding tax percentage applied to
	// supplier invoices when the staff form leaves the rate blank.
	DefaultWHTRate float64 `mapstructure:"DEFAULT_WHT_RATE"`

	// Walk-in hourly rates in THB, per resource class.
	WalkInRateBay   float64 `mapstructure:"WALK_IN_RATE_BAY"`
	WalkInRateSim   float64 `mapstructure:"WALK_IN_RATE_SIM"`
	WalkInRateCoach float64 `mapstructure:"WALK_IN_RATE_COACH"`
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
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("REDIS_APPROVAL_DB", 1)
	viper.SetDefault("REDIS_NOTIFY_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	viper.SetDefault("EMBEDDING_MODEL", "models/text-embedding-004")
	viper.SetDefault("LINE_PUSH_URL", "https://api.line.me/v2/bot/message/push")
	viper.SetDefault("STAFF_ALERT_TOPIC", "lengolf-staff")
	viper.SetDefault("TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("BUSINESS_NAME", "LENGOLF CO. LTD.")
	viper.SetDefault("BUSINESS_ADDRESS_LINE1", "540 Mercury Tower, 4 Floor, Unit 407 Ploenchit Road")
	viper.SetDefault("BUSINESS_ADDRESS_LINE2", "Lumpini, Pathumwan, Bangkok 10330")
	viper.SetDefault("BUSINESS_TAX_ID", "105566207013")
	viper.SetDefault("BANK_NAME", "")
	viper.SetDefault("BANK_ACCOUNT_NUMBER", "")
	viper.SetDefault("DEFAULT_WHT_RATE", 3.0)
	viper.SetDefault("WALK_IN_RATE_BAY", 500.0)
	viper.SetDefault("WALK_IN_RATE_SIM", 700.0)
	viper.SetDefault("WALK_IN_RATE_COACH", 1500.0)

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
