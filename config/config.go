package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Pivot gateway. BaseURL is resolved once from PivotEnv at load time so a
	// request never flips environment mid-flight.
	PivotEnv            string
	PivotBaseURL        string
	PivotMerchantID     string
	PivotMerchantSecret string
	PivotCallbackKey    string
	TokenTTLMinutes     int

	// Public-facing URLs echoed to the gateway and to clients.
	PublicBaseURL    string
	SuccessReturnURL string
	FailureReturnURL string

	// Fonnte WhatsApp messaging
	FonnteURL      string
	FonnteToken    string
	NotifyMinIDR   float64
	NotifyTimezone string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string

	// Kafka settings (comma-separated brokers; empty disables publishing)
	KafkaBrokers string
	KafkaTopic   string
}

const (
	pivotStagingURL    = "https://api-stg.pivot-payment.com"
	pivotProductionURL = "https://api.pivot-payment.com"
)

var AppConfig Config

func LoadConfig() {
	// Try loading .env from different locations
	envLocations := []string{
		".env",              // project root
		"config/.env",       // config subdirectory
		"../config/.env",    // one level up
		"../../config/.env", // two levels up
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = Config{
		AppPort: getEnvWithDefault("APP_PORT", "8080"),

		DBHost:     getEnvWithDefault("DB_HOST", "localhost"),
		DBPort:     getEnvWithDefault("DB_PORT", "5432"),
		DBUser:     getEnvWithDefault("DB_USER", "postgres"),
		DBPassword: getEnvWithDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvWithDefault("DB_NAME", "donations"),

		PivotEnv:            getEnvWithDefault("PIVOT_ENV", "Staging"),
		PivotMerchantID:     os.Getenv("PIVOT_MERCHANT_ID"),
		PivotMerchantSecret: os.Getenv("PIVOT_MERCHANT_SECRET"),
		PivotCallbackKey:    os.Getenv("PIVOT_CALLBACK_KEY"),
		TokenTTLMinutes:     getEnvInt("PIVOT_TOKEN_TTL_MINUTES", 50),

		PublicBaseURL:    getEnvWithDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		SuccessReturnURL: getEnvWithDefault("SUCCESS_RETURN_URL", "http://localhost:8080/payment-status"),
		FailureReturnURL: getEnvWithDefault("FAILURE_RETURN_URL", "http://localhost:8080/payment-status"),

		FonnteURL:      getEnvWithDefault("FONNTE_URL", "https://api.fonnte.com/send"),
		FonnteToken:    os.Getenv("FONNTE_TOKEN"),
		NotifyMinIDR:   getEnvFloat("NOTIFY_MIN_IDR", 20000),
		NotifyTimezone: getEnvWithDefault("NOTIFY_TIMEZONE", "Asia/Jakarta"),

		SMTPHost:  getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getEnvWithDefault("SMTP_PORT", "587"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		EmailFrom: os.Getenv("EMAIL_FROM"),

		KafkaBrokers: getEnvWithDefault("KAFKA_BROKERS", ""),
		KafkaTopic:   getEnvWithDefault("KAFKA_TOPIC", "donations.payments"),
	}

	AppConfig.PivotBaseURL = pivotStagingURL
	if AppConfig.PivotEnv == "Production" {
		AppConfig.PivotBaseURL = pivotProductionURL
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func GetDBConnString() string {
	return "host=" + AppConfig.DBHost +
		" port=" + AppConfig.DBPort +
		" user=" + AppConfig.DBUser +
		" password=" + AppConfig.DBPassword +
		" dbname=" + AppConfig.DBName +
		" sslmode=disable"
}
