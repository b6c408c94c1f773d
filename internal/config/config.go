package config

import (
	"os"
	"strconv"
	"strings"
)

// Intake schema identifiers. The full schema carries the five original intake
// fields; the short schema is the trimmed three-field revision.
const (
	SchemaFull  = "full"
	SchemaShort = "short"
)

// Delivery driver identifiers.
const (
	DeliverySendGrid = "sendgrid"
	DeliverySMTP     = "smtp"
	DeliveryStub     = "stub"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	IntakeSchema string

	GeminiAPIKey string
	GeminiModel  string

	SiteContextURL string

	DeliveryDriver string

	SendGridAPIKey    string
	SendGridListID    string
	SendGridFromEmail string
	SendGridFromName  string

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	SMTPFromEmail string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		IntakeSchema: strings.ToLower(strings.TrimSpace(getEnv("INTAKE_SCHEMA", SchemaFull))),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),

		SiteContextURL: getEnv("SITE_CONTEXT_URL", ""),

		DeliveryDriver: strings.ToLower(strings.TrimSpace(getEnv("DELIVERY_DRIVER", DeliverySendGrid))),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridListID:    getEnv("SENDGRID_LIST_ID", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Your Survival Expert"),

		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnvAsInt("SMTP_PORT", 587),
		SMTPUser:      getEnv("SMTP_USER", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
