package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Signing key categories. One key per user category plus two purpose keys
// for the invite-by-admin and forgot-password flows.
const (
	KeyHomeowner        = "HOMEOWNER"
	KeyContractor       = "CONTRACTOR"
	KeyPropertyManager  = "PROPERTY_MANAGER"
	KeySoleTrader       = "SOLE_TRADER"
	KeySuppliers        = "SUPPLIERS"
	KeyStaffTechnicians = "STAFF_TECHNICIANS"
	KeyTenant           = "TENANT"
	KeyAdmin            = "ADMIN"
	KeyAIAssistant      = "AI_ASSISTANT"
	KeyCreateUser       = "CREATE_USER"
	KeyForgotPassword   = "FORGOT_PASSWORD"
)

var signingKeyNames = []string{
	KeyHomeowner, KeyContractor, KeyPropertyManager, KeySoleTrader, KeySuppliers,
	KeyStaffTechnicians, KeyTenant, KeyAdmin, KeyAIAssistant, KeyCreateUser, KeyForgotPassword,
}

// SigningKeys maps a token category to its HMAC secret.
type SigningKeys struct {
	Keys    map[string]string
	Default string
}

// Secret returns the secret for category, falling back to the default key.
func (k SigningKeys) Secret(category string) []byte {
	if s, ok := k.Keys[category]; ok && s != "" {
		return []byte(s)
	}
	return []byte(k.Default)
}

// Config holds all application configuration
type Config struct {
	DatabaseURL string
	Port        string
	GoEnv       string
	LogLevel    string
	LogFormat   string
	ServiceName string
	FrontendURL string
	TokenTTL    time.Duration
	SigningKeys SigningKeys

	RedisURL         string
	EventGroup       string
	EventConsumer    string
	EventBlock       time.Duration
	FileUploadWorker bool

	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridBaseURL   string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	TwilioBaseURL    string

	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	PromptTemplateURL string

	CORSOrigins []string
}

var (
	current *Config
	mu      sync.RWMutex
)

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		if err := godotenv.Load(); err != nil {
			// Deployed environments set variables directly
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the process environment without loading files.
func FromEnv() *Config {
	keys := make(map[string]string, len(signingKeyNames))
	for _, name := range signingKeyNames {
		if v := os.Getenv(name + "_KEY"); v != "" {
			keys[name] = v
		}
	}

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Port:        getEnv("PORT", "8080"),
		GoEnv:       getEnv("GO_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		ServiceName: getEnv("SERVICE_NAME", "lightwork-auth-api"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		TokenTTL:    getDuration("TOKEN_TTL", 24*time.Hour),
		SigningKeys: SigningKeys{Keys: keys, Default: getEnv("DEFAULT_SIGNING_KEY", "secret")},

		RedisURL:         getEnv("REDIS_URL", ""),
		EventGroup:       getEnv("EVENT_GROUP", "auth-service"),
		EventConsumer:    getEnv("EVENT_CONSUMER", hostname()),
		EventBlock:       getDuration("EVENT_BLOCK", 5*time.Second),
		FileUploadWorker: getBool("FILE_UPLOAD_WORKER", false),

		AWSRegion:          getEnv("AWS_REGION", "eu-west-2"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "no-reply@lightwork.blue"),
		SendGridBaseURL:   getEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com"),

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),
		TwilioBaseURL:    getEnv("TWILIO_BASE_URL", "https://api.twilio.com"),

		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		PromptTemplateURL: getEnv("PROMPT_TEMPLATE_URL", "https://lightwork-be.s3.eu-west-2.amazonaws.com/create_user_prompt.md"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" && !c.IsTest() {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// EventsEnabled reports whether a Redis URL was configured.
func (c *Config) EventsEnabled() bool {
	return c.RedisURL != ""
}

// GetConfig returns the loaded configuration.
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetConfig replaces the loaded configuration (also used by tests).
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	current = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "auth-service-1"
	}
	return h
}
