package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the process-wide application configuration. It is built once
// at startup and never mutated afterwards; components receive it by injection.
type Config struct {
	ServerPort string
	// BaseURL is the externally visible origin used when building shareable
	// tracking links, e.g. "http://localhost:3000".
	BaseURL string

	DatabaseDSN string
	DBMaxConns  int32

	JWTSecret   string
	JWTExpHours int64

	SMSAPIKey string
	SMSAPIURL string

	GeminiAPIKey string
	GeminiAPIURL string
	GeminiModel  string
}

const (
	defaultSMSAPIURL    = "https://www.fast2sms.com/dev/bulkV2"
	defaultGeminiAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel  = "gemini-2.5-flash"
)

// Load builds the configuration from environment variables.
func Load() (*Config, error) {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	jwtExpHours := int64(24)
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
		}
		jwtExpHours = parsed
	}

	maxConns := int32(5)
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
		}
		maxConns = int32(parsed)
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "3000"
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + serverPort
	}

	smsURL := os.Getenv("SMS_API_URL")
	if smsURL == "" {
		smsURL = defaultSMSAPIURL
	}

	geminiURL := os.Getenv("GEMINI_API_URL")
	if geminiURL == "" {
		geminiURL = defaultGeminiAPIURL
	}
	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = defaultGeminiModel
	}

	return &Config{
		ServerPort:   serverPort,
		BaseURL:      baseURL,
		DatabaseDSN:  dsn,
		DBMaxConns:   maxConns,
		JWTSecret:    jwtSecret,
		JWTExpHours:  jwtExpHours,
		SMSAPIKey:    os.Getenv("SMS_API_KEY"),
		SMSAPIURL:    smsURL,
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiAPIURL: geminiURL,
		GeminiModel:  geminiModel,
	}, nil
}
