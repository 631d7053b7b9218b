package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	MongoDBURI  string
	JWTSecret   string
	JWTExpiry   time.Duration
	ClientURL   string
	Environment string
	LogLevel    string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		MongoDBURI:  os.Getenv("MONGODB_URI"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		ClientURL:   getEnvWithDefault("CLIENT_URL", "http://localhost:3000"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),

		SMTPHost:     os.Getenv("EMAIL_HOST"),
		SMTPUser:     os.Getenv("EMAIL_USER"),
		SMTPPassword: os.Getenv("EMAIL_PASS"),
		MailFrom:     getEnvWithDefault("EMAIL_FROM", os.Getenv("EMAIL_USER")),
	}

	port, err := strconv.Atoi(getEnvWithDefault("EMAIL_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_PORT: %v", err)
	}
	cfg.SMTPPort = port

	expiry, err := time.ParseDuration(getEnvWithDefault("JWT_EXPIRES_IN", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %v", err)
	}
	cfg.JWTExpiry = expiry

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
