package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultCredentialsFile = "credentials.json"
	defaultTokenFile       = "token.json"

	// DefaultUser is the Gmail API alias for the authenticated mailbox owner.
	DefaultUser = "me"
)

// Config holds the application configuration
type Config struct {
	// CredentialsFile is the path to the OAuth client secret JSON
	// downloaded from the Google Cloud console.
	CredentialsFile string
	// TokenFile is the path to the cached OAuth token JSON.
	TokenFile string
	// User is the mailbox to operate on, almost always "me".
	User string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		CredentialsFile: os.Getenv("GMAIL_CREDENTIALS_FILE"),
		TokenFile:       os.Getenv("GMAIL_TOKEN_FILE"),
		User:            os.Getenv("GMAIL_USER"),
	}

	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = defaultCredentialsFile
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile
	}
	if cfg.User == "" {
		cfg.User = DefaultUser
	}

	return cfg, nil
}
