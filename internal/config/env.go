package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables holding the alert credentials
const (
	EnvMailUser      = "GMAIL_USER"
	EnvMailPassword  = "GMAIL_PASS"
	EnvMailRecipient = "SYSTEM_ADMIN"
)

// ApplyEnv loads envFile into the process environment when it exists, then
// copies the mail credentials over cfg. Variables already set in the
// process win over the file, and empty variables leave cfg untouched.
func ApplyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvMailUser); v != "" {
		cfg.Mail.Username = v
	}
	if v := os.Getenv(EnvMailPassword); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv(EnvMailRecipient); v != "" {
		cfg.Mail.Recipient = v
	}
	return nil
}
