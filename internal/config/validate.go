package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0")
	}

	if !c.Database.Embedded && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required unless database.embedded is set")
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if (c.Push.VAPIDPublicKey == "") != (c.Push.VAPIDPrivateKey == "") {
		return fmt.Errorf("push: vapid_public_key and vapid_private_key must be set together")
	}

	if c.Activity.RetentionDays < 1 {
		return fmt.Errorf("activity.retention_days must be >= 1 (got %d)", c.Activity.RetentionDays)
	}

	if c.RateLimit.AuthPerMinute < 1 || c.Public.RatePerMinute < 1 {
		return fmt.Errorf("ratelimit: per-minute limits must be >= 1")
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case "local":
		if s.LocalDir == "" {
			return fmt.Errorf("local_dir is required for the local driver")
		}
	case "s3":
		if s.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want local or s3)", s.Driver)
	}
	if s.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0")
	}
	return nil
}
