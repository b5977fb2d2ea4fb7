package auth

import (
	"time"

	"github.com/heartmarshall/doctrkr-backend/internal/domain"
)

// AuthResult is returned by Login and Register.
type AuthResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *domain.User
}
