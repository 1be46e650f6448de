package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Identity is the authenticated caller, produced once by the HTTP
// authentication middleware and passed explicitly to every core operation.
type Identity struct {
	UserID uuid.UUID
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenIssuer interface {
	Sign(userID uuid.UUID, ttl time.Duration) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Email    string
	Password string
	FullName *string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}
