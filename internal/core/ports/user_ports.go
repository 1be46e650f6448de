package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tasklist/api/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName string) error
	// UpdateRefreshToken overwrites the stored refresh credential and its
	// expiry. Passing nil for both clears them.
	UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string, expiresAt *time.Time) error
	ClearExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type UserService interface {
	GetProfile(ctx context.Context, ident Identity) (*domain.User, error)
	UpdateProfile(ctx context.Context, ident Identity, fullName string) error
}
