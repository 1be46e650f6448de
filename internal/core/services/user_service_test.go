package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

func TestGetProfile(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "a@x.com"}))
	user, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	svc := NewUserService(repo)

	got, err := svc.GetProfile(context.Background(), ports.Identity{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestGetProfileNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.GetProfile(context.Background(), ports.Identity{UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.User{Email: "a@x.com"}))
	user, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)

	svc := NewUserService(repo)
	ident := ports.Identity{UserID: user.ID}

	require.NoError(t, svc.UpdateProfile(context.Background(), ident, "Ada Lovelace"))

	got, err := svc.GetProfile(context.Background(), ident)
	require.NoError(t, err)
	require.NotNil(t, got.FullName)
	assert.Equal(t, "Ada Lovelace", *got.FullName)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	err := svc.UpdateProfile(context.Background(), ports.Identity{UserID: uuid.New()}, "Ada")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
