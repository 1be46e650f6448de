package services

import (
	"context"
	"fmt"

	"github.com/tasklist/api/internal/core/domain"
	"github.com/tasklist/api/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetProfile(ctx context.Context, ident ports.Identity) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, ident.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, ident ports.Identity, fullName string) error {
	user, err := s.repo.GetByID(ctx, ident.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := s.repo.UpdateProfile(ctx, ident.UserID, fullName); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
