package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agribot/internal/model"
	"agribot/internal/repository"
	"agribot/internal/utils"
)

// ProfileService lets a logged-in user read and edit their own account
type ProfileService interface {
	GetProfile(ctx context.Context, userID int) (*model.User, error)
	UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) error
	ChangePassword(ctx context.Context, userID int, req model.ChangePasswordRequest) error
}

type profileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) error {
	err := s.userRepo.UpdateProfile(ctx, userID,
		strings.TrimSpace(req.FullName), strings.TrimSpace(req.Phone), strings.TrimSpace(req.Address))
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// ChangePassword checks the current password first, then the confirmation.
func (s *profileService) ChangePassword(ctx context.Context, userID int, req model.ChangePasswordRequest) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
