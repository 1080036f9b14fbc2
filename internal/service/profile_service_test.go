package service

import (
	"context"
	"testing"

	"agribot/internal/model"
	"agribot/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_UpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	profiles := NewProfileService(f.users)
	alice := f.register(t, "alice", "pw1")

	err := profiles.UpdateProfile(context.Background(), alice.ID, model.UpdateProfileRequest{
		FullName: " Alice Farmer ", Phone: "555-0100", Address: "Farm Road 1",
	})
	require.NoError(t, err)

	user, err := profiles.GetProfile(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Farmer", user.FullName)
	assert.Equal(t, "555-0100", user.Phone)
	assert.Equal(t, "Farm Road 1", user.Address)
}

func TestProfileService_UpdateProfile_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)
	profiles := NewProfileService(f.users)

	err := profiles.UpdateProfile(context.Background(), 42, model.UpdateProfileRequest{FullName: "x"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfileService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	profiles := NewProfileService(f.users)
	alice := f.register(t, "alice", "pw1")

	err := profiles.ChangePassword(context.Background(), alice.ID, model.ChangePasswordRequest{
		CurrentPassword: "pw1", NewPassword: "pw2", ConfirmPassword: "pw2",
	})
	require.NoError(t, err)

	user, _ := f.users.FindByID(context.Background(), alice.ID)
	assert.False(t, utils.CheckPasswordHash("pw1", user.PasswordHash))
	assert.True(t, utils.CheckPasswordHash("pw2", user.PasswordHash))
}

func TestProfileService_ChangePassword_WrongCurrent(t *testing.T) {
	f := newAuthFixture(t)
	profiles := NewProfileService(f.users)
	alice := f.register(t, "alice", "pw1")

	err := profiles.ChangePassword(context.Background(), alice.ID, model.ChangePasswordRequest{
		CurrentPassword: "nope", NewPassword: "pw2", ConfirmPassword: "pw2",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	user, _ := f.users.FindByID(context.Background(), alice.ID)
	assert.True(t, utils.CheckPasswordHash("pw1", user.PasswordHash))
}

func TestProfileService_ChangePassword_Mismatch(t *testing.T) {
	f := newAuthFixture(t)
	profiles := NewProfileService(f.users)
	alice := f.register(t, "alice", "pw1")

	err := profiles.ChangePassword(context.Background(), alice.ID, model.ChangePasswordRequest{
		CurrentPassword: "pw1", NewPassword: "pw2", ConfirmPassword: "pw3",
	})

	assert.ErrorIs(t, err, ErrPasswordMismatch)
	user, _ := f.users.FindByID(context.Background(), alice.ID)
	assert.True(t, utils.CheckPasswordHash("pw1", user.PasswordHash))
}
