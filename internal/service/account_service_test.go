package service

import (
	"context"
	"testing"

	"agribot/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to model.UserStatus
		want     bool
	}{
		{model.StatusPending, model.StatusApproved, true},
		{model.StatusPending, model.StatusRestricted, true},
		{model.StatusApproved, model.StatusRestricted, true},
		{model.StatusRestricted, model.StatusApproved, true},
		{model.StatusApproved, model.StatusPending, false},
		{model.StatusRestricted, model.StatusPending, false},
		{model.UserStatus("unknown"), model.StatusApproved, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestAccountService_ApproveIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "pw1")

	first, err := f.accounts.Approve(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, first.Status)

	second, err := f.accounts.Approve(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, second.Status)
}

func TestAccountService_RestrictPending(t *testing.T) {
	f := newAuthFixture(t)
	alice := f.register(t, "alice", "pw1")

	user, err := f.accounts.Restrict(context.Background(), alice.ID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusRestricted, user.Status)
}

func TestAccountService_ApproveRestricted(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	alice := f.register(t, "alice", "pw1")
	_, err := f.accounts.Restrict(ctx, alice.ID)
	require.NoError(t, err)

	user, err := f.accounts.Approve(ctx, alice.ID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, user.Status)
}

func TestAccountService_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.accounts.Approve(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.accounts.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAccountService_AdminImmutable(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.auth.BootstrapAdmin(ctx, testAdminSeed)
	require.NoError(t, err)
	admin, _ := f.users.FindByUsername(ctx, "admin")

	_, err = f.accounts.Restrict(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrAdminImmutable)

	stored, _ := f.users.FindByID(ctx, admin.ID)
	assert.Equal(t, model.StatusApproved, stored.Status)
}

func TestAccountService_RetriesLostRace(t *testing.T) {
	f := newAuthFixture(t)
	alice := f.register(t, "alice", "pw1")
	f.users.StaleUpdates = 1

	user, err := f.accounts.Approve(context.Background(), alice.ID)

	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, user.Status)
}

func TestAccountService_GivesUpAfterRepeatedRaces(t *testing.T) {
	f := newAuthFixture(t)
	alice := f.register(t, "alice", "pw1")
	f.users.StaleUpdates = maxTransitionAttempts

	_, err := f.accounts.Approve(context.Background(), alice.ID)

	assert.Error(t, err)
	stored, _ := f.users.FindByID(context.Background(), alice.ID)
	assert.Equal(t, model.StatusPending, stored.Status)
}

func TestAccountService_Dashboard(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.auth.BootstrapAdmin(ctx, testAdminSeed)
	require.NoError(t, err)
	alice := f.register(t, "alice", "pw1")
	bob := f.register(t, "bob", "pw2")
	f.register(t, "carol", "pw3")
	_, err = f.accounts.Approve(ctx, alice.ID)
	require.NoError(t, err)
	_, err = f.accounts.Restrict(ctx, bob.ID)
	require.NoError(t, err)

	stats, err := f.accounts.Dashboard(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.PendingUsers)
	assert.Equal(t, int64(1), stats.RestrictedUsers)
	require.Len(t, stats.PendingList, 1)
	assert.Equal(t, "carol", stats.PendingList[0].Username)

	users, err := f.accounts.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	pending, err := f.accounts.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
