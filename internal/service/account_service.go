package service

import (
	"context"
	"fmt"

	"agribot/internal/metrics"
	"agribot/internal/model"
	"agribot/internal/repository"

	"go.uber.org/zap"
)

// maxTransitionAttempts bounds the compare-and-set retries of a status change.
const maxTransitionAttempts = 3

// statusTransitions lists the allowed status changes. Nothing returns to pending.
var statusTransitions = map[model.UserStatus]map[model.UserStatus]struct{}{
	model.StatusPending: {
		model.StatusApproved:   {},
		model.StatusRestricted: {},
	},
	model.StatusApproved: {
		model.StatusRestricted: {},
	},
	model.StatusRestricted: {
		model.StatusApproved: {},
	},
}

// CanTransition reports whether an account may move from one status to another.
func CanTransition(from, to model.UserStatus) bool {
	if allowed, ok := statusTransitions[from]; ok {
		_, exists := allowed[to]
		return exists
	}
	return false
}

// AccountService manages the account lifecycle and the admin views over accounts
type AccountService interface {
	Approve(ctx context.Context, userID int) (*model.User, error)
	Restrict(ctx context.Context, userID int) (*model.User, error)
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListPending(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, userID int) (*model.User, error)
}

type accountService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo repository.UserRepository, logger *zap.Logger) AccountService {
	return &accountService{userRepo: userRepo, logger: logger}
}

func (s *accountService) Approve(ctx context.Context, userID int) (*model.User, error) {
	return s.transition(ctx, userID, model.StatusApproved)
}

func (s *accountService) Restrict(ctx context.Context, userID int) (*model.User, error) {
	return s.transition(ctx, userID, model.StatusRestricted)
}

func (s *accountService) transition(ctx context.Context, userID int, target model.UserStatus) (*model.User, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}
		if user.IsAdmin() {
			return nil, ErrAdminImmutable
		}
		if user.Status == target {
			return user, nil
		}
		if !CanTransition(user.Status, target) {
			return nil, ErrInvalidTransition
		}

		updated, err := s.userRepo.UpdateStatus(ctx, userID, user.Status, target)
		if err != nil {
			return nil, err
		}
		if updated {
			s.logger.Info("account status changed",
				zap.Int("user_id", userID),
				zap.String("from", string(user.Status)),
				zap.String("to", string(target)),
			)
			metrics.AccountTransitions.WithLabelValues(string(target)).Inc()
			user.Status = target
			return user, nil
		}
	}
	return nil, fmt.Errorf("status of user %d changed concurrently", userID)
}

func (s *accountService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.userRepo.Counts(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.userRepo.ListByStatus(ctx, model.StatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingList = pending
	return stats, nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByRole(ctx, model.RoleUser)
}

func (s *accountService) ListPending(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListByStatus(ctx, model.StatusPending)
}

func (s *accountService) GetUser(ctx context.Context, userID int) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
