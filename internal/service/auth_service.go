package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"agribot/internal/metrics"
	"agribot/internal/model"
	"agribot/internal/repository"
	"agribot/internal/session"
	"agribot/internal/utils"

	"go.uber.org/zap"
)

const (
	portalUser  = "user"
	portalAdmin = "admin"
)

// AdminSeed describes the administrator created on first run
type AdminSeed struct {
	Username string
	Email    string
	Password string
	FullName string
}

// AuthService provides registration, login and logout
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	AdminLogin(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, s *session.Session) error
	BootstrapAdmin(ctx context.Context, seed AdminSeed) (bool, error)
}

type authService struct {
	userRepo  repository.UserRepository
	authority *session.Authority
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, authority *session.Authority, logger *zap.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		authority: authority,
		logger:    logger,
	}
}

// Register creates a pending user account.
// Names and email are trimmed first; any that end up blank yield ErrMissingFields.
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		FullName: strings.TrimSpace(req.FullName),
		Role:     model.RoleUser,
		Status:   model.StatusPending,
	}
	if user.Username == "" || user.Email == "" || user.FullName == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hashedPassword

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user-role account and opens a user session.
// Accounts that are not approved are refused whatever the password.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil || user.Role != model.RoleUser {
		utils.BurnPasswordCheck(password)
		metrics.LoginAttempts.WithLabelValues(portalUser, "invalid_credentials").Inc()
		return nil, "", ErrInvalidCredentials
	}

	passwordOK := utils.CheckPasswordHash(password, user.PasswordHash)
	if !user.IsApproved() {
		metrics.LoginAttempts.WithLabelValues(portalUser, "not_approved").Inc()
		return nil, "", ErrNotApproved
	}
	if !passwordOK {
		metrics.LoginAttempts.WithLabelValues(portalUser, "invalid_credentials").Inc()
		return nil, "", ErrInvalidCredentials
	}

	return s.openSession(ctx, user, portalUser)
}

// AdminLogin authenticates the administrator and opens an admin session
func (s *authService) AdminLogin(ctx context.Context, username, password string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("error finding admin by username: %w", err)
	}
	if user == nil || !user.IsAdmin() {
		utils.BurnPasswordCheck(password)
		metrics.LoginAttempts.WithLabelValues(portalAdmin, "invalid_credentials").Inc()
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues(portalAdmin, "invalid_credentials").Inc()
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsApproved() {
		metrics.LoginAttempts.WithLabelValues(portalAdmin, "not_approved").Inc()
		return nil, "", ErrNotApproved
	}

	return s.openSession(ctx, user, portalAdmin)
}

func (s *authService) openSession(ctx context.Context, user *model.User, portal string) (*model.User, string, error) {
	token, _, err := s.authority.Issue(ctx, session.Principal{ID: user.ID, Role: user.Role, Username: user.Username})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open session: %w", err)
	}
	metrics.LoginAttempts.WithLabelValues(portal, "success").Inc()
	return user, token, nil
}

// Logout destroys the whole session
func (s *authService) Logout(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}
	return s.authority.Destroy(ctx, sess.ID)
}

// BootstrapAdmin seeds the administrator unless one already exists
func (s *authService) BootstrapAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	hashedPassword, err := utils.HashPassword(seed.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	created, err := s.userRepo.CreateAdminIfMissing(ctx, &model.User{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hashedPassword,
		FullName:     seed.FullName,
	})
	if err != nil {
		return false, err
	}

	if created {
		s.logger.Info("admin account created", zap.String("username", seed.Username))
	}
	return created, nil
}
