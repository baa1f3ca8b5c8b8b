package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helios/backend/internal/domain/identity"
	"github.com/helios/backend/internal/domain/shared"
)

// TokenIssuer mints session tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string, isAdmin bool) (string, error)
}

// Service handles account registration and authentication
type Service struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewService creates a new identity Service
func NewService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates an account and returns a session token
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))

	return &AuthResponse{Token: token, User: toUserView(user)}, nil
}

// Login authenticates an account and returns a session token.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		return nil, shared.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: toUserView(user)}, nil
}

// Get returns the account for a user ID
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// UpdateProfile changes the account display name
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserView, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(req.FirstName, req.LastName)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &view, nil
}

// ChangePassword rotates the account password after verifying the
// current one
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.CheckPassword(req.CurrentPassword) {
		return shared.ErrUnauthorized
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}
