package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
	"taskboard/internal/core/port"
	"taskboard/internal/core/util"
)

// AccountService orchestrates the account lifecycle: register, login, get,
// update, logout. Every operation validates its input first and touches the
// store only through the injected repository.
type AccountService struct {
	repo      port.UserRepository
	validator port.Validator
	tokens    port.TokenCache
}

func NewAccountService(repo port.UserRepository, validator port.Validator, tokens port.TokenCache) *AccountService {
	return &AccountService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
	}
}

// Register creates a user with a hashed password and no session token. The
// count check gives a friendly Conflict error; the real uniqueness guarantee
// is the unique index on username, whose violation maps to the same error.
func (s *AccountService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUsername(ctx, req.Username)

	if err != nil {
		return nil, err
	}

	if count > 0 {
		return nil, domain.ErrUsernameTaken
	}

	hashed, err := util.HashPassword(req.Password)

	if err != nil {
		slog.Error("Account#Register", "hash_password", err)
		return nil, err
	}

	now := time.Now()

	user, err := s.repo.Create(ctx, domain.User{
		Username:  req.Username,
		Name:      req.Name,
		Password:  hashed,
		Token:     nil,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err != nil {
		return nil, err
	}

	return &response.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Login verifies the credentials and rotates the session token. Unknown
// username and wrong password surface as the same error value. A prior
// token is overwritten, so at most one session is live per user. Not
// idempotent: a retry re-issues a token and invalidates the previous one.
func (s *AccountService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(ctx, req.Username)

	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := util.ComparePassword(req.Password, user.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token := util.NewSessionToken()

	if err := s.repo.UpdateToken(ctx, user.Username, &token); err != nil {
		return nil, err
	}

	s.dropCachedToken(ctx, user.Token)

	return &response.TokenResponse{
		ID:    user.ID,
		Token: token,
	}, nil
}

func (s *AccountService) Get(ctx context.Context, username string) (*response.UserResponse, error) {
	if err := s.validator.ValidateStruct(&request.GetUserRequest{Username: username}); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	return &response.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Update applies a partial patch: name verbatim, password re-hashed, absent
// fields untouched.
func (s *AccountService) Update(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByUsername(ctx, req.Username)

	if err != nil {
		return nil, err
	}

	if count != 1 {
		return nil, domain.ErrUserNotFound
	}

	patch := domain.UserPatch{}

	if req.Name != "" {
		patch.Name = &req.Name
	}

	if req.Password != "" {
		hashed, err := util.HashPassword(req.Password)

		if err != nil {
			slog.Error("Account#Update", "hash_password", err)
			return nil, err
		}

		patch.Password = &hashed
	}

	user, err := s.repo.UpdateByUsername(ctx, req.Username, patch)

	if err != nil {
		return nil, err
	}

	return &response.UserResponse{
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// Logout nulls the stored token, ending the session.
func (s *AccountService) Logout(ctx context.Context, username string) (*response.LogoutResponse, error) {
	if err := s.validator.ValidateStruct(&request.GetUserRequest{Username: username}); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByUsername(ctx, username)

	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateToken(ctx, user.Username, nil); err != nil {
		return nil, err
	}

	s.dropCachedToken(ctx, user.Token)

	return &response.LogoutResponse{Username: user.Username}, nil
}

// dropCachedToken evicts a replaced or cleared token so the cache cannot
// keep a dead session alive past its TTL. Best effort: the row has already
// changed, so a failed eviction only delays invalidation.
func (s *AccountService) dropCachedToken(ctx context.Context, token *string) {
	if s.tokens == nil || token == nil || *token == "" {
		return
	}

	if err := s.tokens.Invalidate(ctx, *token); err != nil {
		slog.Warn("Account#dropCachedToken", "invalidate", err)
	}
}
