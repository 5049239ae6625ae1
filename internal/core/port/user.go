package port

import (
	"context"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/model/request"
	"taskboard/internal/core/model/response"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	CountByUsername(ctx context.Context, username string) (int64, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByToken(ctx context.Context, token string) (domain.User, error)
	UpdateByUsername(ctx context.Context, username string, patch domain.UserPatch) (domain.User, error)
	UpdateToken(ctx context.Context, username string, token *string) error
}

type AccountService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	Get(ctx context.Context, username string) (*response.UserResponse, error)
	Update(ctx context.Context, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Logout(ctx context.Context, username string) (*response.LogoutResponse, error)
}
