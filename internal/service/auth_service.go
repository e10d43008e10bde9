package service

import (
	"context"
	"strings"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 新用户默认 role=user；明文密码只进 bcrypt，不落库
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrValidation
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Username:     username,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login key 可以是 email 或 username；查无此人和密码错误统一返回 ErrInvalidCredentials
func (s *AuthService) Login(ctx context.Context, key, password string) (string, *domain.User, error) {
	key = strings.TrimSpace(key)
	if key == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	u, err := s.users.FindByEmailOrUsername(ctx, key)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	tok, err := s.jwter.Issue(u.ID, u.Role)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Profile /me 用
func (s *AuthService) Profile(ctx context.Context, uid string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return u, nil
}
