package service

import (
	"context"

	"go-gin-microblog/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// List 仅 admin 可见；CanListUsers 在这里兜底，路由层还有角色中间件
func (s *UserService) List(ctx context.Context, who domain.Identity, q domain.UserListQuery) ([]domain.User, int64, error) {
	if !domain.CanListUsers(who) {
		return nil, 0, domain.ErrForbidden
	}
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.users.List(ctx, q)
}

// Ban 软删（封禁）
func (s *UserService) Ban(ctx context.Context, who domain.Identity, id string) error {
	if !domain.CanListUsers(who) {
		return domain.ErrForbidden
	}
	return s.users.SoftDelete(ctx, id)
}
