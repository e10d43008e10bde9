package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// UserListQuery 管理端用户列表筛选
type UserListQuery struct {
	Offset      int
	Limit       int
	Keyword     string // 按 email/username 模糊搜
	WithDeleted bool   // 是否包含软删（封禁）
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmailOrUsername(ctx context.Context, key string) (*User, error)
	List(ctx context.Context, q UserListQuery) ([]User, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
