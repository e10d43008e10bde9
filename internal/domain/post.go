package domain

import (
	"context"
	"time"
)

type Post struct {
	ID      string `gorm:"primaryKey;size:32" json:"id"`
	Title   string `gorm:"size:191" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	OwnerID string `gorm:"size:32;not null;index" json:"ownerId"`

	// LikeCount 列表查询时聚合填充，不落库
	LikeCount int64 `gorm:"-" json:"likeCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Post) TableName() string { return "posts" }

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	FindByID(ctx context.Context, id string) (*Post, error)
	UpdateContent(ctx context.Context, id, title, content string) error
	// DeleteWithLikes 同一事务内先删 Like 再删 Post，不允许出现孤儿 Like
	DeleteWithLikes(ctx context.Context, id string) error
	List(ctx context.Context) ([]Post, error)
	// CreateLike 事务内校验帖子存在 + 插入；(user,post) 唯一冲突返回 ErrAlreadyLiked
	CreateLike(ctx context.Context, userID, postID string) (*Like, error)
}
