package service

import (
	"context"
	"strings"
	"time"

	"go-gin-microblog/internal/core/cache"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/pkg/utils"
)

const (
	feedCacheKey = "feed:posts"
	feedCacheTTL = 3 * time.Second
)

type PostService struct {
	posts domain.PostRepository
	cache *cache.Cache // 可为 nil（不启用缓存）
}

func NewPostService(posts domain.PostRepository, c *cache.Cache) *PostService {
	return &PostService{posts: posts, cache: c}
}

func (s *PostService) Create(ctx context.Context, ownerID, title, content string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrValidation
	}
	p := &domain.Post{
		ID:      utils.NewID(),
		Title:   strings.TrimSpace(title),
		Content: content,
		OwnerID: ownerID,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return p, nil
}

// Update 仅作者本人；admin 也不能改别人的帖子
func (s *PostService) Update(ctx context.Context, who domain.Identity, postID, title, content string) (*domain.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrValidation
	}

	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if !domain.CanModifyPost(who, p) {
		return nil, domain.ErrForbidden
	}

	if err := s.posts.UpdateContent(ctx, p.ID, strings.TrimSpace(title), content); err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)

	// 回读落库后的行，updatedAt 等字段以数据库为准
	fresh, err := s.posts.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, domain.ErrNotFound
	}
	return fresh, nil
}

// Delete 作者或 admin；连带 Like 同事务删除
func (s *PostService) Delete(ctx context.Context, who domain.Identity, postID string) error {
	p, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if !domain.CanDeletePost(who, p) {
		return domain.ErrForbidden
	}
	if err := s.posts.DeleteWithLikes(ctx, postID); err != nil {
		return err
	}
	s.invalidateFeed(ctx)
	return nil
}

func (s *PostService) Like(ctx context.Context, userID, postID string) (*domain.Like, error) {
	like, err := s.posts.CreateLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	s.invalidateFeed(ctx)
	return like, nil
}

// List 公开接口；带短 TTL 缓存扛热点
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	if s.cache == nil {
		return s.posts.List(ctx)
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, feedCacheKey, feedCacheTTL,
		func(ctx context.Context) (*[]domain.Post, error) {
			posts, e := s.posts.List(ctx)
			if e != nil {
				return nil, e
			}
			return &posts, nil
		})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return []domain.Post{}, nil
	}
	return *out, nil
}

func (s *PostService) invalidateFeed(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, feedCacheKey)
	}
}
