package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-microblog/internal/domain"
	"go-gin-microblog/pkg/utils"
)

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepo) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *PostRepo) UpdateContent(ctx context.Context, id, title, content string) error {
	return r.db.WithContext(ctx).Model(&domain.Post{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "content": content}).Error
}

// DeleteWithLikes 单事务：先删 Like 再删 Post；帖子已不在则 ErrNotFound
func (r *PostRepo) DeleteWithLikes(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	var posts []domain.Post
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	// 点赞数一次聚合查询回填
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	type likeCount struct {
		PostID string
		Cnt    int64
	}
	var counts []likeCount
	if err := r.db.WithContext(ctx).Model(&domain.Like{}).
		Select("post_id, COUNT(*) AS cnt").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byPost := make(map[string]int64, len(counts))
	for _, c := range counts {
		byPost[c.PostID] = c.Cnt
	}
	for i := range posts {
		posts[i].LikeCount = byPost[posts[i].ID]
	}
	return posts, nil
}

// CreateLike 事务内复查帖子存在再插入；(user,post) 唯一索引兜底并发重复，
// post_id 外键兜底与删帖事务的竞争（插入被拒 → NotFound）
func (r *PostRepo) CreateLike(ctx context.Context, userID, postID string) (*domain.Like, error) {
	like := &domain.Like{ID: utils.NewID(), UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Post
		if err := tx.First(&p, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Omit("Post").Create(like).Error; err != nil {
			if isDupKey(err) {
				return domain.ErrAlreadyLiked
			}
			if isFKViolation(err) {
				return domain.ErrNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return like, nil
}
