package domain

import "time"

// Like (UserID, PostID) 组合唯一索引，同一用户对同一帖子最多点一次
type Like struct {
	ID     string `gorm:"primaryKey;size:32" json:"id"`
	UserID string `gorm:"size:32;not null;uniqueIndex:idx_user_post" json:"userId"`
	PostID string `gorm:"size:32;not null;uniqueIndex:idx_user_post" json:"postId"`

	// 外键级联兜底：与删帖事务竞争的插入会被数据库拒掉，不会留下孤儿 Like
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Like) TableName() string { return "likes" }
