package repo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-microblog/internal/domain"
)

// newTestDB 每个测试独立的共享内存 sqlite；
// 单连接保证并发用例真正打在同一份数据上；外键开启，跟生产库行为一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Like{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, email, role string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           username + "-id",
		Username:     username,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, id, ownerID, content string) *domain.Post {
	t.Helper()
	p := &domain.Post{ID: id, Content: content, OwnerID: ownerID}
	require.NoError(t, db.Create(p).Error)
	return p
}
