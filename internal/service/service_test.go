package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_foreign_keys=on", name)
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

func newTestJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "microblog", TTL: time.Hour}
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db := newTestDB(t)
	return NewAuthService(repo.NewUserRepo(db), newTestJWTer()), db
}

func newPostService(t *testing.T) (*PostService, *gorm.DB) {
	db := newTestDB(t)
	// 缓存关闭：走直查路径
	return NewPostService(repo.NewPostRepo(db), nil), db
}
