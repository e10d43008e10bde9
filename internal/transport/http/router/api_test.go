package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/internal/repo"
	"go-gin-microblog/internal/service"
	"go-gin-microblog/internal/transport/http/handler"
	"go-gin-microblog/pkg/utils"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB, *auth.JWTer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:api_%s?mode=memory&cache=shared&_foreign_keys=on", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Like{}))

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "microblog", TTL: time.Hour}
	userRepo := repo.NewUserRepo(db)
	postRepo := repo.NewPostRepo(db)
	authH := handler.NewAuthHandler(service.NewAuthService(userRepo, jwter))
	postH := handler.NewPostHandler(service.NewPostService(postRepo, nil))
	adminH := handler.NewAdminHandler(service.NewUserService(userRepo))

	return NewAPIEngine(zap.NewNop(), jwter, authH, postH, adminH), db, jwter
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func registerAndLogin(t *testing.T, r *gin.Engine, username, email, password string) (token, uid string) {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username, "email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var u struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &u))

	w, env = do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"login": email, "password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	require.NotEmpty(t, out.Token)
	return out.Token, u.ID
}

func seedAdmin(t *testing.T, db *gorm.DB, jwter *auth.JWTer) string {
	t.Helper()
	admin := &domain.User{
		ID:           utils.NewID(),
		Username:     "root",
		Email:        "root@example.com",
		PasswordHash: utils.HashPassword("admin-pw"),
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, db.Create(admin).Error)
	tok, err := jwter.Issue(admin.ID, admin.Role)
	require.NoError(t, err)
	return tok
}

func TestRegisterLoginFlow(t *testing.T) {
	r, _, _ := newTestEngine(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "s3cret-pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	// 投影里绝不能有密码哈希
	assert.NotContains(t, string(env.Data), "hash")
	assert.NotContains(t, string(env.Data), "password")

	// 重复 email → 400
	w, _ = do(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "alice2", "email": "alice@example.com", "password": "s3cret-pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 错密码 → 401
	w, _ = do(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"login": "alice@example.com", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 成功登录 + /me
	tok, uid := registerAndLogin(t, r, "bob", "bob@example.com", "s3cret-pw")
	w, env = do(t, r, http.MethodGet, "/api/v1/me", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, uid, me.ID)
	assert.Equal(t, domain.RoleUser, me.Role)
}

func TestPostLifecycleOverHTTP(t *testing.T) {
	r, db, jwter := newTestEngine(t)

	aliceTok, _ := registerAndLogin(t, r, "alice", "alice@example.com", "s3cret-pw")
	bobTok, _ := registerAndLogin(t, r, "bob", "bob@example.com", "s3cret-pw")
	adminTok := seedAdmin(t, db, jwter)

	// 未登录发帖 → 401
	w, _ := do(t, r, http.MethodPost, "/api/v1/posts", "", gin.H{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 发帖
	w, env := do(t, r, http.MethodPost, "/api/v1/posts", aliceTok, gin.H{"title": "hello", "content": "first post"})
	require.Equal(t, http.StatusCreated, w.Code)
	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &post))

	// 空内容 → 400
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts", aliceTok, gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 公开列表
	w, env = do(t, r, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Equal(t, 1, list.Total)

	// 非作者 PATCH → 403；不存在 → 404
	w, _ = do(t, r, http.MethodPatch, "/api/v1/posts/"+post.ID, bobTok, gin.H{"content": "hacked"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = do(t, r, http.MethodPatch, "/api/v1/posts/ghost", aliceTok, gin.H{"content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 作者 PATCH → 200
	w, _ = do(t, r, http.MethodPatch, "/api/v1/posts/"+post.ID, aliceTok, gin.H{"content": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)

	// 点赞：一次 201，二次 400
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", bobTok, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", bobTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/ghost/like", bobTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 非作者删 → 403；admin 删 → 200；连带点赞清掉
	w, _ = do(t, r, http.MethodDelete, "/api/v1/posts/"+post.ID, bobTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = do(t, r, http.MethodDelete, "/api/v1/posts/"+post.ID, adminTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var likes int64
	require.NoError(t, db.Model(&domain.Like{}).Count(&likes).Error)
	assert.EqualValues(t, 0, likes)

	w, _ = do(t, r, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", bobTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminUserListing(t *testing.T) {
	r, db, jwter := newTestEngine(t)

	userTok, _ := registerAndLogin(t, r, "alice", "alice@example.com", "s3cret-pw")
	adminTok := seedAdmin(t, db, jwter)

	// 普通用户 → 403
	w, _ := do(t, r, http.MethodGet, "/api/v1/users", userTok, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 无 token → 401
	w, _ = do(t, r, http.MethodGet, "/api/v1/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// admin → 200，包含两个账号
	w, env := do(t, r, http.MethodGet, "/api/v1/users", adminTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var out struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.EqualValues(t, 2, out.Total)
}

func TestExpiredAndTamperedToken(t *testing.T) {
	r, _, jwter := newTestEngine(t)

	expired := &auth.JWTer{Secret: jwter.Secret, Issuer: jwter.Issuer, TTL: -2 * time.Minute}
	tok, err := expired.Issue("u1", domain.RoleUser)
	require.NoError(t, err)

	w, env := do(t, r, http.MethodPost, "/api/v1/posts", tok, gin.H{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token expired", env.Msg)

	good, err := jwter.Issue("u1", domain.RoleUser)
	require.NoError(t, err)
	w, _ = do(t, r, http.MethodPost, "/api/v1/posts", good+"x", gin.H{"content": "hi"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
