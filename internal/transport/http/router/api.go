package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/internal/transport/http/handler"
	mdw "go-gin-microblog/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：公开 浏览 + 登录态写操作 + admin 用户列表
func NewAPIEngine(
	l *zap.Logger,
	jwter *auth.JWTer,
	authH *handler.AuthHandler,
	postH *handler.PostHandler,
	adminH *handler.AdminHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 / 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公开
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/posts", postH.List)

	// 登录态
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))
	authed.GET("/me", authH.Me)
	authed.POST("/posts", postH.Create)
	authed.PATCH("/posts/:id", postH.Update)
	authed.DELETE("/posts/:id", postH.Delete)
	authed.POST("/posts/:id/like", postH.Like)

	// admin
	admin := api.Group("")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	admin.GET("/users", adminH.ListUsers)

	return r
}
