package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	"go-gin-microblog/internal/transport/http/handler"
	mdw "go-gin-microblog/internal/transport/http/middleware"
)

// NewAdminEngine 后台端：统一要求 admin 角色
func NewAdminEngine(l *zap.Logger, jwter *auth.JWTer, adminH *handler.AdminHandler) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, domain.RoleAdmin))
	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users/:id/ban", adminH.BanUser)

	return r
}
