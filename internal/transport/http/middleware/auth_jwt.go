package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"go-gin-microblog/internal/core/auth"
	"go-gin-microblog/internal/domain"
	resp "go-gin-microblog/internal/transport/http/response"
)

const (
	KeyClaims = "claims"
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 校验 Bearer token；requireRole 非空时再做角色闸门
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.Abort(c, resp.CodeUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrExpired) {
				msg = "token expired"
			}
			resp.Abort(c, resp.CodeUnauthorized, msg)
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.Abort(c, resp.CodeForbidden, "forbidden")
			return
		}
		c.Set(KeyClaims, claims)
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// IdentityFrom 取中间件写入的身份；未鉴权分组里拿到的是零值
func IdentityFrom(c *gin.Context) domain.Identity {
	return domain.Identity{
		UserID: c.GetString(KeyUserID),
		Role:   c.GetString(KeyRole),
	}
}
