package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-microblog/internal/domain"
	resp "go-gin-microblog/internal/transport/http/response"
)

// fail 业务错误 → 响应码；未知错误一律 500，细节只进日志不出网
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrAlreadyLiked):
		resp.Fail(c, resp.CodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		resp.Fail(c, resp.CodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		resp.Fail(c, resp.CodeForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		resp.Fail(c, resp.CodeNotFound, err.Error())
	default:
		_ = c.Error(err)
		resp.Fail(c, resp.CodeServerError, "internal error")
	}
}

// userView 出网投影，显式排除密码哈希
type userView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *domain.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
