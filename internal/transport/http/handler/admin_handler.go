package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-microblog/internal/domain"
	"go-gin-microblog/internal/service"
	mdw "go-gin-microblog/internal/transport/http/middleware"
	resp "go-gin-microblog/internal/transport/http/response"
)

type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// GET /users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var in struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按 email/username 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含封禁
	}
	if err := c.ShouldBindQuery(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}

	users, total, err := h.users.List(c.Request.Context(), mdw.IdentityFrom(c), domain.UserListQuery{
		Offset:      in.Offset,
		Limit:       in.Limit,
		Keyword:     in.Q,
		WithDeleted: in.WithDeleted,
	})
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]userView, 0, len(users))
	for i := range users {
		items = append(items, toUserView(&users[i]))
	}
	resp.Data(c, gin.H{"items": items, "total": total})
}

// POST /users/:id/ban  封禁（软删）
func (h *AdminHandler) BanUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		resp.Fail(c, resp.CodeBadRequest, "missing id")
		return
	}
	if err := h.users.Ban(c.Request.Context(), mdw.IdentityFrom(c), id); err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, gin.H{"id": id})
}
