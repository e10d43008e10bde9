package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-microblog/internal/service"
	mdw "go-gin-microblog/internal/transport/http/middleware"
	resp "go-gin-microblog/internal/transport/http/response"
)

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}

	u, err := h.auth.Register(c.Request.Context(), in.Username, in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, toUserView(u))
}

// POST /auth/login  login 字段兼容 email / username
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Login    string `json:"login"    binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}

	tok, u, err := h.auth.Login(c.Request.Context(), in.Login, in.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, gin.H{"token": tok, "user": toUserView(u)})
}

// GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	u, err := h.auth.Profile(c.Request.Context(), uid)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, toUserView(u))
}
