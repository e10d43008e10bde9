package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-microblog/internal/service"
	mdw "go-gin-microblog/internal/transport/http/middleware"
	resp "go-gin-microblog/internal/transport/http/response"
)

type PostHandler struct {
	posts *service.PostService
}

func NewPostHandler(posts *service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type postIn struct {
	Title   string `json:"title"   binding:"omitempty,max=191"`
	Content string `json:"content" binding:"required"`
}

// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var in postIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	p, err := h.posts.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), in.Title, in.Content)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, p)
}

// GET /posts（公开）
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, gin.H{"list": posts, "total": len(posts)})
}

// PATCH /posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	var in postIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Fail(c, resp.CodeBadRequest, err.Error())
		return
	}
	p, err := h.posts.Update(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id"), in.Title, in.Content)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, p)
}

// DELETE /posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), mdw.IdentityFrom(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	resp.Data(c, gin.H{"id": c.Param("id")})
}

// POST /posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	like, err := h.posts.Like(c.Request.Context(), c.GetString(mdw.KeyUserID), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	resp.Created(c, like)
}
