package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/service"
)

// AddComment 无论评论是否有效都跳回详情页；只读取 POST 表单，GET 不会写入
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	var in service.CommentInput
	if c.Request.Method == http.MethodPost {
		_ = c.ShouldBindWith(&in, binding.FormPost)
	}
	if _, err := h.commentService.Add(c.Request.Context(), id, auth.UserID(c), in); err != nil {
		if validationErrors(err) == nil {
			h.fail(c, err)
			return
		}
	}
	h.redirect(c, postURL(id))
}
