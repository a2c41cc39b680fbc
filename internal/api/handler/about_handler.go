package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AboutAuthor(c *gin.Context) {
	h.html(c, http.StatusOK, "about_author.tmpl", nil)
}

func (h *Handler) AboutTech(c *gin.Context) {
	h.html(c, http.StatusOK, "about_tech.tmpl", nil)
}

// NoRoute 自定义 404 页面
func (h *Handler) NoRoute(c *gin.Context) {
	h.notFound(c)
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
