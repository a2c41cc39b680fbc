package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// Options 处理器需要的配置项
type Options struct {
	CookieName   string
	CookieSecure bool
}

type Handler struct {
	postService    service.PostService
	commentService service.CommentService
	relService     service.RelationshipService
	profileService service.ProfileService
	groupService   service.GroupService
	authService    service.AuthService
	tokens         *auth.TokenManager
	opts           Options
}

func New(
	postService service.PostService,
	commentService service.CommentService,
	relService service.RelationshipService,
	profileService service.ProfileService,
	groupService service.GroupService,
	authService service.AuthService,
	tokens *auth.TokenManager,
	opts Options,
) *Handler {
	return &Handler{
		postService:    postService,
		commentService: commentService,
		relService:     relService,
		profileService: profileService,
		groupService:   groupService,
		authService:    authService,
		tokens:         tokens,
		opts:           opts,
	}
}

// html 渲染页面，附带当前用户等公共数据
func (h *Handler) html(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = auth.CurrentUser(c)
	data["Year"] = time.Now().Year()
	c.HTML(status, name, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.html(c, http.StatusNotFound, "404.tmpl", gin.H{"Path": c.Request.URL.Path})
}

// fail 按错误类型输出 404 / 登录跳转 / 500
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.notFound(c)
	case errors.Is(err, service.ErrUnauthenticated):
		c.Redirect(http.StatusFound, auth.LoginURL(c.Request.URL.RequestURI()))
	default:
		logger.Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err))
		_ = c.Error(err)
		h.html(c, http.StatusInternalServerError, "500.tmpl", nil)
	}
}

// Recover panic 后渲染 500 页面
func (h *Handler) Recover(c *gin.Context, recovered any) {
	logger.Error("panic recovered",
		zap.String("path", c.Request.URL.Path),
		zap.Any("panic", recovered))
	h.html(c, http.StatusInternalServerError, "500.tmpl", nil)
	c.Abort()
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func pageParam(c *gin.Context) int {
	return pagination.ParseNumber(c.Query("page"))
}

// idParam 非法 id 视为不存在
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// formFile 未上传时返回 nil
func formFile(c *gin.Context, field string) (multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	if fh.Size == 0 {
		return nil, nil
	}
	return fh.Open()
}

// validationErrors 取出字段错误，非校验错误返回 nil
func validationErrors(err error) map[string]string {
	if ve, ok := service.AsValidation(err); ok {
		return ve.Fields
	}
	return nil
}
