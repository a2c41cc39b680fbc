package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// apiFail JSON 接口的错误映射
func (h *Handler) apiFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, "authentication required")
	default:
		response.InternalError(c, err)
	}
}

// APIListPosts 全站帖子
// @Summary 全站帖子列表
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=pagination.Page[model.Post]}
// @Router /api/v1/posts [get]
func (h *Handler) APIListPosts(c *gin.Context) {
	page, err := h.postService.ListAll(c.Request.Context(), pageParam(c))
	if err != nil {
		h.apiFail(c, err)
		return
	}
	response.Success(c, page)
}

// APIGroupPosts 分组帖子
// @Summary 分组帖子列表
// @Tags 帖子
// @Produce json
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/groups/{slug}/posts [get]
func (h *Handler) APIGroupPosts(c *gin.Context) {
	group, page, err := h.postService.ListGroup(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		h.apiFail(c, err)
		return
	}
	response.Success(c, gin.H{"group": group, "page": page})
}

// APIListGroups 全部分组
// @Summary 分组列表
// @Tags 分组
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Group}
// @Router /api/v1/groups [get]
func (h *Handler) APIListGroups(c *gin.Context) {
	groups, err := h.groupService.List(c.Request.Context())
	if err != nil {
		h.apiFail(c, err)
		return
	}
	response.Success(c, groups)
}

// APIProfilePosts 作者帖子
// @Summary 作者主页
// @Tags 帖子
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/posts [get]
func (h *Handler) APIProfilePosts(c *gin.Context) {
	feed, err := h.postService.ListProfile(c.Request.Context(), c.Param("username"), auth.UserID(c), pageParam(c))
	if err != nil {
		h.apiFail(c, err)
		return
	}
	response.Success(c, gin.H{
		"author":     feed.Author,
		"profile":    feed.Profile,
		"following":  feed.Following,
		"followers":  feed.Followers,
		"followings": feed.Followings,
		"page":       feed.Page,
	})
}

// APIFollowPosts 关注的作者的帖子
// @Summary 关注流
// @Tags 帖子
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=pagination.Page[model.Post]}
// @Failure 401 {object} response.Response
// @Router /api/v1/follow/posts [get]
func (h *Handler) APIFollowPosts(c *gin.Context) {
	id := auth.UserID(c)
	if id == 0 {
		h.apiFail(c, service.ErrUnauthenticated)
		return
	}
	page, err := h.postService.ListFollowed(c.Request.Context(), id, pageParam(c))
	if err != nil {
		h.apiFail(c, err)
		return
	}
	response.Success(c, page)
}
