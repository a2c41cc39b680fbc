package handler

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/response"
)

// ProfileFollow 关注作者；关注自己或重复关注不做任何事
func (h *Handler) ProfileFollow(c *gin.Context) {
	username := c.Param("username")
	author, err := h.authService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.relService.Follow(c.Request.Context(), auth.UserID(c), author.ID); err != nil && !errors.Is(err, service.ErrFollowSelf) {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(username))
}

// ProfileUnfollow 未关注时返回 404
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	username := c.Param("username")
	author, err := h.authService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.relService.Unfollow(c.Request.Context(), auth.UserID(c), author.ID); err != nil {
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(username))
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Produce json
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量，最大 100" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 404 {object} response.Response
// @Router /api/v1/profiles/{username}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
	user, err := h.authService.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.apiFail(c, err)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	pageSize = service.FollowingPageSize(pageSize)
	list, err := h.relService.ListFollowing(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

func profileURL(username string) string { return fmt.Sprintf("/profile/%s/", username) }
