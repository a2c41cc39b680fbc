package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
)

// postForm 模板回填用的表单值
type postForm struct {
	Text    string `form:"text"`
	Group   string `form:"group"`
	GroupID *uint64
}

func (h *Handler) Index(c *gin.Context) {
	page, err := h.postService.ListAll(c.Request.Context(), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "index.tmpl", gin.H{"Page": page})
}

func (h *Handler) GroupPosts(c *gin.Context) {
	group, page, err := h.postService.ListGroup(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "group_list.tmpl", gin.H{"Group": group, "Page": page})
}

func (h *Handler) Profile(c *gin.Context) {
	feed, err := h.postService.ListProfile(c.Request.Context(), c.Param("username"), auth.UserID(c), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "profile.tmpl", gin.H{"Feed": feed})
}

func (h *Handler) PostDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return
	}
	detail, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "post_detail.tmpl", gin.H{"Detail": detail})
}

func (h *Handler) FollowIndex(c *gin.Context) {
	page, err := h.postService.ListFollowed(c.Request.Context(), auth.UserID(c), pageParam(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "follow.tmpl", gin.H{"Page": page})
}

// renderPostForm 新建与编辑共用一个模板
func (h *Handler) renderPostForm(c *gin.Context, post *model.Post, form postForm, errs map[string]string) {
	groups, err := h.groupService.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.html(c, http.StatusOK, "create_post.tmpl", gin.H{
		"IsEdit": post != nil,
		"Post":   post,
		"Form":   form,
		"Groups": groups,
		"Errors": errs,
	})
}

func (h *Handler) CreatePostForm(c *gin.Context) {
	h.renderPostForm(c, nil, postForm{}, nil)
}

func (h *Handler) CreatePost(c *gin.Context) {
	form, in, closer, errs := h.bindPost(c)
	if closer != nil {
		defer closer.Close()
	}
	if errs != nil {
		h.renderPostForm(c, nil, form, errs)
		return
	}
	user := auth.CurrentUser(c)
	if _, err := h.postService.Create(c.Request.Context(), user.ID, in); err != nil {
		if errs := validationErrors(err); errs != nil {
			h.renderPostForm(c, nil, form, errs)
			return
		}
		h.fail(c, err)
		return
	}
	h.redirect(c, fmt.Sprintf("/profile/%s/", user.Username))
}

func (h *Handler) EditPostForm(c *gin.Context) {
	post, ok := h.editablePost(c)
	if !ok {
		return
	}
	form := postForm{Text: post.Text, GroupID: post.GroupID}
	h.renderPostForm(c, post, form, nil)
}

func (h *Handler) EditPost(c *gin.Context) {
	post, ok := h.editablePost(c)
	if !ok {
		return
	}
	form, in, closer, errs := h.bindPost(c)
	if closer != nil {
		defer closer.Close()
	}
	if errs != nil {
		h.renderPostForm(c, post, form, errs)
		return
	}
	if _, err := h.postService.Update(c.Request.Context(), post.ID, auth.UserID(c), in); err != nil {
		switch {
		case errors.Is(err, service.ErrPermissionDenied):
			h.redirect(c, postURL(post.ID))
		case validationErrors(err) != nil:
			h.renderPostForm(c, post, form, validationErrors(err))
		default:
			h.fail(c, err)
		}
		return
	}
	h.redirect(c, postURL(post.ID))
}

// editablePost 非作者跳转到详情页
func (h *Handler) editablePost(c *gin.Context) (*model.Post, bool) {
	id, ok := idParam(c, "id")
	if !ok {
		h.notFound(c)
		return nil, false
	}
	post, err := h.postService.GetForEdit(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			h.redirect(c, postURL(id))
		} else {
			h.fail(c, err)
		}
		return nil, false
	}
	return post, true
}

// bindPost 解析表单与上传文件；返回的 closer 由调用方关闭
func (h *Handler) bindPost(c *gin.Context) (postForm, service.PostInput, io.Closer, map[string]string) {
	var form postForm
	_ = c.ShouldBind(&form)
	in := service.PostInput{Text: form.Text}

	if g := strings.TrimSpace(form.Group); g != "" {
		id, err := strconv.ParseUint(g, 10, 64)
		if err != nil {
			return form, in, nil, map[string]string{"group": "Select a valid choice."}
		}
		form.GroupID = &id
		in.GroupID = &id
	}

	f, err := formFile(c, "image")
	if err != nil {
		return form, in, nil, map[string]string{"image": "Upload a valid image."}
	}
	if f != nil {
		in.Image = f
		return form, in, f, nil
	}
	return form, in, nil, nil
}

func postURL(id uint64) string { return fmt.Sprintf("/posts/%d/", id) }
