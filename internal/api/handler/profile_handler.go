package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/service"
)

func (h *Handler) renderProfileForm(c *gin.Context, owner *model.User, profile *model.UserProfile, about string, errs map[string]string) {
	h.html(c, http.StatusOK, "profile_edit.tmpl", gin.H{
		"Owner":   owner,
		"Profile": profile,
		"Form":    gin.H{"About": about},
		"Errors":  errs,
	})
}

func (h *Handler) EditProfileForm(c *gin.Context) {
	username := c.Param("username")
	owner, profile, err := h.profileService.GetForEdit(c.Request.Context(), username, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			h.redirect(c, profileURL(username))
			return
		}
		h.fail(c, err)
		return
	}
	h.renderProfileForm(c, owner, profile, profile.About, nil)
}

func (h *Handler) EditProfile(c *gin.Context) {
	username := c.Param("username")
	ctx := c.Request.Context()
	owner, profile, err := h.profileService.GetForEdit(ctx, username, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			h.redirect(c, profileURL(username))
			return
		}
		h.fail(c, err)
		return
	}

	var in service.ProfileInput
	_ = c.ShouldBind(&in)
	f, err := formFile(c, "avatar")
	if err != nil {
		h.renderProfileForm(c, owner, profile, in.About, map[string]string{"image": "Upload a valid image."})
		return
	}
	if f != nil {
		defer f.Close()
		in.Avatar = f
	}

	if _, err := h.profileService.Update(ctx, username, owner.ID, in); err != nil {
		if errs := validationErrors(err); errs != nil {
			h.renderProfileForm(c, owner, profile, in.About, errs)
			return
		}
		h.fail(c, err)
		return
	}
	h.redirect(c, profileURL(username))
}
