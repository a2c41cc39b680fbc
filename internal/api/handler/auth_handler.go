package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/logger"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (h *Handler) SignUpForm(c *gin.Context) {
	h.html(c, http.StatusOK, "signup.tmpl", gin.H{"Form": service.SignUpInput{}})
}

func (h *Handler) SignUp(c *gin.Context) {
	var in service.SignUpInput
	_ = c.ShouldBind(&in)
	u, err := h.authService.SignUp(c.Request.Context(), in)
	if err != nil {
		if errs := validationErrors(err); errs != nil {
			in.Password, in.Password2 = "", ""
			h.html(c, http.StatusOK, "signup.tmpl", gin.H{"Form": in, "Errors": errs})
			return
		}
		h.fail(c, err)
		return
	}
	logger.Info("user signed up", zap.Uint64("user_id", u.ID), zap.String("username", u.Username))
	h.redirect(c, "/")
}

func (h *Handler) LoginForm(c *gin.Context) {
	h.html(c, http.StatusOK, "login.tmpl", gin.H{"Next": c.Query("next")})
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	u, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.html(c, http.StatusOK, "login.tmpl", gin.H{
				"Next":     form.Next,
				"Username": form.Username,
				"Error":    "Please enter a correct username and password.",
			})
			return
		}
		h.fail(c, err)
		return
	}
	token, err := h.tokens.Issue(u)
	if err != nil {
		h.fail(c, err)
		return
	}
	auth.SetCookie(c, h.opts.CookieName, token, int(h.tokens.TTL().Seconds()), h.opts.CookieSecure)
	h.redirect(c, auth.SafeNext(form.Next, "/"))
}

func (h *Handler) Logout(c *gin.Context) {
	auth.ClearCookie(c, h.opts.CookieName, h.opts.CookieSecure)
	auth.SetUser(c, nil)
	h.html(c, http.StatusOK, "logged_out.tmpl", nil)
}
