package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// UserLoader 按 ID 读取用户，service.AuthService 实现该接口
type UserLoader interface {
	GetUser(ctx context.Context, id uint64) (*model.User, error)
}

// Authenticate 解析登录 cookie 并把用户放入上下文；无效 cookie 会被清除
func Authenticate(tokens *auth.TokenManager, users UserLoader, cookieName string, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			auth.ClearCookie(c, cookieName, secure)
			c.Next()
			return
		}
		id, _ := claims.UserID()
		u, err := users.GetUser(c.Request.Context(), id)
		if err != nil {
			logger.Debug("drop session for missing user", zap.Uint64("user_id", id), zap.Error(err))
			auth.ClearCookie(c, cookieName, secure)
			c.Next()
			return
		}
		auth.SetUser(c, u)
		c.Next()
	}
}

// LoginRequired 未登录时跳转登录页，登录后返回当前地址
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, auth.LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// AnonymousOnly 已登录用户返回 403
func AnonymousOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.CurrentUser(c) != nil {
			c.Data(http.StatusForbidden, "text/plain; charset=utf-8", []byte("403 Forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
