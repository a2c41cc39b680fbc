package pagecache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/pkg/logger"
)

// KeyFunc 计算缓存 key，返回空串表示不缓存
type KeyFunc func(c *gin.Context) string

// ByURI 以请求 URI 为 key
func ByURI(c *gin.Context) string { return c.Request.URL.RequestURI() }

type recorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *recorder) WriteString(s string) (int, error) {
	r.body.WriteString(s)
	return r.ResponseWriter.WriteString(s)
}

// Middleware 缓存 GET 请求的 200 响应 ttl 时间。
// store 为 nil 时直接放行。
func Middleware(store Store, ttl time.Duration, keyFn KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}
		key := keyFn(c)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		e, err := store.Get(ctx, key)
		if err != nil {
			logger.Warn("page cache get failed", zap.String("key", key), zap.Error(err))
		}
		if e != nil {
			c.Header("X-Cache", "HIT")
			c.Data(e.Status, e.ContentType, e.Body)
			c.Abort()
			return
		}

		rec := &recorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Header("X-Cache", "MISS")
		c.Next()
		c.Writer = rec.ResponseWriter

		if rec.Status() != http.StatusOK || c.IsAborted() {
			return
		}
		e = &Entry{
			Status:      rec.Status(),
			ContentType: rec.Header().Get("Content-Type"),
			Body:        rec.body.Bytes(),
		}
		if err := store.Set(ctx, key, e, ttl); err != nil {
			logger.Warn("page cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
}
