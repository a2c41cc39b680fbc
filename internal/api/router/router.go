package router

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/yatube/config"
	_ "github.com/d60-Lab/yatube/docs"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/middleware"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/pagecache"
	"github.com/d60-Lab/yatube/web"
)

// Deps 组装路由所需的依赖
type Deps struct {
	Config  *config.Config
	Handler *handler.Handler
	Tokens  *auth.TokenManager
	Users   middleware.UserLoader
	// PageCache 为 nil 时不缓存首页
	PageCache pagecache.Store
	// Sentry / Tracing 为 true 时挂载对应中间件
	Sentry  bool
	Tracing bool
}

func Setup(d Deps) (*gin.Engine, error) {
	cfg := d.Config
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	renderer, err := web.NewRenderer(cfg.Media.URLPrefix)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	h := d.Handler
	r := gin.New()
	r.HTMLRender = renderer
	r.MaxMultipartMemory = cfg.Media.MaxUploadSize

	r.Use(gin.CustomRecovery(h.Recover))
	if d.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if d.Tracing {
		r.Use(otelgin.Middleware(cfg.App.Name))
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/media/", "/static/img/"})),
		middleware.Authenticate(d.Tokens, d.Users, cfg.Auth.CookieName, cfg.Auth.CookieSecure),
	)

	r.StaticFS("/static", http.FS(web.Static()))
	r.Static(cfg.Media.URLPrefix, cfg.Media.Root)
	r.GET("/healthz", h.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.NoRoute(h.NoRoute)

	r.GET("/", pagecache.Middleware(d.PageCache, cfg.Cache.IndexTTL, viewerKey), h.Index)
	r.GET("/group/:slug/", h.GroupPosts)
	r.GET("/profile/:username/", h.Profile)
	r.GET("/posts/:id/", h.PostDetail)
	r.GET("/about/author/", h.AboutAuthor)
	r.GET("/about/tech/", h.AboutTech)

	authed := r.Group("/", middleware.LoginRequired())
	{
		authed.GET("/create/", h.CreatePostForm)
		authed.POST("/create/", h.CreatePost)
		authed.GET("/posts/:id/edit/", h.EditPostForm)
		authed.POST("/posts/:id/edit/", h.EditPost)
		authed.GET("/posts/:id/comment/", h.AddComment)
		authed.POST("/posts/:id/comment/", h.AddComment)
		authed.GET("/follow/", h.FollowIndex)
		authed.GET("/profile/:username/follow/", h.ProfileFollow)
		authed.POST("/profile/:username/follow/", h.ProfileFollow)
		authed.GET("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.POST("/profile/:username/unfollow/", h.ProfileUnfollow)
		authed.GET("/profile/:username/edit/", h.EditProfileForm)
		authed.POST("/profile/:username/edit/", h.EditProfile)
	}

	limiter := middleware.NewIPRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginBurst)
	account := r.Group("/auth", middleware.RateLimit(limiter))
	{
		account.GET("/signup/", middleware.AnonymousOnly(), h.SignUpForm)
		account.POST("/signup/", middleware.AnonymousOnly(), h.SignUp)
		account.GET("/login/", h.LoginForm)
		account.POST("/login/", h.Login)
		account.GET("/logout/", h.Logout)
		account.POST("/logout/", h.Logout)
	}

	api := r.Group("/api/v1", corsMiddleware(cfg.Server.CORSOrigins))
	{
		api.GET("/posts", h.APIListPosts)
		api.GET("/groups", h.APIListGroups)
		api.GET("/groups/:slug/posts", h.APIGroupPosts)
		api.GET("/profiles/:username/posts", h.APIProfilePosts)
		api.GET("/profiles/:username/following", h.ListFollowing)
		api.GET("/follow/posts", h.APIFollowPosts)
	}
	return r, nil
}

// viewerKey 首页缓存按访问者区分，页面头部包含登录用户信息
func viewerKey(c *gin.Context) string {
	if id := auth.UserID(c); id != 0 {
		return fmt.Sprintf("u%d:%s", id, c.Request.URL.RequestURI())
	}
	return "anon:" + c.Request.URL.RequestURI()
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cc := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cors.New(cc)
}
