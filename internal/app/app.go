// Package app 按配置组装仓储、服务与路由
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/api/handler"
	"github.com/d60-Lab/yatube/internal/api/router"
	"github.com/d60-Lab/yatube/internal/auth"
	"github.com/d60-Lab/yatube/internal/pagecache"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/service"
	"github.com/d60-Lab/yatube/pkg/storage"
)

type App struct {
	Engine *gin.Engine

	Posts     service.PostService
	Comments  service.CommentService
	Relations service.RelationshipService
	Profiles  service.ProfileService
	Groups    service.GroupService
	Auth      service.AuthService
	Tokens    *auth.TokenManager
	// PageCache 未配置 Redis 时为 nil
	PageCache *pagecache.RedisStore
}

// Options 可选组件
type Options struct {
	Redis   *redis.Client
	Sentry  bool
	Tracing bool
}

func New(cfg *config.Config, db *gorm.DB, opts Options) (*App, error) {
	local, err := storage.NewLocalStorage(cfg.Media.Root)
	if err != nil {
		return nil, fmt.Errorf("media storage: %w", err)
	}
	images := storage.NewImageStore(local, cfg.Media.MaxUploadSize)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	a := &App{
		Posts:     service.NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo, profileRepo, images, cfg.Pagination.PageSize),
		Comments:  service.NewCommentService(postRepo, commentRepo),
		Relations: service.NewRelationshipService(followRepo),
		Profiles:  service.NewProfileService(userRepo, profileRepo, images, cfg.Media.AvatarSize),
		Groups:    service.NewGroupService(groupRepo),
		Auth:      service.NewAuthService(userRepo, profileRepo),
		Tokens:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.App.Name),
	}

	deps := router.Deps{
		Config: cfg,
		Handler: handler.New(a.Posts, a.Comments, a.Relations, a.Profiles, a.Groups, a.Auth, a.Tokens, handler.Options{
			CookieName:   cfg.Auth.CookieName,
			CookieSecure: cfg.Auth.CookieSecure,
		}),
		Tokens:  a.Tokens,
		Users:   a.Auth,
		Sentry:  opts.Sentry,
		Tracing: opts.Tracing,
	}
	if opts.Redis != nil {
		a.PageCache = pagecache.NewRedisStore(opts.Redis, cfg.Cache.Prefix)
		deps.PageCache = a.PageCache
	}

	if a.Engine, err = router.Setup(deps); err != nil {
		return nil, err
	}
	return a, nil
}
