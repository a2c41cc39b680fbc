// Package testutil 测试用的数据库与数据构造工具
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/pkg/database"
)

// NewDB 为每个测试创建独立的内存 sqlite（开启外键）并完成迁移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	sqlDB, _ := db.DB()
	// 单连接避免 sqlite 共享缓存下的表锁冲突
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// Seed 直接写库构造数据，绕过服务层校验
type Seed struct {
	DB *gorm.DB
	t  testing.TB
	// now 单调递增，保证 created_at 有序
	now time.Time
}

func NewSeed(t testing.TB, db *gorm.DB) *Seed {
	return &Seed{DB: db, t: t, now: time.Now().Add(-time.Hour)}
}

func (s *Seed) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *Seed) User(username string) *model.User {
	s.t.Helper()
	u := &model.User{Username: username, Password: "x"}
	if err := s.DB.Create(u).Error; err != nil {
		s.t.Fatalf("seed user: %v", err)
	}
	return u
}

func (s *Seed) Group(slug string) *model.Group {
	s.t.Helper()
	g := &model.Group{Title: "group " + slug, Slug: slug, Description: "about " + slug}
	if err := s.DB.Create(g).Error; err != nil {
		s.t.Fatalf("seed group: %v", err)
	}
	return g
}

func (s *Seed) Post(author *model.User, group *model.Group, text string) *model.Post {
	s.t.Helper()
	p := &model.Post{Text: text, AuthorID: author.ID, CreatedAt: s.tick()}
	if group != nil {
		p.GroupID = &group.ID
	}
	if err := s.DB.Omit("Author", "Group").Create(p).Error; err != nil {
		s.t.Fatalf("seed post: %v", err)
	}
	return p
}

func (s *Seed) Follow(user, author *model.User) {
	s.t.Helper()
	if err := s.DB.Omit("User", "Author").Create(&model.Follow{UserID: user.ID, AuthorID: author.ID}).Error; err != nil {
		s.t.Fatalf("seed follow: %v", err)
	}
}
