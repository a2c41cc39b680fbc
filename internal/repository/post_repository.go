package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/model"
)

// PostFilter 列表查询条件，零值字段不参与过滤
type PostFilter struct {
	AuthorID uint64
	GroupID  uint64
	// FollowerID 仅返回该用户所关注作者的帖子
	FollowerID uint64
}

func (f PostFilter) apply(db *gorm.DB) *gorm.DB {
	if f.AuthorID != 0 {
		db = db.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.GroupID != 0 {
		db = db.Where("posts.group_id = ?", f.GroupID)
	}
	if f.FollowerID != 0 {
		db = db.Where("posts.author_id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).Model(&model.Follow{}).Select("author_id").Where("user_id = ?", f.FollowerID))
	}
	return db
}

type PostRepository interface {
	Create(ctx context.Context, p *model.Post) error
	Update(ctx context.Context, p *model.Post) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	Count(ctx context.Context, f PostFilter) (int64, error)
	List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(p).Error
}

// Update 仅更新可编辑字段
func (r *postRepository) Update(ctx context.Context, p *model.Post) error {
	return r.db.WithContext(ctx).
		Model(p).
		Select("text", "group_id", "image", "updated_at").
		Updates(p).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&model.Post{}, id).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *postRepository) Count(ctx context.Context, f PostFilter) (int64, error) {
	var cnt int64
	err := f.apply(r.db.WithContext(ctx).Model(&model.Post{})).Count(&cnt).Error
	return cnt, err
}

// List 按创建时间倒序分页
func (r *postRepository) List(ctx context.Context, f PostFilter, offset, limit int) ([]*model.Post, error) {
	var res []*model.Post
	err := f.apply(r.db.WithContext(ctx).Model(&model.Post{})).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
