package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/yatube/internal/model"
)

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID uint64) error
	Delete(ctx context.Context, userID, authorID uint64) error
	Exists(ctx context.Context, userID, authorID uint64) (bool, error)
	Count(ctx context.Context, userID, authorID uint64) (int64, error)
	CountFollowers(ctx context.Context, authorID uint64) (int64, error)
	CountFollowings(ctx context.Context, userID uint64) (int64, error)
	ListFollowings(ctx context.Context, userID uint64, offset, limit int) ([]*model.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository { return &followRepository{db: db} }

func (r *followRepository) Create(ctx context.Context, userID, authorID uint64) error {
	f := &model.Follow{UserID: userID, AuthorID: authorID}
	// 幂等：重复关注不报错（idx_follow_pair 兜底并发写入）
	return r.db.WithContext(ctx).Omit("User", "Author").Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

// Delete 关系不存在时返回 ErrFollowNotFound
func (r *followRepository) Delete(ctx context.Context, userID, authorID uint64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint64) (bool, error) {
	cnt, err := r.Count(ctx, userID, authorID)
	return cnt > 0, err
}

func (r *followRepository) Count(ctx context.Context, userID, authorID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&cnt).Error
	return cnt, err
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

func (r *followRepository) CountFollowings(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, err
}

func (r *followRepository) ListFollowings(ctx context.Context, userID uint64, offset, limit int) ([]*model.Follow, error) {
	var res []*model.Follow
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&res).Error
	return res, err
}
