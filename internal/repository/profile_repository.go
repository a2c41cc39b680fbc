package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/yatube/internal/model"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.UserProfile, error)
	// GetOrCreate 不存在时以默认值创建
	GetOrCreate(ctx context.Context, userID uint64) (*model.UserProfile, error)
	Update(ctx context.Context, p *model.UserProfile) error
}

type profileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	var p model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID uint64) (*model.UserProfile, error) {
	p := &model.UserProfile{UserID: userID, About: model.DefaultAbout}
	err := r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(p).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, userID)
}

func (r *profileRepository) Update(ctx context.Context, p *model.UserProfile) error {
	return r.db.WithContext(ctx).Model(p).Select("avatar", "about").Updates(p).Error
}
