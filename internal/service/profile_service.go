package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const avatarDir = "avatars"

type ProfileInput struct {
	About  string `form:"about" validate:"max=300"`
	Avatar io.Reader
}

type ProfileService interface {
	// GetForEdit 返回 owner 与其资料；editor 不是 owner 时返回 ErrPermissionDenied
	GetForEdit(ctx context.Context, username string, editorID uint64) (*model.User, *model.UserProfile, error)
	Update(ctx context.Context, username string, editorID uint64, in ProfileInput) (*model.UserProfile, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	images      ImageSaver
	avatarSize  uint
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, images ImageSaver, avatarSize uint) ProfileService {
	return &profileService{userRepo: userRepo, profileRepo: profileRepo, images: images, avatarSize: avatarSize}
}

func (s *profileService) GetForEdit(ctx context.Context, username string, editorID uint64) (*model.User, *model.UserProfile, error) {
	owner, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, notFound(err, "user %q", username)
	}
	if owner.ID != editorID {
		return owner, nil, ErrPermissionDenied
	}
	p, err := s.profileRepo.GetOrCreate(ctx, owner.ID)
	if err != nil {
		return owner, nil, err
	}
	return owner, p, nil
}

func (s *profileService) Update(ctx context.Context, username string, editorID uint64, in ProfileInput) (*model.UserProfile, error) {
	_, p, err := s.GetForEdit(ctx, username, editorID)
	if err != nil {
		return nil, err
	}
	in.About = strings.TrimSpace(in.About)
	if err := validateStruct(&in); err != nil {
		return p, err
	}

	oldAvatar := p.Avatar
	p.About = in.About
	if in.Avatar != nil {
		key, err := s.images.Save(ctx, avatarDir, in.Avatar, s.avatarSize)
		if err != nil {
			return p, imageError(err)
		}
		p.Avatar = key
	}
	if err := s.profileRepo.Update(ctx, p); err != nil {
		if p.Avatar != oldAvatar {
			s.discardAvatar(ctx, p.Avatar)
		}
		return nil, err
	}
	if oldAvatar != p.Avatar {
		s.discardAvatar(ctx, oldAvatar)
	}
	return p, nil
}

func (s *profileService) discardAvatar(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logger.Warn("delete avatar failed", zap.String("key", key), zap.Error(err))
	}
}
