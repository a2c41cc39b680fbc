package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

// RelationshipService 关系链服务
type RelationshipService interface {
	Follow(ctx context.Context, fromUserID, toUserID uint64) error
	Unfollow(ctx context.Context, fromUserID, toUserID uint64) error
	ListFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*model.User, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
}

func NewRelationshipService(followRepo repository.FollowRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo}
}

// Follow 关注自己返回 ErrFollowSelf；已关注时为空操作
func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID uint64) error {
	if fromUserID == toUserID {
		return ErrFollowSelf
	}
	exists, err := s.followRepo.Exists(ctx, fromUserID, toUserID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := s.followRepo.Create(ctx, fromUserID, toUserID); err != nil {
		return err
	}
	logger.Debug("follow created", zap.Uint64("user", fromUserID), zap.Uint64("author", toUserID))
	return nil
}

// Unfollow 关系不存在返回 ErrNotFound
func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID uint64) error {
	if err := s.followRepo.Delete(ctx, fromUserID, toUserID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return fmt.Errorf("follow %d -> %d: %w", fromUserID, toUserID, ErrNotFound)
		}
		return err
	}
	return nil
}

// MaxFollowingPageSize 关注列表单页上限
const MaxFollowingPageSize = 100

// FollowingPageSize 非法值取 10，超过上限取上限
func FollowingPageSize(n int) int {
	if n < 1 {
		return 10
	}
	if n > MaxFollowingPageSize {
		return MaxFollowingPageSize
	}
	return n
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID uint64, page, pageSize int) ([]*model.User, error) {
	if page < 1 {
		page = 1
	}
	pageSize = FollowingPageSize(pageSize)
	offset := (page - 1) * pageSize
	items, err := s.followRepo.ListFollowings(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*model.User, len(items))
	for i, it := range items {
		author := it.Author
		res[i] = &author
	}
	return res, nil
}
