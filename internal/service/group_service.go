package service

import (
	"context"
	"errors"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type GroupInput struct {
	Title       string `form:"title" validate:"required,max=200"`
	Slug        string `form:"slug" validate:"required,max=50,slug"`
	Description string `form:"description" validate:"required"`
}

type GroupService interface {
	Create(ctx context.Context, in GroupInput) (*model.Group, error)
	List(ctx context.Context) ([]*model.Group, error)
}

type groupService struct {
	groupRepo repository.GroupRepository
}

func NewGroupService(groupRepo repository.GroupRepository) GroupService {
	return &groupService{groupRepo: groupRepo}
}

// Create slug 重复时返回 ValidationError
func (s *groupService) Create(ctx context.Context, in GroupInput) (*model.Group, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Description = strings.TrimSpace(in.Description)
	if err := validateStruct(&in); err != nil {
		return nil, err
	}

	taken := &ValidationError{}
	taken.Add("slug", "Group with this slug already exists.")

	exists, err := s.groupRepo.ExistsBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, taken
	}
	g := &model.Group{Title: in.Title, Slug: in.Slug, Description: in.Description}
	if err := s.groupRepo.Create(ctx, g); err != nil {
		// 并发创建时由唯一索引兜底
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, taken
		}
		return nil, err
	}
	return g, nil
}

func (s *groupService) List(ctx context.Context) ([]*model.Group, error) {
	return s.groupRepo.List(ctx)
}
