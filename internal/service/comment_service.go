package service

import (
	"context"
	"strings"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
)

type CommentInput struct {
	Text string `form:"text" validate:"required"`
}

type CommentService interface {
	Add(ctx context.Context, postID, authorID uint64, in CommentInput) (*model.Comment, error)
}

type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository) CommentService {
	return &commentService{postRepo: postRepo, commentRepo: commentRepo}
}

// Add 帖子不存在返回 ErrNotFound，文本为空返回 ValidationError
func (s *commentService) Add(ctx context.Context, postID, authorID uint64, in CommentInput) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFound(err, "post %d", postID)
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(&in); err != nil {
		return nil, err
	}
	c := &model.Comment{PostID: postID, AuthorID: authorID, Text: in.Text}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
