package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/logger"
)

const postImageDir = "posts"

// ImageSaver 保存上传图片，*storage.ImageStore 实现该接口
type ImageSaver interface {
	Save(ctx context.Context, dir string, r io.Reader, thumb uint) (string, error)
	Delete(ctx context.Context, key string) error
}

// PostInput 创建/编辑帖子的表单数据
type PostInput struct {
	Text    string `form:"text" validate:"required"`
	GroupID *uint64
	// Image 为空表示未上传（编辑时保留原图）
	Image io.Reader
}

// PostDetail 帖子详情页数据
type PostDetail struct {
	Post        *model.Post
	Comments    []*model.Comment
	AuthorPosts int64
}

// ProfileFeed 作者主页数据
type ProfileFeed struct {
	Author     *model.User
	Profile    *model.UserProfile
	Page       pagination.Page[*model.Post]
	Following  bool
	Followers  int64
	Followings int64
}

type PostService interface {
	ListAll(ctx context.Context, page int) (pagination.Page[*model.Post], error)
	ListGroup(ctx context.Context, slug string, page int) (*model.Group, pagination.Page[*model.Post], error)
	ListProfile(ctx context.Context, username string, viewerID uint64, page int) (*ProfileFeed, error)
	ListFollowed(ctx context.Context, viewerID uint64, page int) (pagination.Page[*model.Post], error)
	Get(ctx context.Context, id uint64) (*PostDetail, error)
	GetForEdit(ctx context.Context, id, editorID uint64) (*model.Post, error)
	Create(ctx context.Context, authorID uint64, in PostInput) (*model.Post, error)
	Update(ctx context.Context, id, editorID uint64, in PostInput) (*model.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository
	profileRepo repository.ProfileRepository
	images      ImageSaver
	pageSize    int
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	followRepo repository.FollowRepository,
	profileRepo repository.ProfileRepository,
	images ImageSaver,
	pageSize int,
) PostService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &postService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		profileRepo: profileRepo,
		images:      images,
		pageSize:    pageSize,
	}
}

func (s *postService) page(ctx context.Context, f repository.PostFilter, number int) (pagination.Page[*model.Post], error) {
	total, err := s.postRepo.Count(ctx, f)
	if err != nil {
		return pagination.Page[*model.Post]{}, err
	}
	w := pagination.Paginate(total, s.pageSize, number)
	items, err := s.postRepo.List(ctx, f, w.Offset(), w.Limit())
	if err != nil {
		return pagination.Page[*model.Post]{}, err
	}
	return pagination.NewPage(w, items), nil
}

func (s *postService) ListAll(ctx context.Context, page int) (pagination.Page[*model.Post], error) {
	return s.page(ctx, repository.PostFilter{}, page)
}

func (s *postService) ListGroup(ctx context.Context, slug string, page int) (*model.Group, pagination.Page[*model.Post], error) {
	g, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, pagination.Page[*model.Post]{}, notFound(err, "group %q", slug)
	}
	p, err := s.page(ctx, repository.PostFilter{GroupID: g.ID}, page)
	return g, p, err
}

func (s *postService) ListProfile(ctx context.Context, username string, viewerID uint64, page int) (*ProfileFeed, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	feed := &ProfileFeed{Author: author}
	if feed.Page, err = s.page(ctx, repository.PostFilter{AuthorID: author.ID}, page); err != nil {
		return nil, err
	}
	if feed.Profile, err = s.profileRepo.GetOrCreate(ctx, author.ID); err != nil {
		return nil, err
	}
	// 匿名访问或查看自己的主页时 following 恒为 false
	if viewerID != 0 && viewerID != author.ID {
		if feed.Following, err = s.followRepo.Exists(ctx, viewerID, author.ID); err != nil {
			return nil, err
		}
	}
	if feed.Followers, err = s.followRepo.CountFollowers(ctx, author.ID); err != nil {
		return nil, err
	}
	if feed.Followings, err = s.followRepo.CountFollowings(ctx, author.ID); err != nil {
		return nil, err
	}
	return feed, nil
}

func (s *postService) ListFollowed(ctx context.Context, viewerID uint64, page int) (pagination.Page[*model.Post], error) {
	return s.page(ctx, repository.PostFilter{FollowerID: viewerID}, page)
}

func (s *postService) Get(ctx context.Context, id uint64) (*PostDetail, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post %d", id)
	}
	d := &PostDetail{Post: p}
	if d.Comments, err = s.commentRepo.ListByPost(ctx, id); err != nil {
		return nil, err
	}
	if d.AuthorPosts, err = s.postRepo.Count(ctx, repository.PostFilter{AuthorID: p.AuthorID}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *postService) GetForEdit(ctx context.Context, id, editorID uint64) (*model.Post, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "post %d", id)
	}
	if p.AuthorID != editorID {
		return p, ErrPermissionDenied
	}
	return p, nil
}

func (s *postService) Create(ctx context.Context, authorID uint64, in PostInput) (*model.Post, error) {
	groupID, err := s.clean(ctx, &in)
	if err != nil {
		return nil, err
	}
	p := &model.Post{Text: in.Text, AuthorID: authorID, GroupID: groupID}
	if in.Image != nil {
		if p.Image, err = s.saveImage(ctx, in.Image); err != nil {
			return nil, err
		}
	}
	if err := s.postRepo.Create(ctx, p); err != nil {
		s.discardImage(ctx, p.Image)
		return nil, err
	}
	return s.postRepo.GetByID(ctx, p.ID)
}

// Update 仅作者可编辑；未上传新图时保留原图
func (s *postService) Update(ctx context.Context, id, editorID uint64, in PostInput) (*model.Post, error) {
	p, err := s.GetForEdit(ctx, id, editorID)
	if err != nil {
		return p, err
	}
	groupID, err := s.clean(ctx, &in)
	if err != nil {
		return p, err
	}
	oldImage := p.Image
	p.Text = in.Text
	p.GroupID = groupID
	if in.Image != nil {
		if p.Image, err = s.saveImage(ctx, in.Image); err != nil {
			return p, err
		}
	}
	if err := s.postRepo.Update(ctx, p); err != nil {
		if p.Image != oldImage {
			s.discardImage(ctx, p.Image)
		}
		return nil, err
	}
	if p.Image != oldImage {
		s.discardImage(ctx, oldImage)
	}
	return s.postRepo.GetByID(ctx, id)
}

// clean 校验文本与分组，返回规范化后的 group_id（0 视为未选择）
func (s *postService) clean(ctx context.Context, in *PostInput) (*uint64, error) {
	in.Text = strings.TrimSpace(in.Text)
	ve := &ValidationError{}
	if err := validateStruct(in); err != nil {
		fv, ok := AsValidation(err)
		if !ok {
			return nil, err
		}
		ve = fv
	}
	if in.GroupID == nil || *in.GroupID == 0 {
		return nil, ve.orNil()
	}
	if _, err := s.groupRepo.GetByID(ctx, *in.GroupID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		ve.Add("group", "Select a valid choice. That choice is not one of the available choices.")
	}
	return in.GroupID, ve.orNil()
}

func (s *postService) saveImage(ctx context.Context, r io.Reader) (string, error) {
	key, err := s.images.Save(ctx, postImageDir, r, 0)
	if err != nil {
		return "", imageError(err)
	}
	return key, nil
}

func (s *postService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.images.Delete(ctx, key); err != nil {
		logger.Warn("delete post image failed", zap.String("key", key), zap.Error(err))
	}
}

// notFound 将仓储层的 ErrNotFound 包装为服务层错误
func notFound(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return err
}
