package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/internal/testutil"
	"github.com/d60-Lab/yatube/pkg/storage"
)

type fixture struct {
	db       *gorm.DB
	seed     *testutil.Seed
	store    *storage.LocalStorage
	posts    PostService
	comments CommentService
	rels     RelationshipService
	profiles ProfileService
	groups   GroupService
	auth     AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	images := storage.NewImageStore(store, 1<<20)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	auth := NewAuthService(userRepo, profileRepo)
	auth.(*authService).cost = bcrypt.MinCost

	return &fixture{
		db:       db,
		seed:     testutil.NewSeed(t, db),
		store:    store,
		posts:    NewPostService(postRepo, groupRepo, userRepo, commentRepo, followRepo, profileRepo, images, 10),
		comments: NewCommentService(postRepo, commentRepo),
		rels:     NewRelationshipService(followRepo),
		profiles: NewProfileService(userRepo, profileRepo, images, 50),
		groups:   NewGroupService(groupRepo),
		auth:     auth,
	}
}

// pngBytes 生成 w x h 的纯色 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
