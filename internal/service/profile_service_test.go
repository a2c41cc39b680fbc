package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/storage"
)

func TestProfileEditOwnerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")
	bob := f.seed.User("bob")

	owner, _, err := f.profiles.GetForEdit(ctx, "alice", bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	require.NotNil(t, owner)
	assert.Equal(t, alice.ID, owner.ID)

	_, err = f.profiles.Update(ctx, "alice", bob.ID, ProfileInput{About: "hacked"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, _, err = f.profiles.GetForEdit(ctx, "ghost", alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")

	p, err := f.profiles.Update(ctx, "alice", alice.ID, ProfileInput{
		About:  "writer",
		Avatar: bytes.NewReader(pngBytes(t, 120, 80)),
	})
	require.NoError(t, err)
	assert.Equal(t, "writer", p.About)
	require.True(t, strings.HasPrefix(p.Avatar, "avatars/"))

	// 头像被缩放到 50x50 以内
	rc, err := f.store.Read(ctx, p.Avatar)
	require.NoError(t, err)
	defer rc.Close()
	cfg, _, err := image.DecodeConfig(rc)
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 50)
	assert.LessOrEqual(t, cfg.Height, 50)

	_, err = f.profiles.Update(ctx, "alice", alice.ID, ProfileInput{About: strings.Repeat("x", 301)})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "about")

	// 不上传头像时保留原头像
	again, err := f.profiles.Update(ctx, "alice", alice.ID, ProfileInput{About: "still writing"})
	require.NoError(t, err)
	assert.Equal(t, p.Avatar, again.Avatar)
}

type brokenProfileRepo struct {
	repository.ProfileRepository
}

func (brokenProfileRepo) Update(context.Context, *model.UserProfile) error {
	return errors.New("disk full")
}

func TestProfileUpdateFailureDiscardsNewAvatar(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")

	profiles := NewProfileService(
		repository.NewUserRepository(f.db),
		brokenProfileRepo{repository.NewProfileRepository(f.db)},
		storage.NewImageStore(f.store, 1<<20),
		50,
	)
	_, err := profiles.Update(ctx, "alice", alice.ID, ProfileInput{
		About:  "writer",
		Avatar: bytes.NewReader(pngBytes(t, 10, 10)),
	})
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(f.store.BasePath(), "avatars"))
	if !os.IsNotExist(err) {
		require.NoError(t, err)
	}
	assert.Empty(t, entries)
}
