package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
)

func followRows(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Follow{}).Count(&n).Error)
	return n
}

func TestFollowIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seed.User("u")
	a := f.seed.User("a")

	require.NoError(t, f.rels.Follow(ctx, u.ID, a.ID))
	require.NoError(t, f.rels.Follow(ctx, u.ID, a.ID))
	assert.EqualValues(t, 1, followRows(t, f))
}

func TestFollowSelf(t *testing.T) {
	f := newFixture(t)
	u := f.seed.User("u")

	err := f.rels.Follow(context.Background(), u.ID, u.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)
	assert.Zero(t, followRows(t, f))
}

func TestUnfollow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seed.User("u")
	a := f.seed.User("a")

	assert.ErrorIs(t, f.rels.Unfollow(ctx, u.ID, a.ID), ErrNotFound)

	require.NoError(t, f.rels.Follow(ctx, u.ID, a.ID))
	require.NoError(t, f.rels.Unfollow(ctx, u.ID, a.ID))
	assert.Zero(t, followRows(t, f))
}

func TestListFollowing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seed.User("u")
	a := f.seed.User("a")
	b := f.seed.User("b")
	require.NoError(t, f.rels.Follow(ctx, u.ID, a.ID))
	require.NoError(t, f.rels.Follow(ctx, u.ID, b.ID))

	list, err := f.rels.ListFollowing(ctx, u.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	names := []string{list[0].Username, list[1].Username}
	assert.ElementsMatch(t, []string{"a", "b"}, names)

	second, err := f.rels.ListFollowing(ctx, u.ID, 2, 1)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestListFollowingCapsPageSize(t *testing.T) {
	f := newFixture(t)
	u := f.seed.User("u")
	for i := 0; i < MaxFollowingPageSize+5; i++ {
		f.seed.Follow(u, f.seed.User(fmt.Sprintf("author%03d", i)))
	}

	list, err := f.rels.ListFollowing(context.Background(), u.ID, 1, 100000)
	require.NoError(t, err)
	assert.Len(t, list, MaxFollowingPageSize)

	assert.Equal(t, 10, FollowingPageSize(0))
	assert.Equal(t, 25, FollowingPageSize(25))
	assert.Equal(t, MaxFollowingPageSize, FollowingPageSize(MaxFollowingPageSize+1))
}
