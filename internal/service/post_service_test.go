package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAllPaginates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seed.User("author")
	for i := 0; i < 14; i++ {
		f.seed.Post(author, nil, fmt.Sprintf("post %d", i))
	}

	first, err := f.posts.ListAll(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 2, first.NumPages)
	assert.True(t, first.HasNext())
	assert.Equal(t, "post 13", first.Items[0].Text)

	second, err := f.posts.ListAll(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 4)
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())
	assert.Equal(t, "post 0", second.Items[3].Text)

	// 越界页码落在最后一页
	clamped, err := f.posts.ListAll(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Number)
	assert.Len(t, clamped.Items, 4)

	for _, n := range []int{0, -3} {
		last, err := f.posts.ListAll(ctx, n)
		require.NoError(t, err)
		assert.Equal(t, 2, last.Number, "page %d", n)
		assert.Len(t, last.Items, 4, "page %d", n)
	}
}

func TestListAllEmpty(t *testing.T) {
	f := newFixture(t)
	page, err := f.posts.ListAll(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.NumPages)
}

func TestListGroup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seed.User("author")
	cats := f.seed.Group("cats")
	f.seed.Post(author, cats, "in group")
	f.seed.Post(author, nil, "no group")

	g, page, err := f.posts.ListGroup(ctx, "cats", 1)
	require.NoError(t, err)
	assert.Equal(t, cats.ID, g.ID)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "in group", page.Items[0].Text)
	require.NotNil(t, page.Items[0].Group)
	assert.Equal(t, "cats", page.Items[0].Group.Slug)

	_, _, err = f.posts.ListGroup(ctx, "dogs", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProfileFollowingFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seed.User("author")
	reader := f.seed.User("reader")
	f.seed.Post(author, nil, "hello")

	anon, err := f.posts.ListProfile(ctx, "author", 0, 1)
	require.NoError(t, err)
	assert.False(t, anon.Following)
	assert.EqualValues(t, 1, anon.Page.Total)
	require.NotNil(t, anon.Profile)

	before, err := f.posts.ListProfile(ctx, "author", reader.ID, 1)
	require.NoError(t, err)
	assert.False(t, before.Following)

	require.NoError(t, f.rels.Follow(ctx, reader.ID, author.ID))

	after, err := f.posts.ListProfile(ctx, "author", reader.ID, 1)
	require.NoError(t, err)
	assert.True(t, after.Following)
	assert.EqualValues(t, 1, after.Followers)

	self, err := f.posts.ListProfile(ctx, "author", author.ID, 1)
	require.NoError(t, err)
	assert.False(t, self.Following)

	_, err = f.posts.ListProfile(ctx, "ghost", 0, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollowFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.seed.User("U")
	a := f.seed.User("A")
	b := f.seed.User("B")

	empty, err := f.posts.ListFollowed(ctx, u.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	require.NoError(t, f.rels.Follow(ctx, u.ID, a.ID))
	f.seed.Post(a, nil, "from A")
	f.seed.Post(b, nil, "from B")

	feed, err := f.posts.ListFollowed(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "from A", feed.Items[0].Text)

	// 未关注任何人的用户看不到该帖子
	other, err := f.posts.ListFollowed(ctx, b.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

func TestCreateThenEdit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")

	p, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Author.Username)

	page, err := f.posts.ListAll(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "hi", page.Items[0].Text)

	edited, err := f.posts.Update(ctx, p.ID, alice.ID, PostInput{Text: "hi2"})
	require.NoError(t, err)
	assert.Equal(t, p.ID, edited.ID)

	detail, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi2", detail.Post.Text)
	assert.EqualValues(t, 1, detail.AuthorPosts)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")

	_, err := f.posts.Create(ctx, alice.ID, PostInput{Text: "   "})
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "text")

	missing := uint64(42)
	_, err = f.posts.Create(ctx, alice.ID, PostInput{Text: "ok", GroupID: &missing})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "group")

	_, err = f.posts.Create(ctx, alice.ID, PostInput{Text: "ok", Image: strings.NewReader("not an image")})
	ve, ok = AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "image")

	n, err := f.posts.ListAll(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, n.Total)
}

func TestCreateWithGroupAndImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")
	g := f.seed.Group("g")

	p, err := f.posts.Create(ctx, alice.ID, PostInput{
		Text:    "pic",
		GroupID: &g.ID,
		Image:   bytes.NewReader(pngBytes(t, 4, 4)),
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.Image)
	assert.True(t, strings.HasPrefix(p.Image, "posts/"))
	require.NotNil(t, p.Group)
	assert.Equal(t, "g", p.Group.Slug)

	ok, err := f.store.Exists(ctx, p.Image)
	require.NoError(t, err)
	assert.True(t, ok)

	// 编辑未上传新图时保留原图
	kept, err := f.posts.Update(ctx, p.ID, alice.ID, PostInput{Text: "pic2", GroupID: &g.ID})
	require.NoError(t, err)
	assert.Equal(t, p.Image, kept.Image)

	replaced, err := f.posts.Update(ctx, p.ID, alice.ID, PostInput{Text: "pic3", Image: bytes.NewReader(pngBytes(t, 2, 2))})
	require.NoError(t, err)
	assert.NotEqual(t, p.Image, replaced.Image)
	assert.Nil(t, replaced.GroupID)

	ok, err = f.store.Exists(ctx, p.Image)
	require.NoError(t, err)
	assert.False(t, ok, "old image removed")
}

func TestEditByNonAuthorIsDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")
	bob := f.seed.User("bob")
	p := f.seed.Post(alice, nil, "original")

	_, err := f.posts.GetForEdit(ctx, p.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.posts.Update(ctx, p.ID, bob.ID, PostInput{Text: "x"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	detail, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", detail.Post.Text)

	_, err = f.posts.GetForEdit(ctx, 999, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.seed.User("alice")
	bob := f.seed.User("bob")
	p := f.seed.Post(alice, nil, "post")

	_, err := f.comments.Add(ctx, p.ID, bob.ID, CommentInput{Text: "first"})
	require.NoError(t, err)
	_, err = f.comments.Add(ctx, p.ID, alice.ID, CommentInput{Text: "second"})
	require.NoError(t, err)

	_, err = f.comments.Add(ctx, p.ID, bob.ID, CommentInput{Text: " "})
	_, ok := AsValidation(err)
	assert.True(t, ok)

	_, err = f.comments.Add(ctx, 999, bob.ID, CommentInput{Text: "lost"})
	assert.ErrorIs(t, err, ErrNotFound)

	detail, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, "second", detail.Comments[0].Text)
	assert.Equal(t, "alice", detail.Comments[0].Author.Username)
}
