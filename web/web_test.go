package web

import (
	"html/template"
	"io/fs"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/pagination"
)

func renderPage(t *testing.T, r *Renderer, name string, data gin.H) string {
	t.Helper()
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["User"]; !ok {
		data["User"] = (*model.User)(nil)
	}
	data["Year"] = 2024
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestRenderPages(t *testing.T) {
	r, err := NewRenderer("/media/")
	require.NoError(t, err)

	author := model.User{ID: 1, Username: "leo", FirstName: "Leo"}
	group := &model.Group{ID: 2, Title: "Cats", Slug: "cats", Description: "line1\nline2"}
	post := &model.Post{ID: 3, Text: "hello <b>world</b>", Image: "posts/x.png", AuthorID: 1, Author: author, GroupID: &group.ID, Group: group, CreatedAt: time.Now()}
	page := pagination.Slice([]*model.Post{post}, 10, 1)

	index := renderPage(t, r, "index.tmpl", gin.H{"Page": page})
	assert.Contains(t, index, "hello &lt;b&gt;world&lt;/b&gt;")
	assert.Contains(t, index, `src="/media/posts/x.png"`)
	assert.Contains(t, index, `href="/group/cats/"`)
	assert.Contains(t, index, "Log in")

	groupPage := renderPage(t, r, "group_list.tmpl", gin.H{"Group": group, "Page": page})
	assert.Contains(t, groupPage, "line1<br>line2")

	detail := renderPage(t, r, "post_detail.tmpl", gin.H{
		"User": &author,
		"Detail": struct {
			Post        *model.Post
			Comments    []*model.Comment
			AuthorPosts int64
		}{post, []*model.Comment{{Text: "nice", Author: author, CreatedAt: time.Now()}}, 1},
	})
	assert.Contains(t, detail, "/posts/3/edit/")
	assert.Contains(t, detail, "nice")

	form := renderPage(t, r, "create_post.tmpl", gin.H{
		"IsEdit": false,
		"Post":   (*model.Post)(nil),
		"Form": struct {
			Text    string
			GroupID *uint64
		}{"draft", &group.ID},
		"Groups": []*model.Group{group},
		"Errors": map[string]string{"text": "This field is required."},
	})
	assert.Contains(t, form, `action="/create/"`)
	assert.Contains(t, form, "selected")
	assert.Contains(t, form, "This field is required.")

	notFound := renderPage(t, r, "404.tmpl", gin.H{"Path": "/nope/"})
	assert.Contains(t, notFound, "/nope/")
}

func TestPaginatorLinks(t *testing.T) {
	r, err := NewRenderer("/media/")
	require.NoError(t, err)
	items := make([]*model.Post, 25)
	for i := range items {
		items[i] = &model.Post{ID: uint64(i + 1), Text: "p", CreatedAt: time.Now()}
	}
	body := renderPage(t, r, "index.tmpl", gin.H{"Page": pagination.Slice(items, 10, 2)})
	assert.Contains(t, body, `href="?page=1"`)
	assert.Contains(t, body, `href="?page=3"`)
}

func TestStaticAssets(t *testing.T) {
	_, err := fs.Stat(Static(), "img/missing_avatar.svg")
	assert.NoError(t, err)
	_, err = fs.Stat(Static(), "css/style.css")
	assert.NoError(t, err)
}

func TestFuncs(t *testing.T) {
	fm := Funcs("/media/")

	linebreaks := fm["linebreaks"].(func(string) template.HTML)
	assert.Equal(t, template.HTML("a &lt;i&gt;<br>b"), linebreaks("a <i>\nb"))

	avatar := fm["avatar"].(func(*model.UserProfile) string)
	assert.Equal(t, model.DefaultAvatar, avatar(nil))
	assert.Equal(t, model.DefaultAvatar, avatar(&model.UserProfile{}))
	assert.Equal(t, "/media/avatars/a.png", avatar(&model.UserProfile{Avatar: "avatars/a.png"}))

	media := fm["media"].(func(string) string)
	assert.Empty(t, media(""))
	assert.Equal(t, "/media/posts/x.png", media("posts/x.png"))

	isSelected := fm["isSelected"].(func(*uint64, uint64) bool)
	id := uint64(7)
	assert.True(t, isSelected(&id, 7))
	assert.False(t, isSelected(&id, 8))
	assert.False(t, isSelected(nil, 7))

	truncate := fm["truncatewords"].(func(string, int) string)
	assert.Equal(t, "one two …", truncate("one two three", 2))
	assert.Equal(t, "one two", truncate("one two", 2))
}
