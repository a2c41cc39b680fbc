package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
)

func TestIssueAndParse(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "yatube")
	token, err := m.Issue(&model.User{ID: 7, Username: "leo"})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, id)
	assert.Equal(t, "leo", claims.Username)
}

func TestParseRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "yatube")
	token, err := m.Issue(&model.User{ID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour, "yatube").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", time.Hour, "someone-else").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", time.Hour, "yatube")
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"":                  "/",
		"/create/":          "/create/",
		"/group/a/?page=2":  "/group/a/?page=2",
		"//evil.com/":       "/",
		"https://evil.com/": "/",
		"/\\evil.com":       "/",
		"relative/path":     "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeNext(in, "/"), in)
	}
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/auth/login/?next=%2Fcreate%2F", LoginURL("/create/"))
}

func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, CurrentUser(c))
	assert.Zero(t, UserID(c))

	SetUser(c, &model.User{ID: 3})
	assert.EqualValues(t, 3, UserID(c))
}
