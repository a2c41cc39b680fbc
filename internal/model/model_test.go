package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Leo Tolstoy", User{Username: "leo", FirstName: "Leo", LastName: "Tolstoy"}.DisplayName())
	assert.Equal(t, "Leo", User{Username: "leo", FirstName: "Leo"}.DisplayName())
	assert.Equal(t, "leo", User{Username: "leo"}.DisplayName())
}

func TestAvatarURL(t *testing.T) {
	var missing *UserProfile
	assert.Equal(t, DefaultAvatar, missing.AvatarURL("/media/"))
	assert.Equal(t, DefaultAvatar, (&UserProfile{}).AvatarURL("/media/"))
	assert.Equal(t, "/media/avatars/a.png", (&UserProfile{Avatar: "avatars/a.png"}).AvatarURL("/media/"))
}
