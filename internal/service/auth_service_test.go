package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/internal/model"
)

func signUpInput(username string) SignUpInput {
	return SignUpInput{
		FirstName: "Leo",
		LastName:  "Tolstoy",
		Username:  username,
		Email:     username + "@example.com",
		Password:  "war-and-peace",
		Password2: "war-and-peace",
	}
}

func TestSignUpCreatesProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.auth.SignUp(ctx, signUpInput("leo"))
	require.NoError(t, err)
	assert.NotEqual(t, "war-and-peace", u.Password)

	var p model.UserProfile
	require.NoError(t, f.db.Where("user_id = ?", u.ID).First(&p).Error)
	assert.Equal(t, model.DefaultAbout, p.About)

	_, err = f.auth.SignUp(ctx, signUpInput("leo"))
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "username")
}

func TestSignUpValidation(t *testing.T) {
	f := newFixture(t)
	in := signUpInput("leo")
	in.Password2 = "different"
	in.Email = "nope"

	_, err := f.auth.SignUp(context.Background(), in)
	ve, ok := AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "password2")
	assert.Contains(t, ve.Fields, "email")
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.auth.SignUp(ctx, signUpInput("leo"))
	require.NoError(t, err)

	got, err := f.auth.Authenticate(ctx, "leo", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = f.auth.Authenticate(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Authenticate(ctx, "ghost", "war-and-peace")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	byID, err := f.auth.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", byID.Username)
	_, err = f.auth.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	byName, err := f.auth.GetUserByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)
	_, err = f.auth.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
