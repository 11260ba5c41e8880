package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthenticate_Plain(t *testing.T) {
	auth := NewAuthService("admin", "secret")
	ctx := context.Background()

	assert.True(t, auth.Authenticate(ctx, "admin", "secret"))
	assert.False(t, auth.Authenticate(ctx, "admin", "wrong"))
	assert.False(t, auth.Authenticate(ctx, "root", "secret"))
	assert.False(t, auth.Authenticate(ctx, "", ""))
}

func TestAuthenticate_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	auth := NewAuthService("admin", string(hash))
	assert.True(t, auth.Authenticate(context.Background(), "admin", "secret"))
	assert.False(t, auth.Authenticate(context.Background(), "admin", string(hash)))
}
