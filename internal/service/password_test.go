package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"cmsapi/internal/model"
)

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := hashPassword(plain, bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash := mustHash(t, "s3cret-pass")

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, passwordMatches("s3cret-pass", hash))
	assert.False(t, passwordMatches("wrong-pass", hash))
}

func TestIsPasswordReused(t *testing.T) {
	history := []model.PasswordEntry{
		{Password: mustHash(t, "first"), CreatedAt: time.Now().Add(-48 * time.Hour)},
		{Password: mustHash(t, "second"), CreatedAt: time.Now().Add(-24 * time.Hour)},
	}

	assert.True(t, isPasswordReused("first", history))
	assert.True(t, isPasswordReused("second", history))
	assert.False(t, isPasswordReused("third", history))
	assert.False(t, isPasswordReused("first", nil))
}

func TestOldestPasswordEntry(t *testing.T) {
	now := time.Now()
	history := []model.PasswordEntry{
		{Password: "b", CreatedAt: now.Add(-1 * time.Hour)},
		{Password: "a", CreatedAt: now.Add(-72 * time.Hour)},
		{Password: "c", CreatedAt: now},
	}

	oldest := oldestPasswordEntry(history)
	require.NotNil(t, oldest)
	assert.Equal(t, "a", oldest.Password)

	assert.Nil(t, oldestPasswordEntry(nil))
}
