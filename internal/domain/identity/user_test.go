package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Buyer@Example.com", "s3cret-pass", "Thandiwe", "Mwila")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email, "email must be normalized to lowercase")
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "s3cret-pass"},
		{"missing at sign", "buyerexample.com", "s3cret-pass"},
		{"missing domain dot", "buyer@example", "s3cret-pass"},
		{"short password", "buyer@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.email, tt.password, "", "")
			assert.Error(t, err)
		})
	}
}

func TestUserCheckPassword(t *testing.T) {
	user, err := NewUser("buyer@example.com", "s3cret-pass", "", "")
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}

func TestUserFullName(t *testing.T) {
	user, err := NewUser("buyer@example.com", "s3cret-pass", "Thandiwe", "Mwila")
	require.NoError(t, err)
	assert.Equal(t, "Thandiwe Mwila", user.FullName())

	user.UpdateProfile("", "")
	assert.Equal(t, "buyer@example.com", user.FullName(), "falls back to email when name is empty")
}
