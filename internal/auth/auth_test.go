package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/travel-planner/internal/auth"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password  string
		wantScore int
		wantLevel auth.Level
	}{
		{"", 0, auth.LevelWeak},
		{"abc", 1, auth.LevelWeak},
		{"abcdefgh", 2, auth.LevelWeak},
		{"abcdefg1", 3, auth.LevelMedium},
		{"Abcdefg1", 4, auth.LevelStrong},
		{"Abcdef1!", 5, auth.LevelStrong},
		{"ABC1!", 3, auth.LevelMedium},
		{"a-b_c~", 1, auth.LevelWeak}, // '-' '_' '~' are not counted as special
	}

	for _, tc := range tests {
		t.Run(tc.password, func(t *testing.T) {
			got := auth.PasswordStrength(tc.password)
			assert.Equal(t, tc.wantScore, got.Score)
			assert.Equal(t, tc.wantLevel, got.Level)
			assert.Equal(t, tc.wantLevel.String(), got.Label)
		})
	}
}

func TestPasswordStrength_Checks(t *testing.T) {
	got := auth.PasswordStrength("pass{word}")

	assert.Equal(t, auth.Checks{Length: true, Lowercase: true, Special: true}, got.Checks)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, auth.ValidEmail("asha@example.com"))
	assert.True(t, auth.ValidEmail("A.B+tag@sub.example.co.in"))
	assert.False(t, auth.ValidEmail("asha@example"))
	assert.False(t, auth.ValidEmail("asha example@x.com"))
	assert.False(t, auth.ValidEmail("@example.com"))
	assert.False(t, auth.ValidEmail(""))
}

func TestBcryptHasher(t *testing.T) {
	h := auth.BcryptHasher{Cost: bcrypt.MinCost}

	stored, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", stored)

	assert.NoError(t, h.Compare(stored, "Secret123"))
	assert.ErrorIs(t, h.Compare(stored, "secret123"), auth.ErrMismatch)
}

func TestPlaintextHasher(t *testing.T) {
	h := auth.PlaintextHasher{}

	stored, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.Equal(t, "Secret123", stored)
	assert.NoError(t, h.Compare(stored, "Secret123"))
	assert.ErrorIs(t, h.Compare(stored, "Secret12"), auth.ErrMismatch)
}

func TestNewHasher(t *testing.T) {
	h, err := auth.NewHasher("bcrypt")
	require.NoError(t, err)
	assert.IsType(t, auth.BcryptHasher{}, h)

	h, err = auth.NewHasher("plaintext")
	require.NoError(t, err)
	assert.IsType(t, auth.PlaintextHasher{}, h)

	_, err = auth.NewHasher("md5")
	assert.Error(t, err)
}
