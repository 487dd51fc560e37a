package accounts_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telecare-labs/accounts"
)

func TestHashPassword(t *testing.T) {
	creds := accounts.NewCredentials(newTestConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := creds.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.True(t, creds.ComparePassword(tt.password, hash))
		})
	}
}

func TestHashPasswordIsSalted(t *testing.T) {
	creds := accounts.NewCredentials(newTestConfig())

	h1, err := creds.HashPassword("Secure123!")
	assert.NoError(t, err)
	h2, err := creds.HashPassword("Secure123!")
	assert.NoError(t, err)

	// Random salt: same plaintext, different hashes, both verifiable.
	assert.NotEqual(t, h1, h2)
	assert.True(t, creds.ComparePassword("Secure123!", h1))
	assert.True(t, creds.ComparePassword("Secure123!", h2))
}

func TestComparePassword(t *testing.T) {
	creds := accounts.NewCredentials(newTestConfig())

	password := "testPassword123!"
	hash, err := creds.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			want:     true,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			want:     false,
		},
		{
			name:     "Malformed hash",
			password: password,
			hash:     "invalidhash",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, creds.ComparePassword(tt.password, tt.hash))
		})
	}
}
