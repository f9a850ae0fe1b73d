package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rogerio-castellano/pantry-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	tokens := NewTokens("test-secret", 15*time.Minute)

	tok, err := tokens.GenerateToken(models.User{ID: 7, Username: "ana", Role: "user"})
	require.NoError(t, err)

	claims, err := tokens.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, Claims{UserID: 7, Username: "ana", Role: "user"}, claims)
}

func TestParseToken_Rejects(t *testing.T) {
	tokens := NewTokens("test-secret", 15*time.Minute)
	user := models.User{ID: 1, Username: "ana", Role: "user"}

	expired := NewTokens("test-secret", 15*time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredTok, err := expired.GenerateToken(user)
	require.NoError(t, err)

	otherTok, err := NewTokens("other-secret", time.Minute).GenerateToken(user)
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"username": "ana",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"empty", ""},
		{"expired", expiredTok},
		{"wrong secret", otherTok},
		{"unsigned", noneTok},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.ParseToken(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
