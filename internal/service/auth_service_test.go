package service

import (
	"testing"
	"time"

	"github.com/fadilmartias/skillsnap/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}, "skillsnap")
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "skillsnap", claims.Issuer)
}

func TestJWTService_Rejects(t *testing.T) {
	svc, err := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour}, "skillsnap")
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ValidateToken("")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		other, _ := NewJWTService(&config.JWTConfig{Secret: "another", ExpiresIn: time.Hour}, "skillsnap")
		token, err := other.GenerateToken(uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		claims := &Claims{
			UserID: uuid.New(),
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("none algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.New()}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.JWTConfig{}, "skillsnap")
	assert.Error(t, err)
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, svc.Verify("correct horse", hash))
	assert.False(t, svc.Verify("wrong", hash))
	assert.False(t, svc.Verify("correct horse", "not-a-hash"))
}
