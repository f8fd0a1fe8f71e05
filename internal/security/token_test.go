package security

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"drivehub-backend/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef0123456789abcdef", 60)

	token, err := tm.GenerateAccessToken(7, "user@test.com", domain.UserRoleReseller)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, domain.UserRoleReseller, claims.Role)
}

func TestTokenManager_ValidateToken_Invalid(t *testing.T) {
	tm := NewTokenManager("0123456789abcdef0123456789abcdef", 60)

	t.Run("Garbage", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewTokenManager("ffffffffffffffffffffffffffffffff", 60)
		token, err := other.GenerateAccessToken(7, "user@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewTokenManager("0123456789abcdef0123456789abcdef", -1)
		token, err := expired.GenerateAccessToken(7, "user@test.com", domain.UserRoleCustomer)
		assert.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
