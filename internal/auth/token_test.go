package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 15)
	profile := domain.UserProfile{Username: "alice", FullName: "Alice Adams", Department: "Sales", IsAdmin: true}

	token, exp, err := tm.GenerateToken(profile)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, profile, claims.Profile)
	assert.Equal(t, "alice", claims.Subject)
}

func TestTokenManager_Rejects(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	token, _, err := tm.GenerateToken(domain.UserProfile{Username: "alice"})
	require.NoError(t, err)

	_, err = NewTokenManager("other", 1).ParseToken(token)
	assert.Error(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseToken(token)
	assert.Error(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Profile:          domain.UserProfile{Username: "root", IsAdmin: true},
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
	})
	signed, err := forged.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenManager("secret", 1).ParseToken(signed)
	assert.Error(t, err)
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	assert.Equal(t, 10*time.Minute, tm.ttl)
}
