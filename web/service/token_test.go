package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ReshmithaBathala/bookingbackend/database/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this_is_a_long_enough_test_secret"

func TestNewTokenService(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		ttl     time.Duration
		wantErr bool
	}{
		{name: "valid", secret: testSecret, ttl: time.Hour},
		{name: "empty secret", secret: "", ttl: time.Hour, wantErr: true},
		{name: "zero ttl", secret: testSecret, ttl: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewTokenService(tt.secret, tt.ttl)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	s, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	token, exp, err := s.Issue(&model.User{Id: 7, Username: "erin", Role: model.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(time.Hour), exp)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.Id)
	assert.Equal(t, "erin", claims.Username)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, fixed.Unix(), claims.IssuedAt.Unix())
}

func TestVerifyExpired(t *testing.T) {
	s, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, _, err := s.Issue(&model.User{Id: 1, Username: "u", Role: model.RoleUser})
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejects(t *testing.T) {
	s, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	other, err := NewTokenService("a_completely_different_secret_value", time.Hour)
	require.NoError(t, err)

	foreign, _, err := other.Issue(&model.User{Id: 1, Username: "u", Role: model.RoleAdmin})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id": 1, "username": "u", "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"id": 1, "username": "u", "role": "admin",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id": 1, "username": "u", "role": "admin",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"empty":        "",
		"wrong secret": foreign,
		"alg none":     none,
		"alg HS512":    hs512,
		"no exp":       noExp,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(token)
			assert.True(t, errors.Is(err, ErrTokenInvalid), "got %v", err)
		})
	}
}
