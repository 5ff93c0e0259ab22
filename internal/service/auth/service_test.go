package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/auth"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
)

func newAuthService(t *testing.T) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(auth.Config{
		Username:    "admin",
		Password:    "admin123",
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := newAuthService(t)

	resp, err := svc.Login(model.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.Role)
	assert.EqualValues(t, 3600, resp.ExpiresIn)

	claims, err := svc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Login(model.LoginRequest{Username: "admin", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Login(model.LoginRequest{Username: "root", Password: "admin123"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	svc := newAuthService(t)

	other, err := auth.NewService(auth.Config{
		Username:  "admin",
		Password:  "admin123",
		JWTSecret: "another-secret",
	})
	require.NoError(t, err)

	resp, err := other.Login(model.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	_, err = svc.Verify(resp.Token)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.Verify("not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}
