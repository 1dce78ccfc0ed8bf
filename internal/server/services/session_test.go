package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/config"
	"github.com/dmitrijs2005/factkeeper/internal/gate"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/server/auth"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T) *SessionService {
	t.Helper()
	m := storage.NewMemoryManager("test", nil)
	cfg := &config.Config{SecretKey: "k", AdminTokenValidityDuration: time.Minute}
	return NewSessionService(gate.NewGate(m.Values(), logging.Nop{}), cfg, logging.Nop{})
}

func TestLogin_DefaultPassword(t *testing.T) {
	s := newSessionService(t)

	token, err := s.Login(context.Background(), gate.DefaultPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NoError(t, s.Authorize(token))
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newSessionService(t)

	_, err := s.Login(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestAuthorize_RejectsForeignTokens(t *testing.T) {
	s := newSessionService(t)

	other, err := auth.GenerateToken("someone", "sid", []byte("k"), time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Authorize(other), common.ErrInvalidToken)

	wrongKey, err := auth.GenerateToken(auth.AdminSubject, "sid", []byte("other"), time.Minute)
	require.NoError(t, err)
	assert.ErrorIs(t, s.Authorize(wrongKey), common.ErrInvalidToken)

	expired, err := auth.GenerateToken(auth.AdminSubject, "sid", []byte("k"), -time.Minute)
	require.NoError(t, err)
	assert.True(t, errors.Is(s.Authorize(expired), common.ErrTokenExpired))
}

func TestChangePassword_ThenLogin(t *testing.T) {
	s := newSessionService(t)
	ctx := context.Background()

	require.ErrorIs(t, s.ChangePassword(ctx, "abc", "abc"), common.ErrorValidation)
	require.NoError(t, s.ChangePassword(ctx, "brand-new", "brand-new"))

	_, err := s.Login(ctx, gate.DefaultPassword)
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = s.Login(ctx, "brand-new")
	require.NoError(t, err)
}
