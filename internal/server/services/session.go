// Package services contains server-side business logic that sits between
// the transports and the domain packages. This file implements
// SessionService, which turns the shared admin password into short-lived
// session tokens.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/config"
	"github.com/dmitrijs2005/factkeeper/internal/gate"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/server/auth"
	"github.com/google/uuid"
)

// SessionService issues and checks admin session tokens.
type SessionService struct {
	gate      *gate.Gate
	logger    logging.Logger
	jwtSecret []byte
	validity  time.Duration
}

// NewSessionService constructs a SessionService from the gate and server config.
func NewSessionService(g *gate.Gate, cfg *config.Config, logger logging.Logger) *SessionService {
	return &SessionService{
		gate:      g,
		logger:    logger.With("module", "session"),
		jwtSecret: []byte(cfg.SecretKey),
		validity:  cfg.AdminTokenValidityDuration,
	}
}

// Login checks password and returns a signed access token.
func (s *SessionService) Login(ctx context.Context, password string) (string, error) {
	if !s.gate.CheckPassword(ctx, password) {
		s.logger.Warn(ctx, "admin login rejected")
		return "", common.ErrorUnauthorized
	}

	sid := uuid.NewString()
	token, err := auth.GenerateToken(auth.AdminSubject, sid, s.jwtSecret, s.validity)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	s.logger.Info(ctx, "admin logged in", "session_id", sid)
	return token, nil
}

// Authorize validates an access token.
func (s *SessionService) Authorize(token string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return err
	}
	if claims.Subject != auth.AdminSubject {
		return common.ErrInvalidToken
	}
	return nil
}

// ChangePassword replaces the admin password after validation.
func (s *SessionService) ChangePassword(ctx context.Context, newPassword, confirmation string) error {
	return s.gate.ChangePassword(ctx, newPassword, confirmation)
}
