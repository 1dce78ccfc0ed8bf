// Package gate guards the admin surface with a single shared password.
package gate

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword applies until a password has been stored.
const DefaultPassword = "JR56OPsh#"

// MinPasswordLength is enforced by ChangePassword.
const MinPasswordLength = 6

// bcryptCost is a seam so tests can use bcrypt.MinCost.
var bcryptCost = bcrypt.DefaultCost

type Gate struct {
	values storage.KV
	logger logging.Logger
}

func NewGate(values storage.KV, logger logging.Logger) *Gate {
	return &Gate{values: values, logger: logger.With("module", "gate")}
}

// stored returns the persisted password value, or DefaultPassword when
// nothing is stored or the store cannot be read.
func (g *Gate) stored(ctx context.Context) string {
	raw, err := g.values.GetValue(ctx, common.KeyAdminPassword)
	if err != nil {
		g.logger.Error(ctx, "read admin password failed, using default", "error", err)
		return DefaultPassword
	}
	if raw == nil {
		return DefaultPassword
	}

	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v == "" {
		g.logger.Warn(ctx, "stored admin password unreadable, using default")
		return DefaultPassword
	}
	return v
}

func isBcryptHash(v string) bool {
	return strings.HasPrefix(v, "$2a$") || strings.HasPrefix(v, "$2b$") || strings.HasPrefix(v, "$2y$")
}

// CheckPassword reports whether candidate matches the admin password.
func (g *Gate) CheckPassword(ctx context.Context, candidate string) bool {
	want := g.stored(ctx)
	if isBcryptHash(want) {
		return bcrypt.CompareHashAndPassword([]byte(want), []byte(candidate)) == nil
	}
	// Plaintext values are accepted for stores written by older clients.
	return subtle.ConstantTimeCompare([]byte(want), []byte(candidate)) == 1
}

// SetPassword overwrites the stored admin password.
func (g *Gate) SetPassword(ctx context.Context, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorValidation, err)
	}
	raw, err := json.Marshal(string(hash))
	if err != nil {
		return fmt.Errorf("encode admin password: %w", err)
	}
	if err := g.values.SetValue(ctx, common.KeyAdminPassword, raw); err != nil {
		g.logger.Error(ctx, "store admin password failed", "error", err)
		return fmt.Errorf("%w: %w", common.ErrorOperationFailed, err)
	}
	g.logger.Info(ctx, "admin password changed")
	return nil
}

// ChangePassword validates the new password and its confirmation before
// storing it.
func (g *Gate) ChangePassword(ctx context.Context, newPassword, confirmation string) error {
	if len([]rune(newPassword)) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	if newPassword != confirmation {
		return fmt.Errorf("%w: passwords do not match", common.ErrorValidation)
	}
	return g.SetPassword(ctx, newPassword)
}
