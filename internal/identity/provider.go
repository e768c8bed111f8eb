// Package identity resolves credentials into user profiles.
package identity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/config"
	"github.com/Behnamfe76/officedesk/internal/domain"
)

// Provider authenticates users and lists approving managers.
//
// Authenticate returns nil, nil for bad credentials. Directory failures are
// logged and reported the same way so callers cannot tell them apart.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (*domain.UserProfile, error)
	ListManagers(ctx context.Context) ([]domain.Manager, error)
}

// NewProvider selects the provider named by cfg.Mode.
func NewProvider(cfg config.IdentityConfig, logger *zap.Logger) (Provider, error) {
	switch cfg.Mode {
	case config.IdentityModeMock:
		return NewRosterProvider(cfg.RosterFile, logger), nil
	case config.IdentityModeLDAP:
		return NewDirectoryProvider(cfg.LDAP, logger), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}
