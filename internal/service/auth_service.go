package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/auth"
	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/internal/identity"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

// Session is an issued login.
type Session struct {
	User      domain.UserProfile `json:"user"`
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// AuthService resolves credentials through the identity provider and issues
// session tokens.
type AuthService struct {
	identity identity.Provider
	tokenMgr *auth.TokenManager
	logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(provider identity.Provider, tokens *auth.TokenManager, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{identity: provider, tokenMgr: tokens, logger: logger}
}

// Login authenticates the pair. Bad credentials and provider failures are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errorutil.NewValidationError("username and password are required", map[string]any{"field": "username"})
	}
	user, err := s.identity.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Error("identity provider failed", zap.String("username", username), zap.Error(err))
		return nil, errorutil.NewUnauthorized("invalid credentials")
	}
	if user == nil {
		return nil, errorutil.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(*user)
	if err != nil {
		return nil, errorutil.NewInternalError(err)
	}
	s.logger.Info("user logged in", zap.String("username", user.Username), zap.Bool("is_admin", user.IsAdmin))
	return &Session{User: *user, Token: token, ExpiresAt: exp}, nil
}
