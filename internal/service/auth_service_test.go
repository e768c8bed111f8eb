package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Behnamfe76/officedesk/internal/auth"
	"github.com/Behnamfe76/officedesk/internal/domain"
	"github.com/Behnamfe76/officedesk/pkg/util/errorutil"
)

type stubProvider struct {
	users    map[string]string
	profiles map[string]domain.UserProfile
	managers []domain.Manager
	err      error
}

func (p *stubProvider) Authenticate(_ context.Context, username, password string) (*domain.UserProfile, error) {
	if p.err != nil {
		return nil, p.err
	}
	if want, ok := p.users[username]; !ok || want != password {
		return nil, nil
	}
	profile := p.profiles[username]
	return &profile, nil
}

func (p *stubProvider) ListManagers(context.Context) ([]domain.Manager, error) {
	return p.managers, p.err
}

func TestAuthService_Login(t *testing.T) {
	provider := &stubProvider{
		users:    map[string]string{"alice": "s3cret"},
		profiles: map[string]domain.UserProfile{"alice": *alice},
	}
	tokens := auth.NewTokenManager("test-secret", 30)
	svc := NewAuthService(provider, tokens, nil)

	session, err := svc.Login(context.Background(), " alice ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.User.Username)
	assert.NotEmpty(t, session.Token)

	claims, err := tokens.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "Sales", claims.Profile.Department)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assertCode(t, err, errorutil.CodeUnauth)
	_, err = svc.Login(context.Background(), "", "x")
	assertCode(t, err, errorutil.CodeValidation)
}

func TestAuthService_ProviderFailureLooksLikeBadCredentials(t *testing.T) {
	provider := &stubProvider{err: errors.New("directory unreachable")}
	svc := NewAuthService(provider, auth.NewTokenManager("k", 5), nil)

	_, err := svc.Login(context.Background(), "alice", "s3cret")
	assertCode(t, err, errorutil.CodeUnauth)
}

func TestLeaveService_ManagersFromProvider(t *testing.T) {
	f := newFixture(t)
	provider := &stubProvider{managers: []domain.Manager{{FullName: "Mona Manager", Department: "Sales"}}}

	managers, err := NewLeaveService(f.deps, provider).Managers(f.ctx)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Mona Manager", managers[0].FullName)

	provider.err = errors.New("directory down")
	managers, err = NewLeaveService(f.deps, provider).Managers(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, managers)
}
