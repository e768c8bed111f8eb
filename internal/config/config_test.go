package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("IDENTITY_MODE", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, IdentityModeMock, cfg.Identity.Mode)
	assert.Equal(t, "mock_data/users.json", cfg.Identity.RosterFile)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
	assert.Equal(t, 10, cfg.Auth.SessionTTLMinutes)
	assert.Empty(t, cfg.Postgres.DSN)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("IDENTITY_MODE", "LDAP")
	t.Setenv("LDAP_URL", "ldaps://dc.example.com")
	t.Setenv("LDAP_BASE_DN", "DC=example,DC=com")
	t.Setenv("LDAP_TIMEOUT_SECONDS", "9")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, IdentityModeLDAP, cfg.Identity.Mode)
	assert.Equal(t, 9*time.Second, cfg.Identity.LDAP.Timeout())
	assert.Equal(t, time.Duration(0), cfg.App.RequestTimeout())
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Rejects(t *testing.T) {
	t.Setenv("REDIS_DB", "three")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"mock with roster", Config{Identity: IdentityConfig{Mode: IdentityModeMock, RosterFile: "users.json"}}, true},
		{"mock without roster", Config{Identity: IdentityConfig{Mode: IdentityModeMock}}, false},
		{"ldap without url", Config{Identity: IdentityConfig{Mode: IdentityModeLDAP, LDAP: LDAPConfig{BaseDN: "DC=x"}}}, false},
		{"unknown mode", Config{Identity: IdentityConfig{Mode: "saml"}}, false},
		{"production dev secret", Config{
			App:      AppConfig{Env: "production"},
			Auth:     AuthConfig{JWTSecret: "dev-secret"},
			Identity: IdentityConfig{Mode: IdentityModeMock, RosterFile: "users.json"},
		}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDurationsFallBack(t *testing.T) {
	assert.Equal(t, time.Minute, NotificationConfig{}.UnreadCacheTTL())
	assert.Equal(t, 5*time.Second, LDAPConfig{}.Timeout())
}
