package identity

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeRoster(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRosterProvider_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	path := writeRoster(t, `{"users": [
		{"username": "alice", "password": "pw", "full_name": "Alice A", "department": "IT",
		 "employee_number": "E1", "is_admin": true},
		{"username": "bob", "password": "`+string(hash)+`", "full_name": "Bob B", "department": "HR",
		 "employee_number": "E2", "is_manager": true}
	]}`)
	p := NewRosterProvider(path, nil)
	ctx := context.Background()

	u, err := p.Authenticate(ctx, "alice", "pw")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alice A", u.FullName)
	assert.Equal(t, "IT", u.Department)
	assert.True(t, u.IsAdmin)
	assert.False(t, u.IsManager)

	u, err = p.Authenticate(ctx, "bob", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsManager)

	u, err = p.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = p.Authenticate(ctx, "nobody", "pw")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRosterProvider_MissingFileIsBadCredentials(t *testing.T) {
	p := NewRosterProvider(filepath.Join(t.TempDir(), "absent.json"), nil)
	u, err := p.Authenticate(context.Background(), "alice", "pw")
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestRosterProvider_ListManagers(t *testing.T) {
	path := writeRoster(t, `{"users": [
		{"username": "a", "password": "x", "full_name": "Manager One", "department": "Ops", "is_manager": true},
		{"username": "b", "password": "x", "full_name": "Staff", "department": "Ops"}
	]}`)
	managers, err := NewRosterProvider(path, nil).ListManagers(context.Background())
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "Manager One", managers[0].FullName)
	assert.Equal(t, "Ops", managers[0].Department)
}
