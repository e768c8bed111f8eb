package identity

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Behnamfe76/officedesk/internal/domain"
)

// rosterUser is one entry of the roster file.
type rosterUser struct {
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	FullName       string `mapstructure:"full_name"`
	FullNameAr     string `mapstructure:"full_name_ar"`
	Department     string `mapstructure:"department"`
	EmployeeNumber string `mapstructure:"employee_number"`
	IsAdmin        bool   `mapstructure:"is_admin"`
	IsManager      bool   `mapstructure:"is_manager"`
}

// RosterProvider authenticates against a static roster file of the form
// {"users": [...]}. JSON and YAML are accepted. The file is re-read on every
// call so edits apply without a restart.
type RosterProvider struct {
	path   string
	logger *zap.Logger
}

// NewRosterProvider builds a provider over the roster at path.
func NewRosterProvider(path string, logger *zap.Logger) *RosterProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterProvider{path: path, logger: logger}
}

func (p *RosterProvider) load() ([]rosterUser, error) {
	v := viper.New()
	v.SetConfigFile(p.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var users []rosterUser
	if err := v.UnmarshalKey("users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Authenticate implements Provider.
func (p *RosterProvider) Authenticate(_ context.Context, username, password string) (*domain.UserProfile, error) {
	users, err := p.load()
	if err != nil {
		p.logger.Error("roster unavailable", zap.String("path", p.path), zap.Error(err))
		return nil, nil
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if !passwordMatches(u.Password, password) {
			return nil, nil
		}
		return &domain.UserProfile{
			Username:       u.Username,
			FullName:       u.FullName,
			FullNameAr:     u.FullNameAr,
			Department:     u.Department,
			EmployeeNumber: u.EmployeeNumber,
			IsAdmin:        u.IsAdmin,
			IsManager:      u.IsManager,
		}, nil
	}
	return nil, nil
}

// ListManagers implements Provider.
func (p *RosterProvider) ListManagers(_ context.Context) ([]domain.Manager, error) {
	users, err := p.load()
	if err != nil {
		return nil, err
	}
	managers := []domain.Manager{}
	for _, u := range users {
		if u.IsManager {
			managers = append(managers, domain.Manager{FullName: u.FullName, Department: u.Department})
		}
	}
	return managers, nil
}

// passwordMatches accepts bcrypt hashes and plain roster passwords.
func passwordMatches(stored, given string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
