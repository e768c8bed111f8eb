package identity

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/config"
	"github.com/Behnamfe76/officedesk/internal/domain"
)

type directoryConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
}

type dialFunc func(cfg config.LDAPConfig) (directoryConn, func(), error)

// DirectoryProvider authenticates with a user bind, then reads the profile
// through a service-account search.
type DirectoryProvider struct {
	cfg    config.LDAPConfig
	dial   dialFunc
	logger *zap.Logger
}

// NewDirectoryProvider builds an LDAP-backed provider.
func NewDirectoryProvider(cfg config.LDAPConfig, logger *zap.Logger) *DirectoryProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryProvider{cfg: cfg, dial: dialLDAP, logger: logger}
}

func dialLDAP(cfg config.LDAPConfig) (directoryConn, func(), error) {
	conn, err := ldap.DialURL(cfg.URL, ldap.DialWithDialer(&net.Dialer{Timeout: cfg.Timeout()}))
	if err != nil {
		return nil, nil, err
	}
	conn.SetTimeout(cfg.Timeout())
	return conn, func() { conn.Close() }, nil
}

// Authenticate implements Provider.
func (p *DirectoryProvider) Authenticate(_ context.Context, username, password string) (*domain.UserProfile, error) {
	if username == "" || password == "" {
		return nil, nil
	}
	conn, closeConn, err := p.dial(p.cfg)
	if err != nil {
		p.logger.Error("directory dial failed", zap.Error(err))
		return nil, nil
	}
	defer closeConn()

	if err := conn.Bind(p.userPrincipal(username), password); err != nil {
		p.logger.Info("directory bind rejected", zap.String("username", username), zap.Error(err))
		return nil, nil
	}
	if err := conn.Bind(p.cfg.ServiceAccount, p.cfg.ServicePassword); err != nil {
		p.logger.Error("service account bind failed", zap.Error(err))
		return nil, nil
	}

	req := ldap.NewSearchRequest(
		p.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 1, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
		[]string{"displayName", "department", "employeeNumber", "memberOf"},
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		p.logger.Error("directory search failed", zap.Error(err))
		return nil, nil
	}
	if len(res.Entries) == 0 {
		return nil, nil
	}
	entry := res.Entries[0]
	groups := entry.GetAttributeValues("memberOf")
	return &domain.UserProfile{
		Username:       username,
		FullName:       entry.GetAttributeValue("displayName"),
		Department:     entry.GetAttributeValue("department"),
		EmployeeNumber: entry.GetAttributeValue("employeeNumber"),
		IsAdmin:        memberOf(groups, p.cfg.AdminsGroup),
		IsManager:      memberOf(groups, p.cfg.ManagersGroup),
	}, nil
}

// ListManagers implements Provider.
func (p *DirectoryProvider) ListManagers(_ context.Context) ([]domain.Manager, error) {
	managers := []domain.Manager{}
	if p.cfg.ManagersGroup == "" {
		return managers, nil
	}
	conn, closeConn, err := p.dial(p.cfg)
	if err != nil {
		p.logger.Error("directory dial failed", zap.Error(err))
		return managers, nil
	}
	defer closeConn()

	if err := conn.Bind(p.cfg.ServiceAccount, p.cfg.ServicePassword); err != nil {
		p.logger.Error("service account bind failed", zap.Error(err))
		return managers, nil
	}
	req := ldap.NewSearchRequest(
		p.cfg.BaseDN,
		ldap.ScopeWholeSubtree, ldap.NeverDerefAliases, 0, 0, false,
		fmt.Sprintf("(memberOf=%s)", ldap.EscapeFilter(p.cfg.ManagersGroup)),
		[]string{"displayName", "department"},
		nil,
	)
	res, err := conn.Search(req)
	if err != nil {
		p.logger.Error("directory search failed", zap.Error(err))
		return managers, nil
	}
	for _, entry := range res.Entries {
		managers = append(managers, domain.Manager{
			FullName:   entry.GetAttributeValue("displayName"),
			Department: entry.GetAttributeValue("department"),
		})
	}
	return managers, nil
}

func (p *DirectoryProvider) userPrincipal(username string) string {
	if p.cfg.Domain == "" {
		return username
	}
	return p.cfg.Domain + `\` + username
}

// memberOf matches a configured group against the entry's groups. A group
// given as a bare name matches the CN of any membership DN.
func memberOf(groups []string, group string) bool {
	if group == "" {
		return false
	}
	for _, g := range groups {
		if strings.EqualFold(g, group) {
			return true
		}
		if !strings.Contains(group, "=") && strings.HasPrefix(strings.ToLower(g), "cn="+strings.ToLower(group)+",") {
			return true
		}
	}
	return false
}
