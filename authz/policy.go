// Package authz gates access to administrative sections by role. The access
// policy is an explicit table from section to minimum role, loaded at startup.
// Sections absent from the table are unprotected, so the table is the single
// reviewed list of everything that requires a role.
package authz

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
)

// Administrative section identifiers.
const (
	SectionPlayers      = "Players"
	SectionConnections  = "Connections"
	SectionBans         = "Bans"
	SectionServerConfig = "ServerConfig"
)

// DefaultPolicyTable is the stock section-to-minimum-role mapping.
func DefaultPolicyTable() map[string]accounts.RoleType {
	return map[string]accounts.RoleType{
		SectionPlayers:      accounts.RoleModerator,
		SectionConnections:  accounts.RoleGameAdmin,
		SectionBans:         accounts.RoleBanAdmin,
		SectionServerConfig: accounts.RoleSuperAdmin,
	}
}

// Policy is the immutable access policy consulted by the gate.
type Policy struct {
	minimum map[string]accounts.RoleType
}

// NewPolicy builds a Policy from a section-to-minimum-role table. Every entry
// must name a known role.
func NewPolicy(table map[string]accounts.RoleType) (*Policy, error) {
	minimum := make(map[string]accounts.RoleType, len(table))
	for section, role := range table {
		if section == "" {
			return nil, errors.New("[NewPolicy] empty section name")
		}
		if !role.Valid() {
			return nil, errors.Errorf("[NewPolicy] section %q has unknown role %q", section, role)
		}
		minimum[section] = role
	}
	return &Policy{minimum: minimum}, nil
}

// MinimumRole returns the minimum role required for a section. The second
// return is false for unprotected sections.
func (p *Policy) MinimumRole(section string) (accounts.RoleType, bool) {
	role, ok := p.minimum[section]
	return role, ok
}

// Sections lists every protected section in stable order.
func (p *Policy) Sections() []string {
	sections := make([]string, 0, len(p.minimum))
	for section := range p.minimum {
		sections = append(sections, section)
	}
	sort.Strings(sections)
	return sections
}
