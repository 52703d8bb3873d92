package config

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nikthechampiongr/SS14.Admin/accounts"
	"github.com/nikthechampiongr/SS14.Admin/authz"
)

type PolicyConfig interface {
	GetSectionPolicy() map[string]accounts.RoleType
}

type Policy struct{}

var _ PolicyConfig = Policy{}

// GetSectionPolicy returns the section-to-minimum-role table. SECTION_POLICY
// overrides entries of the stock table with "Section=role;Section=role" pairs;
// malformed entries are logged and skipped rather than silently widening
// access.
func (Policy) GetSectionPolicy() map[string]accounts.RoleType {
	table := authz.DefaultPolicyTable()

	raw := GetEnv("SECTION_POLICY", "")
	if raw == "" {
		return table
	}

	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			log.Warn().Str("entry", pair).Msg("ignoring malformed SECTION_POLICY entry")
			continue
		}
		role, err := accounts.ParseRole(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Warn().Str("entry", pair).Err(err).Msg("ignoring SECTION_POLICY entry with unknown role")
			continue
		}
		table[strings.TrimSpace(parts[0])] = role
	}

	return table
}
