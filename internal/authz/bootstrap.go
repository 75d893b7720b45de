package authz

import (
	"fmt"

	"github.com/unilorin-sug/election/internal/constants"
)

type roleDefinition struct {
	name     string
	inherits []string
	policies []Policy
}

// committeeRoles 选举委员会角色矩阵：
// 审计员只读，登记员在其上可登记学生与候选人，选举主任再可创建选举与对账
var committeeRoles = []roleDefinition{
	{
		name:     constants.RoleAuditor,
		policies: []Policy{{Object: "/admin/*", Action: "GET"}},
	},
	{
		name:     constants.RoleRegistrar,
		inherits: []string{constants.RoleAuditor},
		policies: []Policy{
			{Object: "/admin/students", Action: "POST"},
			{Object: "/admin/students/:id/verify", Action: "POST"},
			{Object: "/admin/candidates", Action: "POST"},
		},
	},
	{
		name:     constants.RoleReturningOfficer,
		inherits: []string{constants.RoleRegistrar},
		policies: []Policy{
			{Object: "/admin/elections", Action: "POST"},
			{Object: "/admin/elections/:id/reconcile", Action: "POST"},
		},
	},
}

// BootstrapBuiltinRoles 写入缺失的预置角色继承与策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	changed := false
	for _, def := range committeeRoles {
		role := rolePrefix + def.name
		for _, parent := range def.inherits {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, rolePrefix+parent)
			if err != nil {
				return fmt.Errorf("link role %s to %s: %w", def.name, parent, err)
			}
			changed = changed || added
		}
		for _, policy := range def.policies {
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), NormalizeAction(policy.Action))
			if err != nil {
				return fmt.Errorf("add policy for role %s: %w", def.name, err)
			}
			changed = changed || added
		}
	}
	if !changed {
		return nil
	}
	return s.enforcer.LoadPolicy()
}
