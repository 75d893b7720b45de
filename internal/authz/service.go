package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	apiPrefix   = "/api/v1"
	policyTable = "casbin_rule"
	rolePrefix  = "role:"
)

// rbacModel 角色可继承；资源按 gin 路由模式匹配，"*" 动作放行全部方法
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	// ErrUnknownRole 角色不在选举委员会预置角色之列
	ErrUnknownRole = errors.New("unknown committee role")
	errUnavailable = errors.New("authz service unavailable")
)

// Policy 权限策略
type Policy struct {
	Object string `json:"object"`
	Action string `json:"action"`
}

// RoleSummary 角色及其直接继承与策略
type RoleSummary struct {
	Role     string   `json:"role"`
	Inherits []string `json:"inherits"`
	Policies []Policy `json:"policies"`
}

// Service 选举管理后台的 Casbin 授权服务
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务，策略持久化在 casbin_rule 表
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", policyTable)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return errUnavailable
	}
	return nil
}

// EnforceAdmin 判定管理员能否对资源执行动作
func (s *Service) EnforceAdmin(adminID uint, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.enforcer.Enforce(SubjectForAdmin(adminID), NormalizeObject(obj), NormalizeAction(act))
}

// SetAdminRoles 覆盖设置管理员角色，任一角色未知时不做修改
func (s *Service) SetAdminRoles(adminID uint, roles []string) error {
	if adminID == 0 {
		return errors.New("admin id is required")
	}
	if err := s.ready(); err != nil {
		return err
	}
	normalized := make([]string, 0, len(roles))
	seen := make(map[string]struct{}, len(roles))
	for _, raw := range roles {
		role, err := CommitteeRole(raw)
		if err != nil {
			return err
		}
		if _, dup := seen[role]; dup {
			continue
		}
		seen[role] = struct{}{}
		normalized = append(normalized, role)
	}

	subject := SubjectForAdmin(adminID)
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy("g", 0, subject); err != nil {
		return fmt.Errorf("clear admin roles: %w", err)
	}
	for _, role := range normalized {
		if _, err := s.enforcer.AddNamedGroupingPolicy("g", subject, role); err != nil {
			return fmt.Errorf("assign admin role: %w", err)
		}
	}
	return s.enforcer.LoadPolicy()
}

// GetAdminRoles 管理员直接持有的角色（不展开继承）
func (s *Service) GetAdminRoles(adminID uint) ([]string, error) {
	if adminID == 0 {
		return nil, errors.New("admin id is required")
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	roles, err := s.enforcer.GetRolesForUser(SubjectForAdmin(adminID))
	if err != nil {
		return nil, fmt.Errorf("get admin roles: %w", err)
	}
	return filterRoles(roles), nil
}

// ListRoles 已写入策略的角色名
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	subjects := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) > 0 {
			subjects = append(subjects, rule[0])
		}
	}
	return filterRoles(subjects), nil
}

// DescribeRole 角色的直接继承与策略
func (s *Service) DescribeRole(raw string) (*RoleSummary, error) {
	role, err := CommitteeRole(raw)
	if err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, fmt.Errorf("describe role policies: %w", err)
	}
	links, err := s.enforcer.GetFilteredNamedGroupingPolicy("g", 0, role)
	if err != nil {
		return nil, fmt.Errorf("describe role inheritance: %w", err)
	}
	summary := &RoleSummary{Role: role, Inherits: []string{}, Policies: make([]Policy, 0, len(rules))}
	for _, rule := range rules {
		if len(rule) >= 3 {
			summary.Policies = append(summary.Policies, Policy{Object: rule[1], Action: rule[2]})
		}
	}
	for _, link := range links {
		if len(link) >= 2 {
			summary.Inherits = append(summary.Inherits, link[1])
		}
	}
	sort.Slice(summary.Policies, func(i, j int) bool {
		if summary.Policies[i].Object != summary.Policies[j].Object {
			return summary.Policies[i].Object < summary.Policies[j].Object
		}
		return summary.Policies[i].Action < summary.Policies[j].Action
	})
	sort.Strings(summary.Inherits)
	return summary, nil
}

// filterRoles 去重、排序，只保留角色主体
func filterRoles(subjects []string) []string {
	set := make(map[string]struct{}, len(subjects))
	for _, subject := range subjects {
		if strings.HasPrefix(subject, rolePrefix) {
			set[subject] = struct{}{}
		}
	}
	roles := make([]string, 0, len(set))
	for role := range set {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// SubjectForAdmin 管理员主体标识
func SubjectForAdmin(adminID uint) string {
	return fmt.Sprintf("admin:%d", adminID)
}

// CommitteeRole 规范化角色名并校验其为预置角色，接受 "auditor" 与 "role:auditor" 两种写法
func CommitteeRole(raw string) (string, error) {
	name := strings.TrimPrefix(strings.TrimSpace(raw), rolePrefix)
	name = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	for _, def := range committeeRoles {
		if def.name == name {
			return rolePrefix + name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, strings.TrimSpace(raw))
}

// NormalizeObject 去掉 /api/v1 前缀，策略只描述 /admin/... 路径
func NormalizeObject(object string) string {
	path := strings.TrimSpace(object)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	switch {
	case path == apiPrefix:
		return "/"
	case strings.HasPrefix(path, apiPrefix+"/"):
		return strings.TrimPrefix(path, apiPrefix)
	default:
		return path
	}
}

// NormalizeAction 统一授权动作
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}
