package schedule

import (
	"github.com/sysu-ecnc-dev/team-planner/backend/internal/domain"
)

type Operation string

const (
	OpCreateBlock     Operation = "create_block"
	OpUpdateBlock     Operation = "update_block"
	OpDeleteBlock     Operation = "delete_block"
	OpReorderPriority Operation = "reorder_priority"
	OpViewEmployees   Operation = "view_employees"
)

// capabilities: 操作 × 角色 × 是否本人日程 的授权表
// 注意更新和删除的不对称：主管可以更新他人的日程块，但只有本人或管理员能删除
var capabilities = map[Operation]map[domain.Role]map[bool]bool{
	OpCreateBlock: {
		domain.RoleMember:  {true: true, false: false},
		domain.RoleManager: {true: true, false: true},
		domain.RoleAdmin:   {true: true, false: true},
	},
	OpUpdateBlock: {
		domain.RoleMember:  {true: true, false: false},
		domain.RoleManager: {true: true, false: true},
		domain.RoleAdmin:   {true: true, false: true},
	},
	OpDeleteBlock: {
		domain.RoleMember:  {true: true, false: false},
		domain.RoleManager: {true: true, false: false},
		domain.RoleAdmin:   {true: true, false: true},
	},
	OpReorderPriority: {
		domain.RoleMember:  {true: false, false: false},
		domain.RoleManager: {true: true, false: true},
		domain.RoleAdmin:   {true: true, false: true},
	},
	OpViewEmployees: {
		domain.RoleMember:  {true: false, false: false},
		domain.RoleManager: {true: true, false: true},
		domain.RoleAdmin:   {true: true, false: true},
	},
}

// Allowed 查授权表，own 表示目标日程是否属于操作者本人
func Allowed(op Operation, role domain.Role, own bool) bool {
	byRole, ok := capabilities[op]
	if !ok {
		return false
	}
	byOwnership, ok := byRole[role]
	if !ok {
		return false
	}
	return byOwnership[own]
}
